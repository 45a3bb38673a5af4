// package plagiarism scores submitted answers against earlier answers to the
// same question: the code is embedded, the nearest stored embeddings of other
// candidates are fetched from pgvector, the best cosine similarity decides the
// verdict and a language model writes the recruiter-facing report.
package plagiarism

import (
	"context"
	"errors"

	"codeberg.org/skillsage/server/skillsage/embeddings"
	"codeberg.org/skillsage/server/skillsage/submissions"
)

var ErrNoSubmission = errors.New("plagiarism: interview has no submission")

const (
	DefaultThreshold = 80.0
	DefaultNeighbors = 5
)

type Config struct {
	// similarity percentage above which an answer is flagged
	Threshold float64
	// nearest stored answers compared against
	Neighbors int
}

// verdict for one answered question
type Result struct {
	PlagiarismChance  float64 `json:"plagiarismChance"`
	Plagiarized       bool    `json:"plagiarized"`
	Content           string  `json:"content"`
	QuestionName      string  `json:"questionName"`
	Similarity        float64 `json:"similarity"`
	LexicalSimilarity float64 `json:"lexicalSimilarity"`
}

type SubmissionFinder interface {
	FindByInterview(ctx context.Context, interviewID string) (*submissions.Submission, error)
}

type NeighborFinder interface {
	FindNearest(ctx context.Context, questionID, excludeCandidateID string, vec []float32, limit int) ([]embeddings.Neighbor, error)
}
