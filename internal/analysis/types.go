// package analysis asks the language model for recruiter-facing reviews of a
// submission and drafts new questions.
package analysis

import (
	"context"
	"errors"

	"codeberg.org/skillsage/server/skillsage/submissions"
)

var ErrNoSubmission = errors.New("analysis: interview has no submission")

type SubmissionFinder interface {
	FindByInterview(ctx context.Context, interviewID string) (*submissions.Submission, error)
}

// overall assessment of a submission
type Summary struct {
	Content string `json:"content"`
	Rating  string `json:"rating"`
}

type Complexity struct {
	QuestionName    string `json:"questionName"`
	TimeComplexity  string `json:"timeComplexity"`
	SpaceComplexity string `json:"spaceComplexity"`
}

type Quality struct {
	QuestionName string `json:"questionName"`
	Content      string `json:"content"`
}

// a drafted question, not yet persisted
type GeneratedQuestion struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	ProgrammingLanguage string `json:"programmingLanguage"`
}
