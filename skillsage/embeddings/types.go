package embeddings

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles code embedding storage and nearest-neighbour search
type Repository struct {
	db *pgxpool.Pool
}

// the embedding of one submitted answer
type CodeEmbedding struct {
	ID          string
	QuestionID  string
	CandidateID string
	InterviewID string
	Embedding   []float32
	Fingerprint int64
	SubmittedAt time.Time
}

// a stored answer close to the query vector
type Neighbor struct {
	CandidateID string
	InterviewID *string
	Embedding   []float32
	Fingerprint int64
	Distance    float64
}
