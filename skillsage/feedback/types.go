package feedback

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

// a recruiter's written assessment of a candidate
type Feedback struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Rating         int       `json:"rating"`
	InterviewID    string    `json:"interviewId"`
	CandidateID    string    `json:"candidateId"`
	CandidateEmail string    `json:"candidateEmail"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CreateRequest struct {
	InterviewID string `json:"interviewId" binding:"required,uuid"`
	Content     string `json:"content" binding:"required,notblank,max=10000"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
}
