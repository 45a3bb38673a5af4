package submissions

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles submission database operations
type Repository struct {
	db *pgxpool.Pool
}

// lifecycle of a single answer
type Status string

const (
	StatusSubmitted Status = "SUBMITTED"
	StatusExecuting Status = "EXECUTING"
	StatusCompleted Status = "COMPLETED"
	StatusError     Status = "ERROR"
)

// the answer to one question
type QuestionSubmission struct {
	ID                  string    `json:"id"`
	QuestionID          string    `json:"questionId"`
	QuestionTitle       string    `json:"questionTitle"`
	QuestionDescription string    `json:"-"`
	Code                string    `json:"code"`
	Language            string    `json:"language"`
	Status              Status    `json:"status"`
	SubmittedAt         time.Time `json:"submittedAt"`
}

// a candidate's final submission for an interview
type Submission struct {
	ID                  string               `json:"submissionId"`
	InterviewID         string               `json:"interviewId"`
	CandidateID         string               `json:"candidateId"`
	CandidateEmail      string               `json:"candidateEmail"`
	SubmittedAt         time.Time            `json:"submittedAt"`
	QuestionSubmissions []QuestionSubmission `json:"questionSubmissions"`
}

type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required,uuid"`
	Code       string `json:"code" binding:"max=100000"`
	Language   string `json:"language" binding:"max=50"`
}

// chat transcript entries sent along with the submission
type MessageRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
	Sender  string `json:"sender" binding:"max=100"`
}

type SubmitRequest struct {
	InterviewID string           `json:"interviewId" binding:"required,uuid"`
	Submissions []AnswerRequest  `json:"submissions" binding:"required,min=1,dive"`
	Messages    []MessageRequest `json:"messages" binding:"omitempty,dive"`
}

// one stored answer, as read back for re-embedding
type StoredAnswer struct {
	InterviewID string
	CandidateID string
	QuestionID  string
	Code        string
}
