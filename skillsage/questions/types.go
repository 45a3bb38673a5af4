package questions

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles question database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents a coding question authored by a recruiter
type Question struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	CreatedBy   *string   `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// contains data for creating or replacing a question
type QuestionRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Description string `json:"description" binding:"required,notblank"`
	Language    string `json:"language" binding:"max=50"`
}
