package feedback

import (
	"context"
	stderrors "errors"
	"fmt"

	"codeberg.org/skillsage/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrFeedbackNotFound = fmt.Errorf("no feedback found: %w", errors.ErrNotFound)

const (
	queryCreate = `
		WITH inserted AS (
			INSERT INTO feedbacks (interview_id, candidate_id, author_id, content, rating)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, content, rating, interview_id, candidate_id, created_at
		)
		SELECT i.id, i.content, i.rating, i.interview_id, i.candidate_id, u.email, i.created_at
		FROM inserted i
		JOIN users u ON u.id = i.candidate_id
	`

	queryLatest = `
		SELECT f.id, f.content, f.rating, f.interview_id, f.candidate_id, u.email, f.created_at
		FROM feedbacks f
		JOIN users u ON u.id = f.candidate_id
		WHERE f.interview_id = $1
		ORDER BY f.created_at DESC
		LIMIT 1
	`
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// stores feedback about the candidate of an interview
func (r *Repository) Create(ctx context.Context, authorID, candidateID string, req CreateRequest) (*Feedback, error) {
	f, err := scanFeedback(r.db.QueryRow(ctx, queryCreate, req.InterviewID, candidateID, authorID, req.Content, req.Rating))
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return f, nil
}

// returns the most recent feedback for an interview
func (r *Repository) Latest(ctx context.Context, interviewID string) (*Feedback, error) {
	return scanLatest(r.db.QueryRow(ctx, queryLatest, interviewID))
}

func scanLatest(row pgx.Row) (*Feedback, error) {
	f, err := scanFeedback(row)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	return f, nil
}

func scanFeedback(row pgx.Row) (*Feedback, error) {
	var f Feedback

	if err := row.Scan(&f.ID, &f.Content, &f.Rating, &f.InterviewID, &f.CandidateID, &f.CandidateEmail, &f.CreatedAt); err != nil {
		return nil, err
	}

	return &f, nil
}
