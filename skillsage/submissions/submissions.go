package submissions

import (
	"context"
	stderrors "errors"
	"fmt"

	"codeberg.org/skillsage/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

var (
	ErrSubmissionNotFound = fmt.Errorf("no submission found: %w", errors.ErrNotFound)
	ErrAlreadySubmitted   = fmt.Errorf("submission already exists for this interview: %w", errors.ErrConflict)
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// stores the submission, its answers and the chat transcript, and completes
// the interview, all in one transaction
func (r *Repository) Create(
	ctx context.Context,
	interviewID string,
	candidateID string,
	answers []AnswerRequest,
	messages []MessageRequest,
) (*Submission, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	sub := Submission{
		InterviewID: interviewID,
		CandidateID: candidateID,
	}

	if err := tx.QueryRow(ctx, queryCreateSubmission, interviewID, candidateID).Scan(&sub.ID, &sub.SubmittedAt); err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	for _, a := range answers {
		qs := QuestionSubmission{
			QuestionID: a.QuestionID,
			Code:       a.Code,
			Language:   a.Language,
			Status:     StatusSubmitted,
		}

		err := tx.QueryRow(ctx, queryCreateAnswer, sub.ID, a.QuestionID, a.Code, a.Language, StatusSubmitted).
			Scan(&qs.ID, &qs.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to store answer: %w", err)
		}

		sub.QuestionSubmissions = append(sub.QuestionSubmissions, qs)
	}

	if _, err := tx.Exec(ctx, queryCompleteInterview, interviewID); err != nil {
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}

	for _, m := range messages {
		if _, err := tx.Exec(ctx, queryStoreMessage, interviewID, m.Sender, m.Content); err != nil {
			return nil, fmt.Errorf("failed to store message: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit submission: %w", err)
	}

	return &sub, nil
}

// loads the submission of an interview with its answers in question order
func (r *Repository) FindByInterview(ctx context.Context, interviewID string) (*Submission, error) {
	var sub Submission

	err := r.db.QueryRow(ctx, queryFindByInterview, interviewID).Scan(
		&sub.ID,
		&sub.InterviewID,
		&sub.CandidateID,
		&sub.CandidateEmail,
		&sub.SubmittedAt,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, queryAnswers, sub.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sub.QuestionSubmissions = []QuestionSubmission{}
	for rows.Next() {
		var qs QuestionSubmission
		err := rows.Scan(
			&qs.ID,
			&qs.QuestionID,
			&qs.QuestionTitle,
			&qs.QuestionDescription,
			&qs.Code,
			&qs.Language,
			&qs.Status,
			&qs.SubmittedAt,
		)
		if err != nil {
			return nil, err
		}
		sub.QuestionSubmissions = append(sub.QuestionSubmissions, qs)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &sub, nil
}

// lists stored answers, optionally restricted to one interview
func (r *Repository) ListAnswers(ctx context.Context, interviewID string) ([]StoredAnswer, error) {
	rows, err := r.db.Query(ctx, queryStoredAnswers, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []StoredAnswer
	for rows.Next() {
		var a StoredAnswer
		if err := rows.Scan(&a.InterviewID, &a.CandidateID, &a.QuestionID, &a.Code); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}

	return answers, rows.Err()
}
