package interviews

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"codeberg.org/skillsage/server/internal/errors"
	"codeberg.org/skillsage/server/skillsage/questions"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInterviewNotFound = fmt.Errorf("interview not found: %w", errors.ErrNotFound)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// inserts the interview and its ordered question links in one transaction
func (r *Repository) Create(ctx context.Context, params CreateParams) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var id string
	err = tx.QueryRow(
		ctx,
		queryCreate,
		params.Title,
		params.Description,
		params.StartTime,
		EndTime(params.StartTime, params.DurationMinutes),
		params.DurationMinutes,
		StatusScheduled,
		params.RecruiterID,
		params.CandidateID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create interview: %w", err)
	}

	for position, questionID := range params.QuestionIDs {
		if _, err := tx.Exec(ctx, queryLinkQuestion, id, questionID, position); err != nil {
			return "", fmt.Errorf("failed to link question: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit interview: %w", err)
	}

	return id, nil
}

// loads an interview with its participants and questions
func (r *Repository) FindByID(ctx context.Context, id string) (*Interview, error) {
	interview, err := scanInterview(r.db.QueryRow(ctx, queryFindByID, id))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	interview.Questions, err = r.questions(ctx, id)
	if err != nil {
		return nil, err
	}

	return interview, nil
}

// lists interviews created by a recruiter, newest start first
func (r *Repository) ListForRecruiter(ctx context.Context, recruiterID string) ([]Interview, error) {
	return r.list(ctx, queryListForRecruiter, recruiterID)
}

// lists interviews assigned to a candidate, newest start first
func (r *Repository) ListForCandidate(ctx context.Context, candidateID string) ([]Interview, error) {
	return r.list(ctx, queryListForCandidate, candidateID)
}

func (r *Repository) list(ctx context.Context, query, userID string) ([]Interview, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	interviews := []Interview{}
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		interviews = append(interviews, *interview)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range interviews {
		interviews[i].Questions, err = r.questions(ctx, interviews[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return interviews, nil
}

func (r *Repository) questions(ctx context.Context, interviewID string) ([]questions.Question, error) {
	rows, err := r.db.Query(ctx, queryQuestions, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []questions.Question{}
	for rows.Next() {
		var q questions.Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.Language, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, q)
	}

	return result, rows.Err()
}

// replaces title, description and schedule; the end time is recomputed
func (r *Repository) Update(ctx context.Context, id string, req UpdateRequest) error {
	tag, err := r.db.Exec(
		ctx,
		queryUpdate,
		req.Title,
		req.Description,
		req.StartTime,
		EndTime(req.StartTime, req.Duration),
		req.Duration,
		id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrInterviewNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrInterviewNotFound
	}

	return nil
}

// moves a SCHEDULED interview to IN_PROGRESS; other statuses are left alone
func (r *Repository) StartIfScheduled(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, queryStartIfScheduled, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// lists open interviews that ended before now
func (r *Repository) ListOverdue(ctx context.Context, now time.Time) ([]Overdue, error) {
	rows, err := r.db.Query(ctx, queryListOverdue, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overdue []Overdue
	for rows.Next() {
		var o Overdue
		if err := rows.Scan(&o.ID, &o.Title, &o.EndTime); err != nil {
			return nil, err
		}
		overdue = append(overdue, o)
	}

	return overdue, rows.Err()
}

// marks an open interview as EXPIRED
func (r *Repository) Expire(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, queryExpire, id)
	return err
}

func scanInterview(row pgx.Row) (*Interview, error) {
	var i Interview

	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.StartTime,
		&i.EndTime,
		&i.DurationMinutes,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Recruiter.ID,
		&i.Recruiter.FirstName,
		&i.Recruiter.LastName,
		&i.Recruiter.Email,
		&i.Candidate.ID,
		&i.Candidate.FirstName,
		&i.Candidate.LastName,
		&i.Candidate.Email,
	)
	if err != nil {
		return nil, err
	}

	i.RecruiterID = i.Recruiter.ID
	i.CandidateID = i.Candidate.ID
	i.Questions = []questions.Question{}

	return &i, nil
}
