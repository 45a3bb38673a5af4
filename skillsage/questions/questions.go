package questions

import (
	"context"
	stderrors "errors"
	"fmt"

	"codeberg.org/skillsage/server/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrQuestionNotFound = fmt.Errorf("question not found: %w", errors.ErrNotFound)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, userID string, req QuestionRequest) (*Question, error) {
	q, err := scanQuestion(r.db.QueryRow(ctx, queryCreate, req.Title, req.Description, req.Language, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return q, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Question, error) {
	q, err := scanQuestion(r.db.QueryRow(ctx, queryFindByID, id))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	return q, nil
}

// reports whether every id names an existing question
func (r *Repository) AllExist(ctx context.Context, ids []string) (bool, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return true, nil
	}

	var count int
	if err := r.db.QueryRow(ctx, queryCountExisting, unique).Scan(&count); err != nil {
		return false, err
	}

	return count == len(unique), nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]Question, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCount).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	questions := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, *q)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (r *Repository) Update(ctx context.Context, id string, req QuestionRequest) (*Question, error) {
	q, err := scanQuestion(r.db.QueryRow(ctx, queryUpdate, req.Title, req.Description, req.Language, id))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	return q, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

func scanQuestion(row pgx.Row) (*Question, error) {
	var q Question

	err := row.Scan(
		&q.ID,
		&q.Title,
		&q.Description,
		&q.Language,
		&q.CreatedBy,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
