package embeddings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// persists an embedding and fills in its id and timestamp
func (r *Repository) Store(ctx context.Context, e *CodeEmbedding) error {
	err := r.db.QueryRow(
		ctx,
		queryInsert,
		e.QuestionID,
		e.CandidateID,
		e.InterviewID,
		pgvector.NewVector(e.Embedding),
		e.Fingerprint,
	).Scan(&e.ID, &e.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}

	return nil
}

// swaps the candidate's embeddings for a question with a fresh one
func (r *Repository) Replace(ctx context.Context, e *CodeEmbedding) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, queryDeleteForCandidate, e.QuestionID, e.CandidateID); err != nil {
		return fmt.Errorf("failed to delete old embeddings: %w", err)
	}

	err = tx.QueryRow(
		ctx,
		queryInsert,
		e.QuestionID,
		e.CandidateID,
		e.InterviewID,
		pgvector.NewVector(e.Embedding),
		e.Fingerprint,
	).Scan(&e.ID, &e.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}

	return tx.Commit(ctx)
}

// returns up to limit embeddings of other candidates for the same question,
// closest first by cosine distance
func (r *Repository) FindNearest(
	ctx context.Context,
	questionID string,
	excludeCandidateID string,
	vec []float32,
	limit int,
) ([]Neighbor, error) {
	rows, err := r.db.Query(ctx, queryFindNearest, questionID, excludeCandidateID, pgvector.NewVector(vec), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search embeddings: %w", err)
	}
	defer rows.Close()

	var neighbors []Neighbor
	for rows.Next() {
		var (
			n      Neighbor
			stored pgvector.Vector
		)

		if err := rows.Scan(&n.CandidateID, &n.InterviewID, &stored, &n.Fingerprint, &n.Distance); err != nil {
			return nil, err
		}

		n.Embedding = stored.Slice()
		neighbors = append(neighbors, n)
	}

	return neighbors, rows.Err()
}
