// package chat persists interview chat messages flushed from the room buffer.
package chat

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// a chat message exchanged in an interview room
type Message struct {
	ID          string    `json:"id"`
	InterviewID string    `json:"interview_id"`
	SenderID    *string   `json:"sender_id,omitempty"`
	SenderName  string    `json:"sender_name"`
	SenderRole  string    `json:"sender_role"`
	Content     string    `json:"content"`
	SentAt      time.Time `json:"sent_at"`
}

type Repository struct {
	db *pgxpool.Pool
}

const (
	queryInsert = `
		INSERT INTO chat_messages (id, interview_id, sender_id, sender_name, sender_role, content, sent_at)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, '')::uuid, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	// newest first, reversed in Go
	queryRecent = `
		SELECT id, interview_id, sender_id, sender_name, sender_role, content, sent_at
		FROM chat_messages
		WHERE interview_id = $1
		ORDER BY sent_at DESC
		LIMIT $2
	`
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// inserts messages in a single batch round trip
func (r *Repository) InsertBatch(ctx context.Context, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range messages {
		senderID := ""
		if m.SenderID != nil {
			senderID = *m.SenderID
		}

		sentAt := m.SentAt
		if sentAt.IsZero() {
			sentAt = time.Now()
		}

		batch.Queue(queryInsert, m.ID, m.InterviewID, senderID, m.SenderName, m.SenderRole, m.Content, sentAt)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert chat messages: %w", err)
	}

	return nil
}

// returns the last limit messages of an interview in chronological order
func (r *Repository) Recent(ctx context.Context, interviewID string, limit int) ([]Message, error) {
	rows, err := r.db.Query(ctx, queryRecent, interviewID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.InterviewID, &m.SenderID, &m.SenderName, &m.SenderRole, &m.Content, &m.SentAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.Reverse(messages)
	return messages, nil
}
