package buffer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/skillsage/chat"
)

// persists flushed chat messages
type MessageStore interface {
	InsertBatch(ctx context.Context, messages []chat.Message) error
}

// handles periodic flushing of buffered chat from Redis to Postgres
type Flusher struct {
	buffer   *RoomBuffer
	store    MessageStore
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// creates a new flusher that periodically flushes Redis to Postgres
func NewFlusher(buffer *RoomBuffer, store MessageStore, interval time.Duration) *Flusher {
	return &Flusher{
		buffer:   buffer,
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// begins the background flush loop
func (f *Flusher) Start() {
	f.wg.Add(1)
	go f.run()
	logger.Info("buffer flusher started", "interval", f.interval.String())
}

// gracefully stops the flusher and flushes any remaining data
func (f *Flusher) Stop() {
	f.stopOnce.Do(func() {
		close(f.stopCh)
	})
	f.wg.Wait()
	logger.Info("buffer flusher stopped")
}

func (f *Flusher) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.flush()
		case <-f.stopCh:
			logger.Info("flushing remaining buffer data before shutdown")
			f.flush()
			return
		}
	}
}

func (f *Flusher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	interviewIDs, err := f.buffer.DirtyRooms(ctx)
	if err != nil {
		logger.ErrorErr(err, "failed to get dirty rooms")
		return
	}

	if len(interviewIDs) == 0 {
		return
	}

	logger.Debug("flushing messages for rooms", "count", len(interviewIDs))

	for _, interviewID := range interviewIDs {
		if err := f.FlushRoom(ctx, interviewID); err != nil {
			logger.ErrorErr(err, "failed to flush room", "interview_id", interviewID)
		}
	}
}

// immediately flushes the buffered messages of one room
func (f *Flusher) FlushRoom(ctx context.Context, interviewID string) error {
	buffered, err := f.buffer.FlushMessages(ctx, interviewID)
	if err != nil {
		return err
	}

	if len(buffered) == 0 {
		return nil
	}

	if err := f.store.InsertBatch(ctx, toChatMessages(buffered)); err != nil {
		// the interview row is gone, a retry can never succeed
		if isForeignKeyViolation(err) {
			logger.Warn("dropping buffered messages of a deleted interview",
				"interview_id", interviewID,
				"count", len(buffered),
				"error", err,
			)
			return f.buffer.ClearRoom(ctx, interviewID)
		}

		logger.ErrorErr(err, "failed to persist messages to postgres",
			"interview_id", interviewID,
			"count", len(buffered),
		)

		// re-add to the buffer so the next flush retries
		for i := range buffered {
			f.buffer.AddMessage(ctx, &buffered[i]) //nolint:errcheck,gosec // best-effort retry
		}
		return err
	}

	logger.Debug("flushed messages to postgres", "interview_id", interviewID, "count", len(buffered))
	return nil
}

// flushes the room one last time and removes its buffered state
func (f *Flusher) CloseRoom(ctx context.Context, interviewID string) error {
	if err := f.FlushRoom(ctx, interviewID); err != nil {
		return err
	}

	return f.buffer.ClearRoom(ctx, interviewID)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func toChatMessages(buffered []BufferedChatMessage) []chat.Message {
	messages := make([]chat.Message, 0, len(buffered))

	for _, b := range buffered {
		m := chat.Message{
			ID:          b.ID,
			InterviewID: b.InterviewID,
			SenderName:  b.SenderName,
			SenderRole:  b.SenderRole,
			Content:     b.Content,
			SentAt:      b.SentAt,
		}
		if b.SenderID != "" {
			senderID := b.SenderID
			m.SenderID = &senderID
		}
		messages = append(messages, m)
	}

	return messages
}
