package integrity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	keyPasteEvents = "integrity:paste_events:%s"
)

// implements EventStore using a capped Redis list per interview
type RedisEventStore struct {
	client *redis.Client
	config Config
}

// creates a new Redis-backed event store
func NewRedisEventStore(client *redis.Client, config Config) *RedisEventStore {
	return &RedisEventStore{client: client, config: config}
}

// appends an event and refreshes the list TTL
func (s *RedisEventStore) Record(ctx context.Context, event PasteEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal paste event: %w", err)
	}

	key := fmt.Sprintf(keyPasteEvents, event.InterviewID)

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -s.config.MaxEventsPerRoom, -1)
	pipe.Expire(ctx, key, s.config.EventTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record paste event: %w", err)
	}

	return nil
}

// returns the recorded events oldest first
func (s *RedisEventStore) List(ctx context.Context, interviewID string) ([]PasteEvent, error) {
	raw, err := s.client.LRange(ctx, fmt.Sprintf(keyPasteEvents, interviewID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list paste events: %w", err)
	}

	events := make([]PasteEvent, 0, len(raw))
	for _, item := range raw {
		var event PasteEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}
