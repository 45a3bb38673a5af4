package buffer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"codeberg.org/skillsage/server/internal/logger"
)

// handles Redis-backed state for interview rooms
type RoomBuffer struct {
	client *redis.Client
	now    func() time.Time
}

// creates a room buffer on an existing Redis connection
func NewRoomBuffer(client *redis.Client) *RoomBuffer {
	return &RoomBuffer{
		client: client,
		now:    time.Now,
	}
}

// appends a chat message to the room's buffer and marks the room dirty.
// the message gets an ID and timestamp when it has none.
func (b *RoomBuffer) AddMessage(ctx context.Context, msg *BufferedChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = b.now().UTC()
	}

	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := b.client.Pipeline()
	pipe.RPush(ctx, fmt.Sprintf(keyRoomMessages, msg.InterviewID), msgJSON)
	pipe.SAdd(ctx, keyDirtyRoomsMessages, msg.InterviewID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add message to redis: %w", err)
	}

	return nil
}

// returns buffered messages that were not flushed yet, oldest first
func (b *RoomBuffer) PendingMessages(ctx context.Context, interviewID string) ([]BufferedChatMessage, error) {
	raw, err := b.client.LRange(ctx, fmt.Sprintf(keyRoomMessages, interviewID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read buffered messages: %w", err)
	}

	return decodeMessages(raw, interviewID), nil
}

// returns all interview IDs with unflushed messages
func (b *RoomBuffer) DirtyRooms(ctx context.Context) ([]string, error) {
	return b.client.SMembers(ctx, keyDirtyRoomsMessages).Result()
}

// takes every buffered message of a room, clearing the list and the dirty flag
// in the same transaction so concurrent appends are never dropped
func (b *RoomBuffer) FlushMessages(ctx context.Context, interviewID string) ([]BufferedChatMessage, error) {
	msgKey := fmt.Sprintf(keyRoomMessages, interviewID)

	var lrange *redis.StringSliceCmd
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, msgKey, 0, -1)
		pipe.Del(ctx, msgKey)
		pipe.SRem(ctx, keyDirtyRoomsMessages, interviewID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to flush messages: %w", err)
	}

	return decodeMessages(lrange.Val(), interviewID), nil
}

// stores the code of one question and refreshes the room's code TTL
func (b *RoomBuffer) SetCode(ctx context.Context, interviewID string, state CodeState) error {
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = b.now().UTC()
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal code state: %w", err)
	}

	codeKey := fmt.Sprintf(keyRoomCode, interviewID)

	pipe := b.client.Pipeline()
	pipe.HSet(ctx, codeKey, state.QuestionID, stateJSON)
	pipe.Expire(ctx, codeKey, codeStateTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set code in redis: %w", err)
	}

	return nil
}

// returns the stored code of one question, or nil when there is none
func (b *RoomBuffer) GetCode(ctx context.Context, interviewID, questionID string) (*CodeState, error) {
	raw, err := b.client.HGet(ctx, fmt.Sprintf(keyRoomCode, interviewID), questionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get code from redis: %w", err)
	}

	var state CodeState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to decode code state: %w", err)
	}

	return &state, nil
}

// returns the code of every question in the room keyed by question ID
func (b *RoomBuffer) CodeStates(ctx context.Context, interviewID string) (map[string]CodeState, error) {
	raw, err := b.client.HGetAll(ctx, fmt.Sprintf(keyRoomCode, interviewID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get code states: %w", err)
	}

	states := make(map[string]CodeState, len(raw))
	for questionID, stateJSON := range raw {
		var state CodeState
		if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
			logger.ErrorErr(err, "failed to decode code state", "interview_id", interviewID, "question_id", questionID)
			continue
		}
		states[questionID] = state
	}

	return states, nil
}

// changes the language of a question, keeping its code
func (b *RoomBuffer) SetLanguage(ctx context.Context, interviewID, questionID, language string) error {
	state, err := b.GetCode(ctx, interviewID, questionID)
	if err != nil {
		return err
	}

	if state == nil {
		state = &CodeState{QuestionID: questionID}
	}

	state.Language = language
	state.UpdatedAt = time.Time{}

	return b.SetCode(ctx, interviewID, *state)
}

// records which question is on screen
func (b *RoomBuffer) SetCurrentQuestion(ctx context.Context, interviewID string, index int) error {
	return b.client.Set(ctx, fmt.Sprintf(keyRoomCurrentQuestion, interviewID), index, codeStateTTL).Err()
}

// returns the question on screen, 0 when unset
func (b *RoomBuffer) CurrentQuestion(ctx context.Context, interviewID string) (int, error) {
	raw, err := b.client.Get(ctx, fmt.Sprintf(keyRoomCurrentQuestion, interviewID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get current question: %w", err)
	}

	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid current question %q: %w", raw, err)
	}

	return index, nil
}

// removes all room state (call after the interview ends and messages are flushed)
func (b *RoomBuffer) ClearRoom(ctx context.Context, interviewID string) error {
	pipe := b.client.Pipeline()
	pipe.Del(ctx, fmt.Sprintf(keyRoomCode, interviewID))
	pipe.Del(ctx, fmt.Sprintf(keyRoomCurrentQuestion, interviewID))
	pipe.Del(ctx, fmt.Sprintf(keyRoomMessages, interviewID))
	pipe.SRem(ctx, keyDirtyRoomsMessages, interviewID)

	_, err := pipe.Exec(ctx)
	return err
}

func decodeMessages(raw []string, interviewID string) []BufferedChatMessage {
	messages := make([]BufferedChatMessage, 0, len(raw))

	for _, msgJSON := range raw {
		var msg BufferedChatMessage
		if err := json.Unmarshal([]byte(msgJSON), &msg); err != nil {
			logger.ErrorErr(err, "failed to unmarshal buffered message", "interview_id", interviewID)
			continue
		}
		messages = append(messages, msg)
	}

	return messages
}
