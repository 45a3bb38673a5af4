package websocket

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// creates a message with the payload marshalled to JSON
func NewMessage(msgType, interviewID, userID string, payload any) (*Message, error) {
	var raw json.RawMessage

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
		}
		raw = data
	}

	return &Message{
		Type:        msgType,
		InterviewID: interviewID,
		UserID:      userID,
		Timestamp:   time.Now(),
		Payload:     raw,
	}, nil
}

// decodes the message payload into v
func (m *Message) UnmarshalPayload(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidMessage)
	}

	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	return nil
}

// hides internal error details from clients in production
func sanitizeErrorString(details string) string {
	if os.Getenv("ENVIRONMENT") != "production" {
		return details
	}

	lower := strings.ToLower(details)
	for _, marker := range []string{"sql", "pgx", "redis", "dial", "connection", "postgres"} {
		if strings.Contains(lower, marker) {
			return "an internal error occurred"
		}
	}

	return details
}
