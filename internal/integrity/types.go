// package integrity holds the code-integrity signals used during interviews:
// lexical SimHash fingerprints of submitted code and paste detection on
// live code updates.
package integrity

import (
	"context"
	"time"
)

// holds configuration for paste detection
type Config struct {
	PasteDeltaThreshold int
	PasteLineThreshold  int
	EventTTL            time.Duration
	MaxEventsPerRoom    int64
}

// returns defaults tuned for interview answers
func DefaultConfig() Config {
	return Config{
		PasteDeltaThreshold: 200,
		PasteLineThreshold:  15,
		EventTTL:            7 * 24 * time.Hour,
		MaxEventsPerRoom:    500,
	}
}

// one code update as seen by the detector
type CodeChange struct {
	InterviewID  string
	QuestionID   string
	UserID       string
	PreviousCode string
	NewCode      string
}

// a large insertion recorded while a candidate was coding
type PasteEvent struct {
	InterviewID string    `json:"interviewId"`
	QuestionID  string    `json:"questionId"`
	UserID      string    `json:"userId"`
	AddedChars  int       `json:"addedChars"`
	AddedLines  int       `json:"addedLines"`
	DetectedAt  time.Time `json:"detectedAt"`
}

// defines the interface for storing paste events
type EventStore interface {
	Record(ctx context.Context, event PasteEvent) error
	List(ctx context.Context, interviewID string) ([]PasteEvent, error)
}
