package integrity

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrNilStore = errors.New("integrity: store is nil")
)

// flags large pastes in live code updates
type Detector struct {
	config Config
	store  EventStore
	now    func() time.Time
}

// creates a new detector with the given store
func NewDetector(config Config, store EventStore) *Detector {
	return &Detector{
		config: config,
		store:  store,
		now:    time.Now,
	}
}

// determines if a code update has a large delta
func (d *Detector) IsLargeDelta(previousCode, newCode string) bool {
	if addedChars(previousCode, newCode) >= d.config.PasteDeltaThreshold {
		return true
	}

	return addedLines(previousCode, newCode) >= d.config.PasteLineThreshold
}

// growth in characters, not bytes
func addedChars(previousCode, newCode string) int {
	return utf8.RuneCountInString(newCode) - utf8.RuneCountInString(previousCode)
}

func addedLines(previousCode, newCode string) int {
	return strings.Count(newCode, "\n") - strings.Count(previousCode, "\n")
}

// inspects a code update and records a paste event when the delta is large.
// returns nil when nothing was detected.
func (d *Detector) Inspect(ctx context.Context, change CodeChange) (*PasteEvent, error) {
	if !d.IsLargeDelta(change.PreviousCode, change.NewCode) {
		return nil, nil
	}

	if d.store == nil {
		return nil, ErrNilStore
	}

	event := PasteEvent{
		InterviewID: change.InterviewID,
		QuestionID:  change.QuestionID,
		UserID:      change.UserID,
		AddedChars:  max(addedChars(change.PreviousCode, change.NewCode), 0),
		AddedLines:  max(addedLines(change.PreviousCode, change.NewCode), 0),
		DetectedAt:  d.now().UTC(),
	}

	if err := d.store.Record(ctx, event); err != nil {
		return nil, err
	}

	return &event, nil
}

// returns every paste event recorded for an interview
func (d *Detector) Events(ctx context.Context, interviewID string) ([]PasteEvent, error) {
	if d.store == nil {
		return nil, ErrNilStore
	}

	return d.store.List(ctx, interviewID)
}
