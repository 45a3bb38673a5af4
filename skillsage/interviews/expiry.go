package interviews

import (
	"context"
	"time"

	"codeberg.org/skillsage/server/internal/logger"
)

// reasons sent to room participants when a room is closed
const (
	ReasonExpired   = "interview_expired"
	ReasonDeleted   = "interview_deleted"
	ReasonCompleted = "interview_completed"
)

// called to notify WebSocket clients when an interview room is closed
type RoomEnderFunc func(interviewID string, reason string)

// the subset of the repository the expiry loop needs
type ExpiryStore interface {
	ListOverdue(ctx context.Context, now time.Time) ([]Overdue, error)
	Expire(ctx context.Context, id string) error
}

// marks interviews past their end time as EXPIRED
type ExpiryService struct {
	store         ExpiryStore
	checkInterval time.Duration
	roomEnder     RoomEnderFunc
	now           func() time.Time
}

func NewExpiryService(store ExpiryStore, checkInterval time.Duration, roomEnder RoomEnderFunc) *ExpiryService {
	return &ExpiryService{
		store:         store,
		checkInterval: checkInterval,
		roomEnder:     roomEnder,
		now:           time.Now,
	}
}

// begins the expiry background loop
func (s *ExpiryService) Start(ctx context.Context) {
	logger.Info("starting interview expiry service", "check_interval", s.checkInterval)

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("interview expiry service stopped")
			return
		case <-ticker.C:
			s.expireOverdue(ctx)
		}
	}
}

func (s *ExpiryService) expireOverdue(ctx context.Context) {
	overdue, err := s.store.ListOverdue(ctx, s.now())
	if err != nil {
		logger.ErrorErr(err, "failed to list overdue interviews")
		return
	}

	if len(overdue) == 0 {
		return
	}

	logger.Info("found overdue interviews", "count", len(overdue))

	for _, interview := range overdue {
		if err := s.store.Expire(ctx, interview.ID); err != nil {
			logger.ErrorErr(err, "failed to expire interview",
				"interview_id", interview.ID,
				"end_time", interview.EndTime,
			)
			continue
		}

		// close the room after the status change so a reconnect is refused
		if s.roomEnder != nil {
			s.roomEnder(interview.ID, ReasonExpired)
		}

		logger.Info("interview expired", "interview_id", interview.ID, "title", interview.Title)
	}
}
