package feedback

import (
	"context"

	"codeberg.org/skillsage/server/skillsage/feedback"
	"codeberg.org/skillsage/server/skillsage/interviews"
)

// interview access checks
type InterviewAccess interface {
	Get(ctx context.Context, userID, id string) (*interviews.Interview, error)
	Owned(ctx context.Context, recruiterID, id string) (*interviews.Interview, error)
}

type FeedbackStore interface {
	Create(ctx context.Context, authorID, candidateID string, req feedback.CreateRequest) (*feedback.Feedback, error)
	Latest(ctx context.Context, interviewID string) (*feedback.Feedback, error)
}

type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
