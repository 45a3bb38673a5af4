package interviews

import (
	"context"

	"codeberg.org/skillsage/server/skillsage/interviews"
	"codeberg.org/skillsage/server/skillsage/users"
)

// scheduling operations used by the handlers
type InterviewService interface {
	Create(ctx context.Context, recruiterID string, req interviews.CreateRequest) (*interviews.Interview, error)
	Get(ctx context.Context, userID, id string) (*interviews.Interview, error)
	List(ctx context.Context, userID string, role users.Role) ([]interviews.Interview, error)
	Update(ctx context.Context, recruiterID, id string, req interviews.UpdateRequest) (*interviews.Interview, error)
	Delete(ctx context.Context, recruiterID, id string) error
}

type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
