package submissions

import (
	"context"

	"codeberg.org/skillsage/server/skillsage/submissions"
)

type SubmissionService interface {
	Submit(ctx context.Context, candidateID string, req submissions.SubmitRequest) (*submissions.Submission, error)
	ForRecruiter(ctx context.Context, recruiterID, interviewID string) (*submissions.Submission, error)
}

type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
