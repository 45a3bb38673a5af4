package questions

import (
	"context"

	"codeberg.org/skillsage/server/api/rest/pagination"
	"codeberg.org/skillsage/server/internal/analysis"
	"codeberg.org/skillsage/server/skillsage/questions"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// question persistence used by the handlers
type QuestionStore interface {
	Create(ctx context.Context, userID string, req questions.QuestionRequest) (*questions.Question, error)
	FindByID(ctx context.Context, id string) (*questions.Question, error)
	List(ctx context.Context, limit, offset int) ([]questions.Question, int, error)
	Update(ctx context.Context, id string, req questions.QuestionRequest) (*questions.Question, error)
	Delete(ctx context.Context, id string) error
}

// drafts questions with the language model
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, request string) (*analysis.GeneratedQuestion, error)
}

type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required,notblank,max=2000"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ListResponse struct {
	Questions  []questions.Question `json:"questions"`
	Pagination pagination.Meta      `json:"pagination"`
}
