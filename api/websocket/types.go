package websocket

import (
	"context"

	"codeberg.org/skillsage/server/skillsage/chat"
	"codeberg.org/skillsage/server/skillsage/interviews"
)

type ConnectParams struct {
	InterviewID string `form:"interview_id" binding:"required,uuid"`
	Token       string `form:"token" binding:"required"` // jwt, browsers cannot set headers on websocket upgrades
}

// loads the interview a client wants to join
type InterviewStore interface {
	FindByID(ctx context.Context, id string) (*interviews.Interview, error)
	StartIfScheduled(ctx context.Context, id string) (bool, error)
}

// reads persisted chat of an interview
type ChatHistory interface {
	Recent(ctx context.Context, interviewID string, limit int) ([]chat.Message, error)
}

// number of chat messages sent on join
const chatHistoryLimit = 50
