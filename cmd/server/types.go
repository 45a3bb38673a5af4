package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codeberg.org/skillsage/server/internal/analysis"
	"codeberg.org/skillsage/server/internal/buffer"
	"codeberg.org/skillsage/server/internal/config"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/internal/llm"
	"codeberg.org/skillsage/server/internal/mail"
	"codeberg.org/skillsage/server/internal/otp"
	"codeberg.org/skillsage/server/internal/plagiarism"
	ws "codeberg.org/skillsage/server/internal/websocket"
	"codeberg.org/skillsage/server/skillsage/chat"
	"codeberg.org/skillsage/server/skillsage/embeddings"
	"codeberg.org/skillsage/server/skillsage/feedback"
	"codeberg.org/skillsage/server/skillsage/interviews"
	"codeberg.org/skillsage/server/skillsage/questions"
	"codeberg.org/skillsage/server/skillsage/submissions"
	"codeberg.org/skillsage/server/skillsage/users"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	db       *pgxpool.Pool
	redis    *redis.Client
	repos    *Repositories
	services *Services
	hub      *ws.Hub
	flusher  *buffer.Flusher
	expiry   *interviews.ExpiryService
	router   *gin.Engine
}

// Postgres-backed repositories
type Repositories struct {
	Users       *users.Repository
	Questions   *questions.Repository
	Interviews  *interviews.Repository
	Submissions *submissions.Repository
	Embeddings  *embeddings.Repository
	Feedback    *feedback.Repository
	Chat        *chat.Repository
}

// domain services and external clients
type Services struct {
	LLM          llm.LLM
	Mailer       mail.Sender
	OTP          *otp.Store
	RoomBuffer   *buffer.RoomBuffer
	Integrity    *integrity.Detector
	Interviews   *interviews.Service
	Submissions  *submissions.Service
	Analyzer     *analysis.Analyzer
	Plagiarism   *plagiarism.Detector
	AuthLimit    gin.HandlerFunc
	OAuthEnabled bool
}
