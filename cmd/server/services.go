package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codeberg.org/skillsage/server/internal/analysis"
	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/buffer"
	"codeberg.org/skillsage/server/internal/config"
	"codeberg.org/skillsage/server/internal/integrity"
	"codeberg.org/skillsage/server/internal/llm"
	"codeberg.org/skillsage/server/internal/mail"
	"codeberg.org/skillsage/server/internal/otp"
	"codeberg.org/skillsage/server/internal/plagiarism"
	"codeberg.org/skillsage/server/internal/ratelimit"
	"codeberg.org/skillsage/server/skillsage/chat"
	"codeberg.org/skillsage/server/skillsage/embeddings"
	"codeberg.org/skillsage/server/skillsage/feedback"
	"codeberg.org/skillsage/server/skillsage/interviews"
	"codeberg.org/skillsage/server/skillsage/questions"
	"codeberg.org/skillsage/server/skillsage/submissions"
	"codeberg.org/skillsage/server/skillsage/users"
)

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:       users.NewRepository(db),
		Questions:   questions.NewRepository(db),
		Interviews:  interviews.NewRepository(db),
		Submissions: submissions.NewRepository(db),
		Embeddings:  embeddings.NewRepository(db),
		Feedback:    feedback.NewRepository(db),
		Chat:        chat.NewRepository(db),
	}
}

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config, rdb *redis.Client, repos *Repositories) (*Services, error) {
	model, err := llm.NewLLM(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	authLimit, err := ratelimit.New(rdb, "auth", cfg.AuthRateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth rate limiter: %w", err)
	}

	oauthEnabled, err := auth.InitializeProviders(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OAuth providers: %w", err)
	}

	mailer := mail.NewSender(cfg.SMTP)

	integrityConfig := integrity.DefaultConfig()
	integrityDetector := integrity.NewDetector(integrityConfig, integrity.NewRedisEventStore(rdb, integrityConfig))

	return &Services{
		LLM:        model,
		Mailer:     mailer,
		OTP:        otp.NewStore(rdb, cfg.OTPTTL),
		RoomBuffer: buffer.NewRoomBuffer(rdb),
		Integrity:  integrityDetector,
		Interviews: interviews.NewService(repos.Interviews, repos.Users, repos.Questions, mailer),
		Submissions: submissions.NewService(
			repos.Submissions,
			repos.Interviews,
			repos.Questions,
			model,
			repos.Embeddings,
		),
		Analyzer: analysis.New(repos.Submissions, model),
		Plagiarism: plagiarism.NewDetector(
			repos.Submissions,
			repos.Embeddings,
			model,
			model,
			plagiarism.Config{
				Threshold: cfg.AI.PlagiarismThreshold,
				Neighbors: cfg.AI.PlagiarismNeighbors,
			},
		),
		AuthLimit:    authLimit,
		OAuthEnabled: oauthEnabled,
	}, nil
}
