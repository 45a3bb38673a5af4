package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/buffer"
	"codeberg.org/skillsage/server/internal/config"
	"codeberg.org/skillsage/server/internal/logger"
	"codeberg.org/skillsage/server/internal/metrics"
	"codeberg.org/skillsage/server/internal/storage"
	"codeberg.org/skillsage/server/internal/validation"
	ws "codeberg.org/skillsage/server/internal/websocket"
	"codeberg.org/skillsage/server/skillsage/interviews"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	metrics.Init()

	db, err := storage.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	rdb, err := storage.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	repos := NewRepositories(db)

	services, err := InitializeServices(ctx, cfg, rdb, repos)
	if err != nil {
		rdb.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// create flusher to periodically persist buffered chat to Postgres
	flusher := buffer.NewFlusher(services.RoomBuffer, repos.Chat, cfg.FlushInterval)

	hub := ws.NewHub()
	ws.RegisterHandlers(hub, services.RoomBuffer, services.Integrity)

	// persist the room's chat once the last participant leaves
	hub.OnRoomEmpty(func(interviewID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := flusher.FlushRoom(ctx, interviewID); err != nil {
			logger.ErrorErr(err, "failed to flush room on close", "interview_id", interviewID)
			return
		}

		logger.Debug("room flushed", "interview_id", interviewID)
	})

	// ends the live room, persists its chat and drops the buffered state
	closeRoom := func(interviewID, reason string) {
		hub.EndRoom(interviewID, reason)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := flusher.CloseRoom(ctx, interviewID); err != nil {
			logger.ErrorErr(err, "failed to close room buffer",
				"interview_id", interviewID,
				"reason", reason,
			)
		}
	}

	services.Interviews.OnRoomClosed(closeRoom)
	services.Submissions.OnRoomClosed(closeRoom)

	// ends rooms of interviews that ran past their end time
	expiry := interviews.NewExpiryService(repos.Interviews, cfg.ExpiryInterval, closeRoom)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), logger.Middleware(), metrics.Middleware())

	server := &Server{
		config:   cfg,
		db:       db,
		redis:    rdb,
		repos:    repos,
		services: services,
		hub:      hub,
		flusher:  flusher,
		expiry:   expiry,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// releases connections; call after the HTTP server and hub have stopped
func (s *Server) Close() {
	if err := s.redis.Close(); err != nil {
		logger.Warn("failed to close redis", "error", err)
	}

	s.db.Close()
}
