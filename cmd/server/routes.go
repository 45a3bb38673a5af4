package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"codeberg.org/skillsage/server/api/rest/ai"
	"codeberg.org/skillsage/server/api/rest/auth"
	"codeberg.org/skillsage/server/api/rest/feedback"
	"codeberg.org/skillsage/server/api/rest/health"
	"codeberg.org/skillsage/server/api/rest/interviews"
	"codeberg.org/skillsage/server/api/rest/questions"
	"codeberg.org/skillsage/server/api/rest/submissions"
	"codeberg.org/skillsage/server/api/rest/users"
	"codeberg.org/skillsage/server/api/websocket"
	_ "codeberg.org/skillsage/server/docs"
	"codeberg.org/skillsage/server/internal/metrics"
	ws "codeberg.org/skillsage/server/internal/websocket"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	cfg := server.config
	repos := server.repos
	svc := server.services

	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", health.Handler)
	router.GET("/ready", health.ReadyHandler(map[string]health.Check{
		"postgres": server.db.Ping,
		"redis": func(ctx context.Context) error {
			return server.redis.Ping(ctx).Err()
		},
	}))
	router.GET("/metrics", metrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	{
		api.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(api, repos.Users, svc.OTP, svc.Mailer, auth.Options{
			OTPTTL:       cfg.OTPTTL,
			FrontendURL:  cfg.FrontendURL,
			OAuthEnabled: svc.OAuthEnabled,
			RateLimit:    svc.AuthLimit,
		})
		users.RegisterRoutes(api, repos.Users)
		questions.RegisterRoutes(api, repos.Questions, svc.Analyzer)
		interviews.RegisterRoutes(api, svc.Interviews)
		submissions.RegisterRoutes(api, svc.Submissions)
		feedback.RegisterRoutes(api, svc.Interviews, repos.Feedback)
		ai.RegisterRoutes(api, ai.Services{
			Interviews: svc.Interviews,
			Plagiarism: svc.Plagiarism,
			Analyzer:   svc.Analyzer,
			Integrity:  svc.Integrity,
		})
		websocket.RegisterRoutes(
			api,
			server.hub,
			ws.NewOriginChecker(cfg.AllowedOrigins, cfg.IsProduction()),
			repos.Interviews,
			repos.Chat,
			svc.RoomBuffer,
		)
	}
}

// allows the configured frontends to call the API with credentials
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
