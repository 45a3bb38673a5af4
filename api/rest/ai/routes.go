package ai

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/skillsage/users"
)

// every route requires the recruiter who owns the interview
func RegisterRoutes(router *gin.RouterGroup, svc Services) {
	ai := router.Group("/ai")
	ai.Use(
		auth.AuthMiddleware(),
		auth.RequireRole(string(users.RoleRecruiter)),
	)

	owned := RequireOwnership(svc.Interviews)
	{
		ai.GET("/detect-plagiarism/:id", owned, DetectPlagiarism(svc.Plagiarism))
		ai.GET("/generate-summary/:id", owned, GenerateSummary(svc.Analyzer))
		ai.GET("/generate-time-space-complexity/:id", owned, AnalyzeComplexity(svc.Analyzer))
		ai.GET("/code-quality-check/:id", owned, CheckQuality(svc.Analyzer))
		ai.GET("/paste-events/:id", owned, ListPasteEvents(svc.Integrity))
	}
}
