package submissions

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/skillsage/users"
)

func RegisterRoutes(router *gin.RouterGroup, svc SubmissionService) {
	submissions := router.Group("/submissions")
	submissions.Use(auth.AuthMiddleware())
	{
		submissions.POST("", auth.RequireRole(string(users.RoleCandidate)), Submit(svc))
		submissions.GET("/:interviewId", auth.RequireRole(string(users.RoleRecruiter)), GetSubmission(svc))
	}
}
