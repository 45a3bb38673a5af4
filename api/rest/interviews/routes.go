package interviews

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/skillsage/users"
)

func RegisterRoutes(router *gin.RouterGroup, svc InterviewService) {
	recruiter := auth.RequireRole(string(users.RoleRecruiter))

	interviews := router.Group("/interviews")
	interviews.Use(auth.AuthMiddleware())
	{
		interviews.GET("", ListInterviews(svc))
		interviews.GET("/:id", GetInterview(svc))
		interviews.POST("", recruiter, CreateInterview(svc))
		interviews.PUT("/:id", recruiter, UpdateInterview(svc))
		interviews.DELETE("/:id", recruiter, DeleteInterview(svc))
	}
}
