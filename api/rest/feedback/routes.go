package feedback

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/skillsage/users"
)

func RegisterRoutes(router *gin.RouterGroup, access InterviewAccess, store FeedbackStore) {
	feedbacks := router.Group("/feedbacks")
	feedbacks.Use(auth.AuthMiddleware())
	{
		feedbacks.POST("", auth.RequireRole(string(users.RoleRecruiter)), CreateFeedback(access, store))
		feedbacks.GET("/:interviewId", GetFeedback(access, store))
	}
}
