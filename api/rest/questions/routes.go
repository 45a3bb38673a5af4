package questions

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/skillsage/users"
)

func RegisterRoutes(router *gin.RouterGroup, store QuestionStore, generator QuestionGenerator) {
	recruiter := auth.RequireRole(string(users.RoleRecruiter))

	questions := router.Group("/questions")
	questions.Use(auth.AuthMiddleware())
	{
		questions.GET("", ListQuestions(store))
		questions.GET("/:id", GetQuestion(store))
		questions.POST("", recruiter, CreateQuestion(store))
		questions.POST("/generate", recruiter, GenerateQuestion(generator))
		questions.PUT("/:id", recruiter, UpdateQuestion(store))
		questions.DELETE("/:id", recruiter, DeleteQuestion(store))
	}
}
