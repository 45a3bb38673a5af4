package users

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
)

func RegisterRoutes(rg *gin.RouterGroup, store UserStore) {
	users := rg.Group("/users")
	users.Use(auth.AuthMiddleware()) // all user routes require authentication

	users.GET("/me", GetProfile(store))
	users.PUT("/me", UpdateProfile(store))
}
