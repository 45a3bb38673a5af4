package auth

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/internal/auth"
	"codeberg.org/skillsage/server/internal/mail"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, store UserStore, otps OTPStore, mailer mail.Sender, opts Options) {
	limited := []gin.HandlerFunc{}
	if opts.RateLimit != nil {
		limited = append(limited, opts.RateLimit)
	}

	with := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, limited...), h)
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", with(RegisterHandler(store))...)
		authGroup.POST("/login", with(LoginHandler(store))...)
		authGroup.POST("/reset-password-sent-otp", with(SendOTPHandler(store, otps, mailer, opts.OTPTTL))...)
		authGroup.POST("/reset-password", with(ResetPasswordHandler(store, otps))...)
		authGroup.GET("/profile", auth.AuthMiddleware(), ProfileHandler(store))

		if opts.OAuthEnabled {
			authGroup.GET("/google", GoogleBeginHandler())
			authGroup.GET("/google/callback", GoogleCallbackHandler(store, opts.FrontendURL))
		}
	}
}
