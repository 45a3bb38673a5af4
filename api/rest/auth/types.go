package auth

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/skillsage/server/skillsage/users"
)

// user persistence needed by the auth handlers
type UserStore interface {
	Create(ctx context.Context, params users.CreateParams) (*users.User, error)
	FindByID(ctx context.Context, userID string) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	FindOrCreateByEmail(ctx context.Context, params users.CreateParams) (*users.User, error)
}

// issues and checks password reset codes
type OTPStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Consume(ctx context.Context, email, code string) error
}

// route wiring options
type Options struct {
	// ttl shown in the OTP mail
	OTPTTL time.Duration

	// where the OAuth callback sends the browser with the token
	FrontendURL string

	// registers the Google routes
	OAuthEnabled bool

	// applied to login, register and OTP routes; nil disables limiting
	RateLimit gin.HandlerFunc
}

type RegisterRequest struct {
	FirstName    string     `json:"firstName" binding:"required,notblank,max=100"`
	LastName     string     `json:"lastName" binding:"max=100"`
	MobileNumber string     `json:"mobileNumber" binding:"max=32"`
	Email        string     `json:"email" binding:"required,email,max=254"`
	Password     string     `json:"password" binding:"required,min=6,max=72"`
	Role         users.Role `json:"role" binding:"required,role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SendOTPParams struct {
	Email string `form:"email" binding:"required,email"`
}

type ResetPasswordParams struct {
	Email       string `form:"email" binding:"required,email"`
	NewPassword string `form:"newPassword" binding:"required,min=6,max=72"`
	OTP         string `form:"otp" binding:"required,len=6,numeric"`
}

// public view of a user
type UserResponse struct {
	UserID    string     `json:"userId"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      users.Role `json:"role"`
}

// returned after a successful login
type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	UserResponse UserResponse `json:"userResponse"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *users.User) UserResponse {
	return UserResponse{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
