package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// OAuthUser is the subset of a provider profile used to sign users in.
type OAuthUser struct {
	Provider  string
	Email     string
	FirstName string
	LastName  string
}

// context keys set by AuthMiddleware
const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
	ContextRole   = "user_role"
)

const tokenTTL = 7 * 24 * time.Hour
