package users

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// a user's role decides which endpoints they may call
type Role string

const (
	RoleRecruiter Role = "RECRUITER"
	RoleCandidate Role = "CANDIDATE"
)

// represents a registered user
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// contains data for creating a user
type CreateParams struct {
	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	PasswordHash string
	Role         Role
}

// contains data for updating a user's profile
type UpdateProfileRequest struct {
	FirstName    string `json:"firstName" binding:"required,notblank,max=100"`
	LastName     string `json:"lastName" binding:"max=100"`
	MobileNumber string `json:"mobileNumber" binding:"max=32"`
}

// returns "First Last" without stray spaces
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// normalizes an email for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
