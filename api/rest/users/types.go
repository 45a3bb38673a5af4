package users

import (
	"context"
	"time"

	"codeberg.org/skillsage/server/skillsage/users"
)

// user persistence needed by the profile handlers
type UserStore interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
	UpdateProfile(ctx context.Context, userID string, req users.UpdateProfileRequest) (*users.User, error)
}

type ProfileResponse struct {
	UserID       string     `json:"userId"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	MobileNumber string     `json:"mobileNumber"`
	Role         users.Role `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toProfileResponse(u *users.User) ProfileResponse {
	return ProfileResponse{
		UserID:       u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MobileNumber: u.MobileNumber,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}
