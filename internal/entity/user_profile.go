package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

const RoleAdmin = "admin"

// UserProfile is keyed by the identity provider's user id (1:1).
type UserProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DefaultProfile builds the profile synthesized on first authenticated fetch:
// username is the local-part of the email, role is "user".
func DefaultProfile(userID, email string) *UserProfile {
	username := email
	if at := strings.Index(email, "@"); at >= 0 {
		username = email[:at]
	}

	return &UserProfile{
		ID:        userID,
		Username:  username,
		Email:     email,
		Role:      "user",
		CreatedAt: time.Now(),
	}
}

type ProfileRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*UserProfile, error)
	Insert(ctx context.Context, p *UserProfile) error
	ListAll(ctx context.Context) ([]*UserProfile, error)
}
