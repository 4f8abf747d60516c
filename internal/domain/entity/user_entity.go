package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash and never leaves the service boundary.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Birthday     *string // YYYY-MM-DD
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is the public view of a User.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Birthday  *string   `json:"birthday,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Profile builds a fresh public view of u.
func (u *User) Profile() *UserProfile {
	p := &UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: Timestamp(u.CreatedAt),
		UpdatedAt: Timestamp(u.UpdatedAt),
	}
	if u.Birthday != nil {
		b := *u.Birthday
		p.Birthday = &b
	}
	return p
}
