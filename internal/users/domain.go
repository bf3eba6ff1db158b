package users

import (
	"time"

	"github.com/linkstash/linkstash/internal/auth"
)

// Profile is the client-facing projection of an account. It never
// carries the password hash.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
}

// ProfileFromUser projects an account onto its public shape.
func ProfileFromUser(user *auth.User) Profile {
	return Profile{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}
