package auth

import "time"

// User represents a registered account. PasswordHash stays inside the
// service layer; handlers expose projections without it.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
