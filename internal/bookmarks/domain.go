package bookmarks

import "time"

// Bookmark is a saved link owned by exactly one user.
type Bookmark struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateBookmarkRequest carries the fields for a new bookmark. The
// owner comes from the request context, never from the payload.
type CreateBookmarkRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Link        string  `json:"link" validate:"required,url"`
}

// UpdateBookmarkRequest carries a partial bookmark update. Nil fields
// are left untouched.
type UpdateBookmarkRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Link        *string `json:"link,omitempty" validate:"omitempty,url"`
}
