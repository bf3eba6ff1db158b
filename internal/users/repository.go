package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkstash/linkstash/internal/platform/httpx"
)

const pgUniqueViolation = "23505"

// Repository provides PostgreSQL backed persistence for profiles.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// UpdateProfile applies the non-nil fields of req to the user row and
// returns the updated projection. Changing the email to one already
// registered surfaces as httpx.ErrDuplicateEmail.
func (r *Repository) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			email      = COALESCE($2, email),
			first_name = COALESCE($3, first_name),
			last_name  = COALESCE($4, last_name),
			updated_at = now()
		WHERE id = $1
		RETURNING id, email, first_name, last_name, created_at`,
		userID, req.Email, req.FirstName, req.LastName)

	var p Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, httpx.ErrDuplicateEmail
		}
		return nil, err
	}
	return &p, nil
}
