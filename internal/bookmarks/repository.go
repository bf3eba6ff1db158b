package bookmarks

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkstash/linkstash/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for bookmarks.
// Ownership checks live in the service layer; the repository operates
// on raw record identity.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const bookmarkColumns = `id, user_id, title, description, link, created_at, updated_at`

// Create inserts a bookmark for the given owner.
func (r *Repository) Create(ctx context.Context, userID int64, req CreateBookmarkRequest) (*Bookmark, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO bookmarks (user_id, title, description, link)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+bookmarkColumns,
		userID, req.Title, req.Description, req.Link)
	return scanBookmark(row)
}

// ListByUser returns every bookmark owned by userID, newest first.
// The result is never nil so an empty list encodes as [].
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Bookmark, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = $1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Bookmark, 0)
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.Link, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// GetByID fetches a bookmark regardless of owner.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Bookmark, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = $1`, id)
	return scanBookmark(row)
}

// Update applies the non-nil fields of req to the bookmark row.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateBookmarkRequest) (*Bookmark, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE bookmarks SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			link        = COALESCE($4, link),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+bookmarkColumns,
		id, req.Title, req.Description, req.Link)
	return scanBookmark(row)
}

// Delete removes a bookmark row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func scanBookmark(row pgx.Row) (*Bookmark, error) {
	var b Bookmark
	if err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.Link, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
