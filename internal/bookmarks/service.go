package bookmarks

import (
	"context"

	"github.com/linkstash/linkstash/internal/platform/httpx"
)

// RepositoryPort defines data access methods for bookmarks.
type RepositoryPort interface {
	Create(ctx context.Context, userID int64, req CreateBookmarkRequest) (*Bookmark, error)
	ListByUser(ctx context.Context, userID int64) ([]Bookmark, error)
	GetByID(ctx context.Context, id int64) (*Bookmark, error)
	Update(ctx context.Context, id int64, req UpdateBookmarkRequest) (*Bookmark, error)
	Delete(ctx context.Context, id int64) error
}

// Service enforces ownership on every bookmark operation. A missing
// record and a foreign-owned record are deliberately indistinguishable
// to the caller: both surface as httpx.ErrNotFound.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create stores a new bookmark owned by userID.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookmarkRequest) (*Bookmark, error) {
	return s.repo.Create(ctx, userID, req)
}

// List returns the caller's bookmarks.
func (s *Service) List(ctx context.Context, userID int64) ([]Bookmark, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns one bookmark if it exists and belongs to userID.
func (s *Service) Get(ctx context.Context, userID, id int64) (*Bookmark, error) {
	return s.loadOwned(ctx, userID, id)
}

// Update applies a partial update after the ownership check.
func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateBookmarkRequest) (*Bookmark, error) {
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a bookmark after the ownership check and returns the
// pre-delete snapshot.
func (s *Service) Delete(ctx context.Context, userID, id int64) (*Bookmark, error) {
	bookmark, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *Service) loadOwned(ctx context.Context, userID, id int64) (*Bookmark, error) {
	bookmark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bookmark.UserID != userID {
		return nil, httpx.ErrNotFound
	}
	return bookmark, nil
}
