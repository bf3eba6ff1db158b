package users

import (
	"context"
)

// RepositoryPort defines data access methods for profiles.
type RepositoryPort interface {
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*Profile, error)
}

// Service handles profile business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*Profile, error) {
	return s.repo.UpdateProfile(ctx, userID, req)
}
