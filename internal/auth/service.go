package auth

import (
	"context"
	"errors"

	"github.com/linkstash/linkstash/internal/platform/httpx"
)

// Service wraps the signup and signin flows.
type Service struct {
	repo   Repository
	hasher *Hasher
	tokens *TokenManager
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher *Hasher, tokens *TokenManager) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Signup registers a new account and returns a fresh access token.
// Duplicate emails surface as httpx.ErrDuplicateEmail.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	user, err := s.repo.CreateUser(ctx, email, hash)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user.ID, user.Email)
}

// Signin validates credentials and returns a fresh access token. An
// unknown email and a wrong password produce the same error so the
// response does not leak which one it was.
func (s *Service) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return "", httpx.ErrInvalidCredentials
		}
		return "", err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return "", httpx.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID, user.Email)
}
