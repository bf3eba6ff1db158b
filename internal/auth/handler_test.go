package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/internal/auth"
	"github.com/linkstash/linkstash/internal/platform/httpx"
	_ "github.com/linkstash/linkstash/testing"
)

type stubRepo struct {
	usersByEmail map[string]*auth.User
	usersByID    map[int64]*auth.User
	nextID       int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		usersByEmail: make(map[string]*auth.User),
		usersByID:    make(map[int64]*auth.User),
		nextID:       1,
	}
}

func (s *stubRepo) CreateUser(ctx context.Context, email, passwordHash string) (*auth.User, error) {
	if _, exists := s.usersByEmail[email]; exists {
		return nil, httpx.ErrDuplicateEmail
	}
	user := &auth.User{ID: s.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.usersByEmail[email] = user
	s.usersByID[user.ID] = user
	s.nextID++
	return user, nil
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return user, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return user, nil
}

func newAuthRouter(t *testing.T) (chi.Router, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(repo, auth.NewHasher(), auth.NewTokenManager("test-secret", 15*time.Minute))
	handler := auth.NewHandler(logger, service)
	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r, repo
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestSignupValidation(t *testing.T) {
	router, _ := newAuthRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"pw123456"}`},
		{"missing password", `{"email":"a@x.com"}`},
		{"invalid email", `{"email":"not-an-email","password":"pw123456"}`},
		{"empty body", `{}`},
		{"malformed json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := doJSON(t, router, http.MethodPost, "/auth/signup", tc.body)
			assert.Equal(t, http.StatusBadRequest, res.Code)
		})
	}
}

func TestSignupReturnsToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.AccessToken)
}

func TestSignupDuplicateEmailReturns403(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	res = doJSON(t, router, http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"pw123456"}`)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestSigninReturnsToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	res = doJSON(t, router, http.MethodPost, "/auth/signin", `{"email":"a@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.AccessToken)
}

func TestSigninFailureResponsesMatch(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	wrongPassword := doJSON(t, router, http.MethodPost, "/auth/signin", `{"email":"a@x.com","password":"wrongpass"}`)
	unknownEmail := doJSON(t, router, http.MethodPost, "/auth/signin", `{"email":"nobody@x.com","password":"pw123456"}`)

	// Status and body must be indistinguishable between the two causes.
	assert.Equal(t, http.StatusForbidden, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}
