package bookmarks

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/internal/auth"
	"github.com/linkstash/linkstash/internal/platform/httpx"
)

type authStubRepo struct {
	usersByID map[int64]*auth.User
}

func (s *authStubRepo) CreateUser(ctx context.Context, email, passwordHash string) (*auth.User, error) {
	user := &auth.User{ID: int64(len(s.usersByID) + 1), Email: email, PasswordHash: passwordHash}
	s.usersByID[user.ID] = user
	return user, nil
}

func (s *authStubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, u := range s.usersByID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (s *authStubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return user, nil
}

type bookmarkTestEnv struct {
	router http.Handler
	tokens *auth.TokenManager
	users  *authStubRepo
}

func newBookmarkEnv(t *testing.T) *bookmarkTestEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenManager("test-secret", 15*time.Minute)
	users := &authStubRepo{usersByID: make(map[int64]*auth.User)}
	guard := auth.Middleware{Logger: logger, Tokens: tokens, Repo: users}
	handler := NewHandler(logger, NewService(newMockRepository()))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireUser)
		r.Route("/bookmarks", handler.MountRoutes)
	})
	return &bookmarkTestEnv{router: r, tokens: tokens, users: users}
}

func (env *bookmarkTestEnv) tokenFor(t *testing.T, email string) string {
	t.Helper()
	user, err := env.users.CreateUser(context.Background(), email, "hash")
	require.NoError(t, err)
	token, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)
	return token
}

func (env *bookmarkTestEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	env.router.ServeHTTP(res, req)
	return res
}

func TestBookmarkRoutesRequireToken(t *testing.T) {
	env := newBookmarkEnv(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/bookmarks"},
		{http.MethodGet, "/bookmarks"},
		{http.MethodGet, "/bookmarks/1"},
		{http.MethodPatch, "/bookmarks/1"},
		{http.MethodDelete, "/bookmarks/1"},
	}
	for _, tc := range cases {
		res := env.do(t, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, res.Code, "%s %s", tc.method, tc.path)
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	env := newBookmarkEnv(t)
	token := env.tokenFor(t, "a@x.com")

	res := env.do(t, http.MethodPost, "/bookmarks", token,
		`{"title":"T","description":"d","link":"https://x.com"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var created Bookmark
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "T", created.Title)
	require.NotNil(t, created.Description)
	assert.Equal(t, "d", *created.Description)
	assert.Equal(t, "https://x.com", created.Link)

	res = env.do(t, http.MethodGet, "/bookmarks", token, "")
	require.Equal(t, http.StatusOK, res.Code)
	var list []Bookmark
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	res = env.do(t, http.MethodGet, "/bookmarks/"+itoa(created.ID), token, "")
	require.Equal(t, http.StatusOK, res.Code)
	var fetched Bookmark
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Link, fetched.Link)

	res = env.do(t, http.MethodPatch, "/bookmarks/"+itoa(created.ID), token, `{"title":"T2"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var updated Bookmark
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	assert.Equal(t, "T2", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "d", *updated.Description)

	res = env.do(t, http.MethodDelete, "/bookmarks/"+itoa(created.ID), token, "")
	require.Equal(t, http.StatusOK, res.Code)
	var deleted Bookmark
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &deleted))
	assert.Equal(t, created.ID, deleted.ID)

	res = env.do(t, http.MethodGet, "/bookmarks", token, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "[]", strings.TrimSpace(res.Body.String()))
}

func TestBookmarkCrossUserAccessDenied(t *testing.T) {
	env := newBookmarkEnv(t)
	ownerToken := env.tokenFor(t, "owner@x.com")
	otherToken := env.tokenFor(t, "other@x.com")

	res := env.do(t, http.MethodPost, "/bookmarks", ownerToken, `{"title":"T","link":"https://x.com"}`)
	require.Equal(t, http.StatusCreated, res.Code)
	var created Bookmark
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))

	id := itoa(created.ID)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/bookmarks/"+id, otherToken, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPatch, "/bookmarks/"+id, otherToken, `{"title":"X"}`).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/bookmarks/"+id, otherToken, "").Code)

	// The other user's list stays empty, the owner's intact.
	res = env.do(t, http.MethodGet, "/bookmarks", otherToken, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "[]", strings.TrimSpace(res.Body.String()))

	res = env.do(t, http.MethodGet, "/bookmarks/"+id, ownerToken, "")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestBookmarkCreateValidation(t *testing.T) {
	env := newBookmarkEnv(t)
	token := env.tokenFor(t, "a@x.com")

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"link":"https://x.com"}`},
		{"missing link", `{"title":"T"}`},
		{"invalid link", `{"title":"T","link":"not-a-url"}`},
		{"malformed json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := env.do(t, http.MethodPost, "/bookmarks", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, res.Code)
		})
	}
}

func TestBookmarkNonNumericID(t *testing.T) {
	env := newBookmarkEnv(t)
	token := env.tokenFor(t, "a@x.com")

	res := env.do(t, http.MethodGet, "/bookmarks/abc", token, "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
