package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/linkstash/linkstash/internal/platform/httpx"
)

// Middleware guards protected routes with bearer-token authentication.
type Middleware struct {
	Logger *slog.Logger
	Tokens *TokenManager
	Repo   Repository
}

// RequireUser verifies the Authorization header, resolves the token
// subject to a live account, and stores it in the request context.
// Missing or invalid tokens, and tokens whose user no longer exists,
// all produce a 401.
func (m Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, tokenString, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		claims, err := m.Tokens.Verify(tokenString)
		if err != nil {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		user, err := m.Repo.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if m.Logger != nil {
				m.Logger.Error("load user for token", slog.Any("error", err))
			}
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}
