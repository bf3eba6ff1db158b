package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/linkstash/linkstash/internal/auth"
	"github.com/linkstash/linkstash/internal/bookmarks"
	"github.com/linkstash/linkstash/internal/observability"
	"github.com/linkstash/linkstash/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthHandler      *auth.Handler
	AuthMiddleware   auth.Middleware
	UsersHandler     *users.Handler
	BookmarksHandler *bookmarks.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with Linkstash defaults. Signup
// and signin stay public; everything under /users and /bookmarks is
// behind the bearer-token guard.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireUser)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/bookmarks", params.BookmarksHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
