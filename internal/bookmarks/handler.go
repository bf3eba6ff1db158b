package bookmarks

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/linkstash/linkstash/internal/auth"
	"github.com/linkstash/linkstash/internal/platform/httpx"
)

// Handler manages bookmark endpoints. All routes are mounted behind
// the bearer-token guard.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers bookmark routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	var req CreateBookmarkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid bookmark fields", httpx.ErrValidation))
		return
	}

	bookmark, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		h.respondServiceError(w, "create bookmark", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, bookmark)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	list, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		h.respondServiceError(w, "list bookmarks", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	bookmark, err := h.service.Get(r.Context(), user.ID, id)
	if err != nil {
		h.respondServiceError(w, "get bookmark", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bookmark)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	var req UpdateBookmarkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid bookmark fields", httpx.ErrValidation))
		return
	}

	bookmark, err := h.service.Update(r.Context(), user.ID, id, req)
	if err != nil {
		h.respondServiceError(w, "update bookmark", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bookmark)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.userAndID(w, r)
	if !ok {
		return
	}

	bookmark, err := h.service.Delete(r.Context(), user.ID, id)
	if err != nil {
		h.respondServiceError(w, "delete bookmark", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bookmark)
}

// userAndID pulls the authenticated user and the {id} route parameter.
// A non-numeric id gets the same not-found response as a missing row.
func (h *Handler) userAndID(w http.ResponseWriter, r *http.Request) (*auth.User, int64, bool) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return nil, 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return nil, 0, false
	}
	return user, id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	if !httpx.IsClientError(err) {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
