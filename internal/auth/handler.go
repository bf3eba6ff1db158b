package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/linkstash/linkstash/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the signup and signin flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. Both
// endpoints are public.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/signin", h.signin)
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeCredentials(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	token, err := h.service.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		if !httpx.IsClientError(err) {
			h.logger.Error("signup failed", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tokenResponse{AccessToken: token})
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeCredentials(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	token, err := h.service.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if !httpx.IsClientError(err) {
			h.logger.Error("signin failed", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

func (h *Handler) decodeCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return req, fmt.Errorf("%w: malformed request body", httpx.ErrValidation)
	}
	if err := h.validator.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %s", httpx.ErrValidation, validationDetail(err))
	}
	return req, nil
}

// validationDetail flattens validator errors into a short field list
// safe to return to the client.
func validationDetail(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid request"
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}
