package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kozydev/kozy-server/internal/logger"
	"github.com/kozydev/kozy-server/internal/model"
)

// AuthService defines login, registration and listing operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login verifies credentials and returns a bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.logger.Debug("Auth handler: processing login request", "email", req.Email)

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed", "email", req.Email)
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: login completed", "email", req.Email)

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Register creates an account and returns a bearer token, or the full set of
// validation errors.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.logger.Debug("Auth handler: processing registration request", "email", req.Email)

	token, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: registration failed", "email", req.Email)
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed", "email", req.Email)

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// ListUsers returns every account. Requires an authenticated caller.
func (h *Auth) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Auth handler: listing users failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
