package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/saransh1220/linkhub/internal/gateway/middleware"
	"github.com/saransh1220/linkhub/internal/modules/auth/application"
	"github.com/saransh1220/linkhub/internal/modules/auth/domain"
	"github.com/saransh1220/linkhub/internal/shared/utils"
)

// AuthService defines the interface for auth operations
type AuthService interface {
	Register(ctx context.Context, req application.RegisterRequest) (*application.AuthResult, error)
	Login(ctx context.Context, req application.LoginRequest) (*application.AuthResult, error)
	GoogleLogin(ctx context.Context, req application.GoogleLoginRequest) (*application.AuthResult, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

type AuthHandler struct {
	service AuthService
	logger  *slog.Logger
}

func NewAuthHandler(service AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req application.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	res, err := h.service.GoogleLogin(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "user not authenticated", nil)
		return
	}

	account, err := h.service.GetAccount(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, account.View())
}

func (h *AuthHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		utils.WriteError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrAccountExists):
		utils.WriteError(w, http.StatusConflict, "account already exists", nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		utils.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, domain.ErrInvalidGoogleToken):
		utils.WriteError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, domain.ErrAccountNotFound):
		utils.WriteError(w, http.StatusNotFound, "account not found", nil)
	default:
		h.logger.Error("auth request failed", "path", r.URL.Path, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
