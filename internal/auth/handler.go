package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/caredesk-hq/caredesk/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication and authorization checks.
type Handler struct {
	logger    *slog.Logger
	manager   *Manager
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, manager *Manager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		manager:   manager,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. loginLimiter,
// when non-nil, throttles the login endpoint.
func (h *Handler) MountRoutes(r chi.Router, loginLimiter func(http.Handler) http.Handler) {
	if loginLimiter != nil {
		r.With(loginLimiter).Post("/login", h.handleLogin)
	} else {
		r.Post("/login", h.handleLogin)
	}
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.handleSession)
	r.Post("/check", h.handleCheck)
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session *SessionContext `json:"session"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid request payload", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: a valid email is required", httpx.ErrValidation))
		return
	}

	sess, err := h.manager.Authenticate(r.Context(), req.Email, r.RemoteAddr, r.UserAgent())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpx.RespondError(w, HTTPError(err))
			return
		}
		h.logger.Error("authenticate", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	sc := h.manager.GetSessionContext(r.Context(), sess.Token)
	httpx.JSON(w, http.StatusOK, loginResponse{Token: sess.Token, Session: sc})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	removed := h.manager.Logout(r.Context(), BearerToken(r))
	httpx.JSON(w, http.StatusOK, map[string]bool{"logged_out": removed})
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	if sc := h.manager.GetSessionContext(r.Context(), BearerToken(r)); sc != nil {
		httpx.JSON(w, http.StatusOK, sc)
		return
	}
	guest := h.manager.CreateGuestContext()
	httpx.JSON(w, http.StatusOK, &guest)
}

type checkRequest struct {
	Operation        string `json:"operation" validate:"required"`
	TargetCustomerID int64  `json:"target_customer_id"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid request payload", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: operation is required", httpx.ErrValidation))
		return
	}

	decision := h.manager.Authorize(r.Context(), BearerToken(r), req.Operation, req.TargetCustomerID)
	httpx.JSON(w, http.StatusOK, decisionPayload(decision))
}
