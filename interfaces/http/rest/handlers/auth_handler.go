package handlers

import (
	"net/http"
	"time"

	"portfolio/application/services"
	"portfolio/interfaces/http/rest/middleware"
	"portfolio/pkg/auth"
	pkgerrors "portfolio/pkg/errors"
	"portfolio/pkg/utils"

	"go.uber.org/zap"
)

// CookieOptions controls the session cookie attributes
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
}

// CookieOptionsFor returns Strict cookies in production and Lax elsewhere.
// Secure is set everywhere except local development.
func CookieOptionsFor(environment string) CookieOptions {
	opts := CookieOptions{
		Secure:   environment != "development",
		SameSite: http.SameSiteLaxMode,
	}
	if environment == "production" {
		opts.SameSite = http.SameSiteStrictMode
	}
	return opts
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse describes the logged-in principal
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          *auth.Principal `json:"user"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
}

// AuthHandler handles login, logout and session checks
type AuthHandler struct {
	service    *services.AuthService
	cookie     CookieOptions
	errHandler *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *services.AuthService, cookie CookieOptions, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:    service,
		cookie:     cookie,
		errHandler: errHandler,
		logger:     logger,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password, middleware.ClientIP(r))
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(result.Token, int(h.service.TokenLifetime().Seconds())))
	respondJSON(w, h.logger, http.StatusOK, SessionResponse{
		Authenticated: true,
		User:          result.Principal,
		ExpiresAt:     &result.ExpiresAt,
	})
}

// Logout handles POST /api/auth/logout. The token itself stays valid
// until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	respondJSON(w, h.logger, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Verify handles GET /api/auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	principal, err := h.service.Verify(r.Context(), middleware.TokenFromRequest(r))
	if err != nil {
		h.errHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, SessionResponse{Authenticated: true, User: principal})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	}
}
