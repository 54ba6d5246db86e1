package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/services/auth"
)

// AuthHandler exposes login/logout/current-user endpoints
type AuthHandler struct {
	authService interfaces.AuthService
	logger      arbor.ILogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService interfaces.AuthService, logger arbor.ILogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler handles POST /api/auth/login
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req loginRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			WriteError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error().Err(err).Msg("Login failed")
		WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "docugen_session",
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
	})

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": session.ID,
		"user": map[string]string{
			"id":    session.UserID,
			"email": session.Email,
		},
	})
}

// LogoutHandler handles POST /api/auth/logout
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := h.authService.Logout(r.Context(), SessionID(r)); err != nil {
		h.logger.Error().Err(err).Msg("Logout failed")
		WriteError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "docugen_session",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	WriteSuccess(w, "Logged out")
}

// CurrentUserHandler handles GET /api/auth/me
func (h *AuthHandler) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), SessionID(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to resolve session")
		return
	}
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Not signed in")
		return
	}

	WriteJSON(w, http.StatusOK, user)
}
