package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/villa-93/mini-store/internal/usecase"
)

// sessionCookieMaxAge matches the session store TTL.
const sessionCookieMaxAge = 24 * time.Hour

// AuthHandler serves registration, login/logout, session introspection and
// the password reset pair.
type AuthHandler struct {
	auth   usecase.AuthUseCase
	logger *slog.Logger
}

func NewAuthHandler(auth usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Register creates a customer account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "JSON inválido", h.logger)
		return
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		respondWithError(w, http.StatusBadRequest, "nombre, correo y contraseña son obligatorios", h.logger)
		return
	}

	user, err := h.auth.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to register user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "usuario registrado exitosamente",
		"id":      user.ID,
	}, h.logger)
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "JSON inválido", h.logger)
		return
	}

	sessionID, identity, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to log in", "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}

	http.SetCookie(w, sessionCookie(sessionID, int(sessionCookieMaxAge.Seconds())))
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "login exitoso",
		"user":    identity,
	}, h.logger)
}

// Logout destroys the session and expires the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error("failed to destroy session", "error", err)
			respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
			return
		}
	}

	http.SetCookie(w, sessionCookie("", -1))
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "sesión cerrada"}, h.logger)
}

// Session reports whether the request carries a valid session. Never
// fails: an unauthenticated request gets {"authenticated": false}.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false}, h.logger)
		return
	}

	identity, err := h.auth.CurrentSession(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Error("failed to resolve session", "error", err)
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false}, h.logger)
		return
	}
	if identity == nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false}, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user":          identity,
	}, h.logger)
}

// RecoverPassword generates a reset token for the account and returns it
// directly in the response. No mail delivery is involved.
func (h *AuthHandler) RecoverPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "JSON inválido", h.logger)
		return
	}

	token, err := h.auth.RequestPasswordReset(r.Context(), in.Email)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to request password reset", "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "token generado",
		"token":   token,
	}, h.logger)
}

// ResetPassword redeems a reset token.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "JSON inválido", h.logger)
		return
	}
	if in.Token == "" || in.NewPassword == "" {
		respondWithError(w, http.StatusBadRequest, "token y nueva contraseña son obligatorios", h.logger)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), in.Token, in.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) {
			respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to reset password", "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "contraseña actualizada"}, h.logger)
}
