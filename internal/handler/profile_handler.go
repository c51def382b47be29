package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/villa-93/mini-store/internal/usecase"
)

// ProfileHandler serves the authenticated user's profile. Both routes sit
// behind RequireSession.
type ProfileHandler struct {
	profile usecase.ProfileUseCase
	logger  *slog.Logger
}

func NewProfileHandler(profile usecase.ProfileUseCase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profile: profile, logger: logger}
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	user, err := h.profile.GetProfile(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to get profile", "user_id", identity.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// Update changes the caller's display name and optionally the password.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	var in struct {
		Name        string `json:"name"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "JSON inválido", h.logger)
		return
	}
	if in.Name == "" {
		respondWithError(w, http.StatusBadRequest, "el nombre es obligatorio", h.logger)
		return
	}

	if err := h.profile.UpdateProfile(r.Context(), identity.ID, in.Name, in.NewPassword); err != nil {
		h.logger.Error("failed to update profile", "user_id", identity.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "actualizado"}, h.logger)
}
