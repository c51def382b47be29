package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/usecase"
)

// CartHandler serves the authenticated user's cart. Every route sits
// behind RequireSession.
type CartHandler struct {
	carts  usecase.CartUseCase
	logger *slog.Logger
}

func NewCartHandler(carts usecase.CartUseCase, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// Add puts a product in the cart, merging with an existing row.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	var in struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "JSON inválido", h.logger)
		return
	}

	if err := h.carts.AddItem(r.Context(), identity.ID, in.ProductID, in.Quantity); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidQuantity):
			respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		case errors.Is(err, usecase.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, err.Error(), h.logger)
		default:
			h.logger.Error("failed to add cart item", "user_id", identity.ID, "error", err)
			respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "agregado"}, h.logger)
}

// Get returns the cart with per-line subtotals and the running total.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), identity.ID)
	if err != nil {
		h.logger.Error("failed to get cart", "user_id", identity.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, cart, h.logger)
}

// Update sets the quantity of one cart row.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id inválido", h.logger)
		return
	}

	var in struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "JSON inválido", h.logger)
		return
	}

	if err := h.carts.UpdateItem(r.Context(), identity.ID, itemID, in.Quantity); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidQuantity):
			respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		case errors.Is(err, ports.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "artículo no encontrado", h.logger)
		default:
			h.logger.Error("failed to update cart item", "user_id", identity.ID, "error", err)
			respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "actualizado"}, h.logger)
}

// Delete removes one cart row.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	itemID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id inválido", h.logger)
		return
	}

	if err := h.carts.RemoveItem(r.Context(), identity.ID, itemID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "artículo no encontrado", h.logger)
			return
		}
		h.logger.Error("failed to remove cart item", "user_id", identity.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "eliminado"}, h.logger)
}
