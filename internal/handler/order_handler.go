package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/villa-93/mini-store/internal/usecase"
)

// OrderHandler serves order placement and order reads. Every route sits
// behind RequireSession.
type OrderHandler struct {
	orders usecase.OrderUseCase
	logger *slog.Logger
}

func NewOrderHandler(orders usecase.OrderUseCase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// Place runs the order placement workflow for the caller's cart.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	var in struct {
		ShippingAddress string `json:"shippingAddress"`
		PaymentMethod   string `json:"paymentMethod"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, "JSON inválido", h.logger)
		return
	}

	orderID, reference, err := h.orders.PlaceOrder(r.Context(), identity, in.ShippingAddress, in.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCartEmpty),
			errors.Is(err, usecase.ErrEmptyAddress),
			errors.Is(err, usecase.ErrInvalidPaymentMethod):
			respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		default:
			h.logger.Error("failed to place order", "user_id", identity.ID, "error", err)
			respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "pedido creado",
		"orderId":   orderID,
		"reference": reference,
	}, h.logger)
}

// List returns the caller's orders, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), identity.ID)
	if err != nil {
		h.logger.Error("failed to list orders", "user_id", identity.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, orders, h.logger)
}

// Detail returns the joined detail rows of one of the caller's orders.
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id inválido", h.logger)
		return
	}

	rows, err := h.orders.OrderDetail(r.Context(), identity.ID, orderID)
	if err != nil {
		if errors.Is(err, usecase.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to get order detail", "order_id", orderID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, rows, h.logger)
}
