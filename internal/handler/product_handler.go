package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/villa-93/mini-store/internal/usecase"
)

// maxImageUploadSize caps multipart product image uploads.
const maxImageUploadSize = 10 << 20 // 10 MiB

// ProductHandler serves the public catalog and the admin image upload.
type ProductHandler struct {
	catalog usecase.CatalogUseCase
	logger  *slog.Logger
}

func NewProductHandler(catalog usecase.CatalogUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// List returns products with stock, newest first.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, products, h.logger)
}

// Get returns one product.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id inválido", h.logger)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to get product", "product_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, product, h.logger)
}

// UploadImage receives a multipart image for a product and stores it in
// the file storage. Admin only.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no autorizado", h.logger)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "id inválido", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "imagen inválida", h.logger)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "falta el archivo de imagen", h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.catalog.UploadProductImage(r.Context(), identity, id, file, contentType)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrForbidden):
			respondWithError(w, http.StatusForbidden, err.Error(), h.logger)
		case errors.Is(err, usecase.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, err.Error(), h.logger)
		default:
			h.logger.Error("failed to upload product image", "product_id", id, "error", err)
			respondWithError(w, http.StatusInternalServerError, "error en el servidor", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message":   "imagen actualizada",
		"image_url": url,
	}, h.logger)
}
