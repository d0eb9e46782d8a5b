package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/storefront/internal/server/storage"
	"github.com/iudanet/storefront/pkg/api"
)

const (
	defaultProductLimit = 20
	maxProductLimit     = 100
)

// ProductHandler handles catalog requests
type ProductHandler struct {
	logger  *slog.Logger
	storage storage.ProductStorage
}

// NewProductHandler creates a new product handler
func NewProductHandler(logger *slog.Logger, storage storage.ProductStorage) *ProductHandler {
	return &ProductHandler{
		logger:  logger,
		storage: storage,
	}
}

// Search обрабатывает GET /api/v1/products?q=&limit=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := defaultProductLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxProductLimit)
	}

	products, err := h.storage.SearchProducts(r.Context(), query, limit)
	if err != nil {
		sendStorageError(h.logger, w, r, err)
		return
	}

	resp := api.ProductsResponse{Products: make([]api.Product, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, productToAPI(p))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
