package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/storefront/internal/server/storage"
	"github.com/iudanet/storefront/internal/validation"
	"github.com/iudanet/storefront/pkg/api"
)

// maxUpdatesPerRequest ограничение числа строк в одном PATCH
const maxUpdatesPerRequest = 200

// CartHandler handles cart requests
type CartHandler struct {
	logger  *slog.Logger
	storage storage.CartStorage
}

// NewCartHandler creates a new cart handler
func NewCartHandler(logger *slog.Logger, storage storage.CartStorage) *CartHandler {
	return &CartHandler{
		logger:  logger,
		storage: storage,
	}
}

// cartID извлекает и проверяет {cartID} из пути
func (h *CartHandler) cartID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "cartID")
	if err := validation.ValidateCartID(id); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return "", false
	}
	return id, true
}

// GetCart обрабатывает GET /api/v1/carts/{cartID}
// Несуществующая корзина создаётся пустой
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	cart, err := h.storage.GetOrCreateCart(r.Context(), cartID)
	if err != nil {
		sendStorageError(h.logger, w, r, err)
		return
	}

	sendJSON(h.logger, w, cartToAPI(cart), http.StatusOK)
}

// AddItem обрабатывает POST /api/v1/carts/{cartID}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req api.AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	if err := validation.ValidateProductID(req.ProductID); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	if err := validation.ValidateQuantity(req.Quantity); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	cart, err := h.storage.AddItem(r.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		sendStorageError(h.logger, w, r, err)
		return
	}

	h.logger.Debug("Item added", "cart_id", cartID, "product_id", req.ProductID, "quantity", req.Quantity)
	sendJSON(h.logger, w, cartToAPI(cart), http.StatusOK)
}

// UpdateItems обрабатывает PATCH /api/v1/carts/{cartID}/items
// Все дельты применяются в одной транзакции
func (h *CartHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req api.UpdateItemsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	if len(req.Updates) == 0 {
		sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, "updates cannot be empty")
		return
	}
	if len(req.Updates) > maxUpdatesPerRequest {
		sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest,
			fmt.Sprintf("too many updates (max %d)", maxUpdatesPerRequest))
		return
	}

	deltas := make([]storage.ItemDelta, 0, len(req.Updates))
	for _, u := range req.Updates {
		if err := validation.ValidateItemID(u.ItemID); err != nil {
			sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, err.Error())
			return
		}
		if err := validation.ValidateDelta(u.Delta); err != nil {
			sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, err.Error())
			return
		}
		deltas = append(deltas, storage.ItemDelta{ItemID: u.ItemID, Delta: u.Delta})
	}

	cart, err := h.storage.UpdateQuantities(r.Context(), cartID, deltas)
	if err != nil {
		sendStorageError(h.logger, w, r, err)
		return
	}

	h.logger.Debug("Quantities updated", "cart_id", cartID, "items", len(deltas), "version", cart.Version)
	sendJSON(h.logger, w, cartToAPI(cart), http.StatusOK)
}

// RemoveItem обрабатывает DELETE /api/v1/carts/{cartID}/items/{itemID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if err := validation.ValidateItemID(itemID); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	cart, err := h.storage.RemoveItem(r.Context(), cartID, itemID)
	if err != nil {
		sendStorageError(h.logger, w, r, err)
		return
	}

	sendJSON(h.logger, w, cartToAPI(cart), http.StatusOK)
}
