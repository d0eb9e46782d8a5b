package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/server/middleware"
	"github.com/iudanet/storefront/internal/server/storage"
	"github.com/iudanet/storefront/internal/server/storage/sqlite"
	"github.com/iudanet/storefront/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupTestServer поднимает router поверх in-memory sqlite
func setupTestServer(t *testing.T) (*httptest.Server, *sqlite.Storage) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(setupTestLogger(), store, RouterConfig{Version: "test"}))
	t.Cleanup(func() {
		srv.Close()
		_ = store.Close()
	})
	return srv, store
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeCart(t *testing.T, data []byte) api.Cart {
	t.Helper()
	var cart api.Cart
	require.NoError(t, json.Unmarshal(data, &cart))
	return cart
}

func decodeError(t *testing.T, data []byte) api.ErrorResponse {
	t.Helper()
	var e api.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestGetCart_CreatesEmpty(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/v1/carts/cart-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(data), `"items":[]`)

	cart := decodeCart(t, data)
	assert.Equal(t, "cart-1", cart.ID)
	assert.Equal(t, int64(0), cart.Version)
	assert.Equal(t, int64(0), cart.Total)
}

func TestGetCart_InvalidID(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/v1/carts/bad.id", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, codeInvalidRequest, decodeError(t, data).Error)
}

func TestAddItem(t *testing.T) {
	srv, _ := setupTestServer(t)
	url := srv.URL + "/api/v1/carts/cart-1/items"

	tests := []struct {
		body     any
		name     string
		wantCode int
		wantErr  string
	}{
		{name: "valid", body: api.AddItemRequest{ProductID: "p-mug", Quantity: 2}, wantCode: http.StatusOK},
		{name: "malformed json", body: `{"product_id":`, wantCode: http.StatusBadRequest, wantErr: codeInvalidRequest},
		{name: "unknown field", body: `{"product_id":"p-mug","quantity":1,"price":1}`, wantCode: http.StatusBadRequest, wantErr: codeInvalidRequest},
		{name: "zero quantity", body: api.AddItemRequest{ProductID: "p-mug"}, wantCode: http.StatusBadRequest, wantErr: codeInvalidRequest},
		{name: "bad product id", body: api.AddItemRequest{ProductID: "p mug", Quantity: 1}, wantCode: http.StatusBadRequest, wantErr: codeInvalidRequest},
		{name: "unknown product", body: api.AddItemRequest{ProductID: "p-missing", Quantity: 1}, wantCode: http.StatusNotFound, wantErr: codeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := doJSON(t, http.MethodPost, url, tt.body)
			require.Equal(t, tt.wantCode, resp.StatusCode, string(data))

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, data).Error)
				return
			}

			cart := decodeCart(t, data)
			require.Len(t, cart.Items, 1)
			assert.Equal(t, "p-mug", cart.Items[0].ProductID)
			assert.Equal(t, 2, cart.Items[0].Quantity)
			assert.Equal(t, int64(2500), cart.Total)
		})
	}
}

func TestUpdateItems_BatchAppliesEveryDelta(t *testing.T) {
	srv, store := setupTestServer(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, "cart-1", "p-mug", 1)
	require.NoError(t, err)
	cart, err := store.AddItem(ctx, "cart-1", "p-tee", 3)
	require.NoError(t, err)
	mugID, teeID := cart.Items[0].ID, cart.Items[1].ID

	resp, data := doJSON(t, http.MethodPatch, srv.URL+"/api/v1/carts/cart-1/items", api.UpdateItemsRequest{
		Updates: []api.ItemDelta{
			{ItemID: mugID, Delta: 41},
			{ItemID: teeID, Delta: -10},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	got := decodeCart(t, data)
	assert.Equal(t, cart.Version+1, got.Version)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 42, got.Items[0].Quantity)
	// серверная граница снизу
	assert.Equal(t, 1, got.Items[1].Quantity)
	assert.Equal(t, int64(42*1250+2400), got.Total)
}

func TestUpdateItems_Errors(t *testing.T) {
	srv, store := setupTestServer(t)
	ctx := context.Background()

	cart, err := store.AddItem(ctx, "cart-1", "p-mug", 2)
	require.NoError(t, err)
	mugID := cart.Items[0].ID

	tooMany := make([]api.ItemDelta, maxUpdatesPerRequest+1)
	for i := range tooMany {
		tooMany[i] = api.ItemDelta{ItemID: mugID, Delta: 1}
	}

	tests := []struct {
		body     any
		name     string
		cartID   string
		wantErr  string
		wantCode int
	}{
		{name: "empty updates", cartID: "cart-1", body: api.UpdateItemsRequest{}, wantCode: http.StatusBadRequest, wantErr: codeInvalidRequest},
		{name: "zero delta", cartID: "cart-1", body: api.UpdateItemsRequest{Updates: []api.ItemDelta{{ItemID: mugID}}}, wantCode: http.StatusBadRequest, wantErr: codeInvalidRequest},
		{name: "bad item id", cartID: "cart-1", body: api.UpdateItemsRequest{Updates: []api.ItemDelta{{ItemID: "a/b", Delta: 1}}}, wantCode: http.StatusBadRequest, wantErr: codeInvalidRequest},
		{name: "too many updates", cartID: "cart-1", body: api.UpdateItemsRequest{Updates: tooMany}, wantCode: http.StatusBadRequest, wantErr: codeInvalidRequest},
		{name: "unknown item", cartID: "cart-1", body: api.UpdateItemsRequest{Updates: []api.ItemDelta{{ItemID: mugID, Delta: 3}, {ItemID: "missing", Delta: 1}}}, wantCode: http.StatusNotFound, wantErr: codeNotFound},
		{name: "unknown cart", cartID: "cart-2", body: api.UpdateItemsRequest{Updates: []api.ItemDelta{{ItemID: mugID, Delta: 1}}}, wantCode: http.StatusNotFound, wantErr: codeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := doJSON(t, http.MethodPatch, srv.URL+"/api/v1/carts/"+tt.cartID+"/items", tt.body)
			require.Equal(t, tt.wantCode, resp.StatusCode, string(data))
			assert.Equal(t, tt.wantErr, decodeError(t, data).Error)
		})
	}

	// ни одна ошибочная партия не изменила корзину
	after, err := store.GetOrCreateCart(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, cart.Version, after.Version)
	assert.Equal(t, 2, after.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	srv, store := setupTestServer(t)

	cart, err := store.AddItem(context.Background(), "cart-1", "p-mug", 2)
	require.NoError(t, err)

	resp, data := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/carts/cart-1/items/"+cart.Items[0].ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	got := decodeCart(t, data)
	assert.Empty(t, got.Items)
	assert.Equal(t, cart.Version+1, got.Version)

	resp, data = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/carts/cart-1/items/"+cart.Items[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, codeNotFound, decodeError(t, data).Error)
}

func TestSearchProducts(t *testing.T) {
	srv, _ := setupTestServer(t)

	tests := []struct {
		name     string
		query    string
		wantIDs  []string
		wantCode int
	}{
		{name: "match by name", query: "?q=mug", wantCode: http.StatusOK, wantIDs: []string{"p-mug"}},
		{name: "limit", query: "?limit=1", wantCode: http.StatusOK, wantIDs: []string{"p-cap"}},
		{name: "no match", query: "?q=laptop", wantCode: http.StatusOK, wantIDs: []string{}},
		{name: "bad limit", query: "?limit=abc", wantCode: http.StatusBadRequest},
		{name: "negative limit", query: "?limit=-1", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/v1/products"+tt.query, nil)
			require.Equal(t, tt.wantCode, resp.StatusCode, string(data))
			if tt.wantCode != http.StatusOK {
				assert.Equal(t, codeInvalidRequest, decodeError(t, data).Error)
				return
			}

			var out api.ProductsResponse
			require.NoError(t, json.Unmarshal(data, &out))
			ids := make([]string, 0, len(out.Products))
			for _, p := range out.Products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestRouter_HealthAndUnknownRoutes(t *testing.T) {
	srv, store := setupTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, string(data))

	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, codeNotFound, decodeError(t, data).Error)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/v1/carts/cart-1/items", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	// после закрытия хранилища health и API отдают 503
	require.NoError(t, store.Close())
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/v1/carts/cart-1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, codeUnavailable, decodeError(t, data).Error)
}

func TestRouter_RateLimit(t *testing.T) {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	limiter := middleware.NewRateLimiter(2, time.Minute, setupTestLogger())
	defer limiter.Stop()

	srv := httptest.NewServer(NewRouter(setupTestLogger(), store, RouterConfig{RateLimiter: limiter}))
	defer srv.Close()

	for range 2 {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/carts/cart-1", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/api/v1/carts/cart-1", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, "rate_limited", decodeError(t, data).Error)

	// health не ограничивается
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// failingStorage возвращает заданную ошибку на любой вызов
type failingStorage struct {
	err error
}

func (f failingStorage) GetOrCreateCart(context.Context, string) (*models.Cart, error) {
	return nil, f.err
}

func (f failingStorage) AddItem(context.Context, string, string, int) (*models.Cart, error) {
	return nil, f.err
}

func (f failingStorage) UpdateQuantities(context.Context, string, []storage.ItemDelta) (*models.Cart, error) {
	return nil, f.err
}

func (f failingStorage) RemoveItem(context.Context, string, string) (*models.Cart, error) {
	return nil, f.err
}

func (f failingStorage) SearchProducts(context.Context, string, int) ([]*models.Product, error) {
	return nil, f.err
}

func (f failingStorage) GetProduct(context.Context, string) (*models.Product, error) {
	return nil, f.err
}

func (f failingStorage) Ping(context.Context) error { return f.err }

func TestRouter_InternalErrorsAreHidden(t *testing.T) {
	srv := httptest.NewServer(NewRouter(setupTestLogger(), failingStorage{err: errors.New("disk I/O error: secret path")}, RouterConfig{}))
	defer srv.Close()

	requests := []struct {
		body   any
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/v1/carts/cart-1"},
		{method: http.MethodPost, path: "/api/v1/carts/cart-1/items", body: api.AddItemRequest{ProductID: "p-mug", Quantity: 1}},
		{method: http.MethodPatch, path: "/api/v1/carts/cart-1/items", body: api.UpdateItemsRequest{Updates: []api.ItemDelta{{ItemID: "1", Delta: 1}}}},
		{method: http.MethodDelete, path: "/api/v1/carts/cart-1/items/1"},
		{method: http.MethodGet, path: "/api/v1/products?q=mug"},
	}

	for _, tt := range requests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, data := doJSON(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			e := decodeError(t, data)
			assert.Equal(t, codeInternal, e.Error)
			assert.NotContains(t, e.Message, "secret")
		})
	}
}
