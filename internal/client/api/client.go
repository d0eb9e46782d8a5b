package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/storefront/pkg/api"
)

// StatusError описывает ответ сервера с кодом вне диапазона 2xx
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the cart service
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client представляет HTTP клиент для взаимодействия с cart service
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// GetCart возвращает корзину (сервер создает пустую при первом обращении)
func (c *Client) GetCart(ctx context.Context, cartID string) (*api.Cart, error) {
	var resp api.Cart
	if err := c.doRequest(ctx, http.MethodGet, cartPath(cartID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get cart request failed: %w", err)
	}
	return &resp, nil
}

// AddItem добавляет товар в корзину
func (c *Client) AddItem(ctx context.Context, cartID string, req api.AddItemRequest) (*api.Cart, error) {
	var resp api.Cart
	if err := c.doRequest(ctx, http.MethodPost, cartPath(cartID)+"/items", req, &resp); err != nil {
		return nil, fmt.Errorf("add item request failed: %w", err)
	}
	return &resp, nil
}

// UpdateItems отправляет накопленные изменения количества одним запросом
func (c *Client) UpdateItems(ctx context.Context, cartID string, req api.UpdateItemsRequest) (*api.Cart, error) {
	var resp api.Cart
	if err := c.doRequest(ctx, http.MethodPatch, cartPath(cartID)+"/items", req, &resp); err != nil {
		return nil, fmt.Errorf("update items request failed: %w", err)
	}
	return &resp, nil
}

// RemoveItem удаляет строку корзины
func (c *Client) RemoveItem(ctx context.Context, cartID, itemID string) (*api.Cart, error) {
	var resp api.Cart
	path := cartPath(cartID) + "/items/" + url.PathEscape(itemID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("remove item request failed: %w", err)
	}
	return &resp, nil
}

// SearchProducts ищет товары по подстроке в названии
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) (*api.ProductsResponse, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp api.ProductsResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("search products request failed: %w", err)
	}
	return &resp, nil
}

func cartPath(cartID string) string {
	return "/api/v1/carts/" + url.PathEscape(cartID)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			se.Message = errResp.Message
			if se.Message == "" {
				se.Message = errResp.Error
			}
		}
		return se
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
