package api

import (
	"context"

	"github.com/iudanet/storefront/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI описывает удалённый cart service, которым пользуется клиент
type ClientAPI interface {
	GetCart(ctx context.Context, cartID string) (*api.Cart, error)
	AddItem(ctx context.Context, cartID string, req api.AddItemRequest) (*api.Cart, error)
	UpdateItems(ctx context.Context, cartID string, req api.UpdateItemsRequest) (*api.Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID string) (*api.Cart, error)
	SearchProducts(ctx context.Context, query string, limit int) (*api.ProductsResponse, error)
}

var _ ClientAPI = (*Client)(nil)
