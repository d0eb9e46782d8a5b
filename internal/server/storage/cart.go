package storage

import (
	"context"

	"github.com/iudanet/storefront/internal/models"
)

// ItemDelta изменение количества одной строки корзины
type ItemDelta struct {
	ItemID string
	Delta  int
}

// CartStorage defines interface for cart persistence.
// Every mutation increments the cart version and returns the resulting cart.
type CartStorage interface {
	// GetOrCreateCart returns the cart, creating an empty one if it doesn't exist
	GetOrCreateCart(ctx context.Context, cartID string) (*models.Cart, error)

	// AddItem adds a product to the cart. If the product is already in the cart
	// its quantity is increased. Returns ErrProductNotFound for unknown products
	AddItem(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error)

	// UpdateQuantities applies all deltas atomically. Quantities are clamped
	// to [models.MinQuantity, validation.MaxQuantity]. If any item doesn't
	// belong to the cart nothing is applied and ErrItemNotFound is returned
	UpdateQuantities(ctx context.Context, cartID string, deltas []ItemDelta) (*models.Cart, error)

	// RemoveItem deletes a line item
	// Returns ErrItemNotFound if the item doesn't belong to the cart
	RemoveItem(ctx context.Context, cartID, itemID string) (*models.Cart, error)
}

// ProductStorage defines interface for the product catalog
type ProductStorage interface {
	// SearchProducts returns products whose name or description contains query.
	// Empty query returns the whole catalog up to limit
	SearchProducts(ctx context.Context, query string, limit int) ([]*models.Product, error)

	// GetProduct returns ErrProductNotFound if product doesn't exist
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}
