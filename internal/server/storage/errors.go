package storage

import "errors"

// Common storage errors
var (
	// ErrCartNotFound indicates that cart was not found in storage
	ErrCartNotFound = errors.New("cart not found")

	// ErrItemNotFound indicates that line item does not belong to the cart
	ErrItemNotFound = errors.New("item not found")

	// ErrProductNotFound indicates that product was not found in catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
