package storage

import "errors"

// Common client storage errors
var (
	// ErrCartNotFound indicates that no cart snapshot is cached locally
	ErrCartNotFound = errors.New("cart not found")

	// ErrCartIDNotFound indicates that the client has no cart id yet
	ErrCartIDNotFound = errors.New("cart id not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
