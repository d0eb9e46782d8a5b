package storage

import (
	"context"
	"time"

	"github.com/iudanet/storefront/internal/models"
)

// CartCache stores the last server-confirmed cart snapshot on the client.
// Snapshot используется для отображения корзины без сети (status) и
// как запасной вариант, если сервер недоступен при загрузке.
type CartCache interface {
	// SaveCart stores the snapshot and records the sync time
	SaveCart(ctx context.Context, cart *models.Cart) error

	// GetCart returns ErrCartNotFound if nothing was cached for cartID
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
}

// MetadataStorage хранит служебные данные клиента
type MetadataStorage interface {
	// SaveCartID запоминает id корзины этого клиента
	SaveCartID(ctx context.Context, cartID string) error

	// GetCartID returns ErrCartIDNotFound on first run
	GetCartID(ctx context.Context) (string, error)

	// DeleteCartID забывает id корзины, следующий запуск создаст новую
	DeleteCartID(ctx context.Context) error

	// GetLastSyncAt returns zero time if the cart was never synced
	GetLastSyncAt(ctx context.Context) (time.Time, error)
}
