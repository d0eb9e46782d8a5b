package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/storefront/internal/client/storage"
)

const (
	keyCartID     = "cart_id"
	keyLastSyncAt = "last_sync_at"
)

// SaveCartID saves the cart id this client works with
func (s *Storage) SaveCartID(ctx context.Context, cartID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketMetadata).Put([]byte(keyCartID), []byte(cartID)); err != nil {
			return fmt.Errorf("failed to save cart id: %w", err)
		}
		return nil
	})
}

// GetCartID returns the stored cart id or ErrCartIDNotFound
func (s *Storage) GetCartID(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var cartID string
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketMetadata).Get([]byte(keyCartID))
		if v == nil {
			return storage.ErrCartIDNotFound
		}
		// значение валидно только внутри транзакции, копируем
		cartID = string(v)
		return nil
	})
	if err != nil {
		return "", err
	}

	return cartID, nil
}

// DeleteCartID removes the stored cart id and the last sync time
func (s *Storage) DeleteCartID(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMetadata)
		if err := b.Delete([]byte(keyCartID)); err != nil {
			return fmt.Errorf("failed to delete cart id: %w", err)
		}
		return b.Delete([]byte(keyLastSyncAt))
	})
}

// GetLastSyncAt retrieves the time of the last cart snapshot save.
// Returns zero time if no sync has been performed yet
func (s *Storage) GetLastSyncAt(ctx context.Context) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, storage.ErrStorageClosed
	}

	var ts time.Time
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketMetadata).Get([]byte(keyLastSyncAt))
		if raw == nil {
			return nil
		}
		ts = time.Unix(0, int64(binary.BigEndian.Uint64(raw)))
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last sync time: %w", err)
	}

	return ts, nil
}
