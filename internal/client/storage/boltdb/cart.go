package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/storefront/internal/client/storage"
	"github.com/iudanet/storefront/internal/models"
)

// SaveCart stores the confirmed cart snapshot and the sync time in one transaction
func (s *Storage) SaveCart(ctx context.Context, cart *models.Cart) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketCarts).Put([]byte(cart.ID), data); err != nil {
			return fmt.Errorf("failed to save cart: %w", err)
		}

		ts := make([]byte, 8)
		binary.BigEndian.PutUint64(ts, uint64(time.Now().UnixNano()))
		if err := tx.Bucket(bucketMetadata).Put([]byte(keyLastSyncAt), ts); err != nil {
			return fmt.Errorf("failed to save last sync time: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetCart retrieves a cached cart snapshot by id
func (s *Storage) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var cart *models.Cart

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCarts).Get([]byte(cartID))
		if data == nil {
			return storage.ErrCartNotFound
		}

		cart = &models.Cart{}
		if err := json.Unmarshal(data, cart); err != nil {
			return fmt.Errorf("failed to unmarshal cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// DeleteCart removes a cached snapshot; missing carts are not an error
func (s *Storage) DeleteCart(ctx context.Context, cartID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCarts).Delete([]byte(cartID))
	})
}
