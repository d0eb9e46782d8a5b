package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/server/storage"
	"github.com/iudanet/storefront/internal/validation"
)

// GetOrCreateCart returns the cart, creating an empty one if it doesn't exist
func (s *Storage) GetOrCreateCart(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart *models.Cart
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := ensureCart(ctx, tx, cartID); err != nil {
			return err
		}
		var err error
		cart, err = loadCart(ctx, tx, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds a product to the cart or increases its quantity
func (s *Storage) AddItem(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error) {
	var cart *models.Cart
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := ensureCart(ctx, tx, cartID); err != nil {
			return err
		}

		product, err := getProduct(ctx, tx, productID)
		if err != nil {
			return err
		}

		// цена фиксируется при первом добавлении товара
		query := `
			INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, position, created_at)
			VALUES (?, ?, ?, MIN(?, ?), ?,
				(SELECT COALESCE(MAX(position), 0) + 1 FROM cart_items WHERE cart_id = ?), ?)
			ON CONFLICT (cart_id, product_id)
			DO UPDATE SET quantity = MIN(cart_items.quantity + excluded.quantity, ?)
		`
		_, err = tx.ExecContext(ctx, query,
			uuid.New().String(),
			cartID,
			productID,
			quantity, validation.MaxQuantity,
			product.Price,
			cartID,
			time.Now().Unix(),
			validation.MaxQuantity,
		)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		if err := bumpVersion(ctx, tx, cartID); err != nil {
			return err
		}

		cart, err = loadCart(ctx, tx, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantities applies all deltas in one transaction
func (s *Storage) UpdateQuantities(ctx context.Context, cartID string, deltas []storage.ItemDelta) (*models.Cart, error) {
	var cart *models.Cart
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := cartExists(ctx, tx, cartID); err != nil {
			return err
		}

		query := `
			UPDATE cart_items
			SET quantity = MAX(?, MIN(?, quantity + ?))
			WHERE id = ? AND cart_id = ?
		`
		for _, d := range deltas {
			res, err := tx.ExecContext(ctx, query, models.MinQuantity, validation.MaxQuantity, d.Delta, d.ItemID, cartID)
			if err != nil {
				return fmt.Errorf("failed to update item quantity: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			}
			if n == 0 {
				return fmt.Errorf("%w: %s", storage.ErrItemNotFound, d.ItemID)
			}
		}

		if err := bumpVersion(ctx, tx, cartID); err != nil {
			return err
		}

		var err error
		cart, err = loadCart(ctx, tx, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes a line item from the cart
func (s *Storage) RemoveItem(ctx context.Context, cartID, itemID string) (*models.Cart, error) {
	var cart *models.Cart
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := cartExists(ctx, tx, cartID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cartID)
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			return storage.ErrItemNotFound
		}

		if err := bumpVersion(ctx, tx, cartID); err != nil {
			return err
		}

		cart, err = loadCart(ctx, tx, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func ensureCart(ctx context.Context, q querier, cartID string) error {
	now := time.Now().Unix()
	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO carts (id, version, created_at, updated_at) VALUES (?, 0, ?, ?)`,
		cartID, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func cartExists(ctx context.Context, q querier, cartID string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM carts WHERE id = ?`, cartID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrCartNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get cart: %w", err)
	}
	return nil
}

func bumpVersion(ctx context.Context, q querier, cartID string) error {
	_, err := q.ExecContext(ctx,
		`UPDATE carts SET version = version + 1, updated_at = ? WHERE id = ?`,
		time.Now().Unix(), cartID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart version: %w", err)
	}
	return nil
}

// loadCart читает корзину со строками в порядке добавления
func loadCart(ctx context.Context, q querier, cartID string) (*models.Cart, error) {
	var (
		cart                 models.Cart
		createdAt, updatedAt int64
	)

	err := q.QueryRowContext(ctx,
		`SELECT id, version, created_at, updated_at FROM carts WHERE id = ?`, cartID,
	).Scan(&cart.ID, &cart.Version, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	cart.CreatedAt = time.Unix(createdAt, 0)
	cart.UpdatedAt = time.Unix(updatedAt, 0)

	rows, err := q.QueryContext(ctx, `
		SELECT ci.id, ci.product_id, p.name, p.currency, ci.unit_price, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY ci.position
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = make([]models.CartItem, 0)
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Currency, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return &cart, nil
}
