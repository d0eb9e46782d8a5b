package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/storefront/internal/client/storage"
)

// RunReset отправляет накопленные изменения и забывает текущую корзину.
// Корзина на сервере остаётся, следующая команда начнёт новую.
func (c *Cli) RunReset(ctx context.Context) error {
	if err := c.Close(ctx); err != nil {
		return err
	}

	id, err := c.storage.GetCartID(ctx)
	if errors.Is(err, storage.ErrCartIDNotFound) {
		c.io.Println("Nothing to reset.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get cart id: %w", err)
	}

	if err := c.storage.DeleteCart(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cached cart: %w", err)
	}
	if err := c.storage.DeleteCartID(ctx); err != nil {
		return fmt.Errorf("failed to delete cart id: %w", err)
	}

	c.logger.Info("Cart forgotten", "cart_id", id)
	c.io.Printf("✓ Forgot cart %s, the next command starts a new cart\n", id)
	return nil
}
