package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/storefront/internal/validation"
)

// RunAdd добавляет товар в корзину (запрос на сервер сразу)
func (c *Cli) RunAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing product id. Usage: storefront add <product-id> [quantity]")
	}
	productID := args[0]
	if err := validation.ValidateProductID(productID); err != nil {
		return err
	}
	qty, err := parseCount(args, 1)
	if err != nil {
		return err
	}

	ctrl, err := c.controller(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.Add(ctx, productID, qty); err != nil {
		return err
	}

	c.io.Printf("✓ Added %d x %s\n", qty, productID)
	return nil
}

// RunIncrement меняет количество строки на sign*n. Изменение отправляется
// после паузы или при закрытии.
func (c *Cli) RunIncrement(ctx context.Context, args []string, sign int) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item id")
	}
	itemID := args[0]
	if err := validation.ValidateItemID(itemID); err != nil {
		return err
	}
	n, err := parseCount(args, 1)
	if err != nil {
		return err
	}
	delta := sign * n
	if err := validation.ValidateDelta(delta); err != nil {
		return err
	}

	ctrl, err := c.controller(ctx)
	if err != nil {
		return err
	}
	if !ctrl.Increment(itemID, delta) {
		return fmt.Errorf("item %s not found in cart", itemID)
	}

	q, _ := ctrl.Quantity(itemID)
	c.io.Printf("%s: quantity %d\n", itemID, q)
	return nil
}

// RunRemove удаляет строку из корзины
func (c *Cli) RunRemove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item id. Usage: storefront rm <item-id>")
	}
	itemID := args[0]
	if err := validation.ValidateItemID(itemID); err != nil {
		return err
	}

	ctrl, err := c.controller(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.Remove(ctx, itemID); err != nil {
		return err
	}

	c.io.Printf("✓ Removed %s\n", itemID)
	return nil
}
