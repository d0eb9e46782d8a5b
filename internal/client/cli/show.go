package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/storefront/internal/client/cart"
	"github.com/iudanet/storefront/internal/models"
)

type cartView struct {
	Pending  map[string]int
	ID       string
	Currency string
	Items    []models.CartItem
	Total    int64
	Stale    bool
}

func (c *Cli) RunShow(ctx context.Context) error {
	ctrl, err := c.controller(ctx)
	if err != nil {
		return err
	}
	return c.printCart(ctrl)
}

func (c *Cli) printCart(ctrl *cart.Controller) error {
	items := ctrl.Items()
	view := cartView{
		ID:      ctrl.CartID(),
		Items:   items,
		Total:   ctrl.Total(),
		Stale:   ctrl.Stale(),
		Pending: ctrl.Pending(),
	}
	if len(items) > 0 {
		view.Currency = items[0].Currency
	}

	if err := cartTmpl.Execute(c.io, view); err != nil {
		return fmt.Errorf("failed to render cart: %w", err)
	}
	return nil
}
