package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/storefront/internal/client/storage"
)

type statusView struct {
	LastSync time.Time
	CartID   string
	Items    int
	Quantity int
	Version  int64
	Cached   bool
}

// RunStatus показывает состояние локального кэша, сервер не опрашивается
func (c *Cli) RunStatus(ctx context.Context) error {
	view := statusView{CartID: "(none)"}

	id, err := c.storage.GetCartID(ctx)
	switch {
	case errors.Is(err, storage.ErrCartIDNotFound):
		// клиент ещё не работал с корзиной
	case err != nil:
		return fmt.Errorf("failed to get cart id: %w", err)
	default:
		view.CartID = id
	}

	view.LastSync, err = c.storage.GetLastSyncAt(ctx)
	if err != nil {
		return fmt.Errorf("failed to get last sync time: %w", err)
	}

	if id != "" {
		cached, err := c.storage.GetCart(ctx, id)
		switch {
		case errors.Is(err, storage.ErrCartNotFound):
		case err != nil:
			return fmt.Errorf("failed to get cached cart: %w", err)
		default:
			view.Cached = true
			view.Items = len(cached.Items)
			view.Version = cached.Version
			for _, it := range cached.Items {
				view.Quantity += it.Quantity
			}
		}
	}

	if err := statusTmpl.Execute(c.io, view); err != nil {
		return fmt.Errorf("failed to render status: %w", err)
	}
	return nil
}
