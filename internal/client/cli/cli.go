package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	httpClient "github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/client/cart"
	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/client/storage"
)

// Storage локальное хранилище клиента
type Storage interface {
	storage.CartCache
	storage.MetadataStorage

	// DeleteCart удаляет снимок корзины из кэша
	DeleteCart(ctx context.Context, cartID string) error
}

// Options настройки синхронизации корзины
type Options struct {
	// OnSync получает отчёт о каждом цикле синхронизации
	OnSync      func(cart.SyncReport)
	Window      time.Duration
	SyncTimeout time.Duration
}

type Cli struct {
	io        iocli.IO
	apiClient httpClient.ClientAPI
	storage   Storage
	logger    *slog.Logger
	cart      *cart.Controller
	opts      Options
}

func New(io iocli.IO, apiClient httpClient.ClientAPI, store Storage, logger *slog.Logger, opts Options) *Cli {
	return &Cli{
		io:        io,
		apiClient: apiClient,
		storage:   store,
		logger:    logger,
		opts:      opts,
	}
}

// cartID возвращает id корзины клиента, при первом запуске создаёт новый
func (c *Cli) cartID(ctx context.Context) (string, error) {
	id, err := c.storage.GetCartID(ctx)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, storage.ErrCartIDNotFound) {
		return "", fmt.Errorf("failed to get cart id: %w", err)
	}

	id = uuid.New().String()
	if err := c.storage.SaveCartID(ctx, id); err != nil {
		return "", fmt.Errorf("failed to save cart id: %w", err)
	}
	c.logger.Info("Created new cart id", "cart_id", id)
	return id, nil
}

// controller lazily creates and loads the cart controller
func (c *Cli) controller(ctx context.Context) (*cart.Controller, error) {
	if c.cart != nil {
		return c.cart, nil
	}

	id, err := c.cartID(ctx)
	if err != nil {
		return nil, err
	}

	ctrl := cart.NewController(c.apiClient, c.storage, c.logger, cart.Config{
		CartID:      id,
		Window:      c.opts.Window,
		SyncTimeout: c.opts.SyncTimeout,
		OnSync:      c.opts.OnSync,
	})
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}

	c.cart = ctrl
	return ctrl, nil
}

// Close отправляет накопленные изменения и освобождает контроллер
func (c *Cli) Close(ctx context.Context) error {
	if c.cart == nil {
		return nil
	}
	err := c.cart.Close(ctx)
	c.cart = nil
	return err
}
