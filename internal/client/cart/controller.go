package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	httpClient "github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/client/storage"
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

const (
	// DefaultWindow период тишины перед отправкой накопленных изменений
	DefaultWindow = time.Second
	// DefaultSyncTimeout таймаут одного запроса синхронизации
	DefaultSyncTimeout = 10 * time.Second
)

// ErrClosed is returned by mutations after Close
var ErrClosed = errors.New("cart controller is closed")

// Config настройки контроллера корзины
type Config struct {
	// OnSync вызывается после каждого цикла синхронизации (из горутины таймера)
	OnSync      func(SyncReport)
	CartID      string
	Window      time.Duration
	SyncTimeout time.Duration
}

// SyncReport describes one completed sync cycle
type SyncReport struct {
	Err        error           // ошибка отправки изменений, nil при успехе
	Deltas     []api.ItemDelta // отправленные изменения, отсортированы по item id
	Duration   time.Duration
	Version    int64 // версия корзины после цикла
	Refetched  bool  // после ошибки корзина перечитана с сервера
	Reverted   bool  // сервер недоступен, отображение откачено к подтверждённому снимку
	Superseded bool  // ответ старше уже подтверждённой версии и отброшен
}

// Controller keeps the displayed cart responsive while batching quantity
// changes into one server request per quiescence window.
//
// Displayed quantity of every item equals the last confirmed server quantity
// plus the delta not yet dispatched, clamped to models.MinQuantity.
// At most one sync request is in flight at any time.
type Controller struct {
	apiClient httpClient.ClientAPI
	cache     storage.CartCache
	logger    *slog.Logger

	store     *ItemStore
	pending   *Accumulator
	debouncer *Debouncer
	confirmed *models.Cart

	// idle сигнализирует о завершении запроса синхронизации
	idle *sync.Cond
	cfg  Config
	mu   sync.Mutex
	state  State
	stale  bool
	closed bool
}

// NewController creates a cart controller. cache may be nil.
func NewController(apiClient httpClient.ClientAPI, cache storage.CartCache, logger *slog.Logger, cfg Config) *Controller {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = DefaultSyncTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		apiClient: apiClient,
		cache:     cache,
		logger:    logger.With("cart_id", cfg.CartID),
		cfg:       cfg,
		store:     NewItemStore(nil),
		pending:   NewAccumulator(),
		debouncer: NewDebouncer(cfg.Window),
		confirmed: &models.Cart{ID: cfg.CartID},
	}
	c.idle = sync.NewCond(&c.mu)
	return c
}

// Load fetches the cart from the server. If the server is unreachable the
// cached snapshot is shown and the controller is marked stale.
func (c *Controller) Load(ctx context.Context) error {
	resp, err := c.apiClient.GetCart(ctx, c.cfg.CartID)
	if err == nil {
		cart := cartFromAPI(resp)
		c.mu.Lock()
		applied := c.applyLocked(cart)
		c.stale = false
		c.mu.Unlock()

		if applied {
			c.saveCache(ctx, cart)
		}
		c.logger.Debug("Cart loaded", "items", len(cart.Items), "version", cart.Version)
		return nil
	}

	if c.cache == nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	cached, cacheErr := c.cache.GetCart(ctx, c.cfg.CartID)
	if cacheErr != nil {
		return fmt.Errorf("failed to load cart: %w", errors.Join(err, cacheErr))
	}

	c.mu.Lock()
	if !c.applyLocked(cached) {
		// уже есть более свежее подтверждённое состояние
		c.mu.Unlock()
		return nil
	}
	c.stale = true
	c.mu.Unlock()

	c.logger.Warn("Server unavailable, showing cached cart", "error", err, "version", cached.Version)
	return nil
}

// Increment optimistically changes the displayed quantity and schedules a sync.
// Unknown items are ignored and false is returned.
func (c *Controller) Increment(itemID string, delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || delta == 0 {
		return false
	}
	if _, ok := c.store.Increment(itemID, delta); !ok {
		return false
	}

	// в аккумулятор пишется исходное изменение, даже если отображение упёрлось в минимум
	c.pending.Record(itemID, delta)
	c.notifyMutationLocked()
	return true
}

// notifyMutationLocked (пере)запускает окно тишины.
// Во время Syncing таймер не трогаем: новое окно откроется по завершении запроса.
func (c *Controller) notifyMutationLocked() {
	if c.state == Syncing {
		return
	}
	c.state = Waiting
	c.armLocked()
}

func (c *Controller) armLocked() {
	c.debouncer.Debounce(c.fire)
}

// fire runs on the timer goroutine when the window has elapsed
func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	if !c.debouncer.Current(seq) || c.state != Waiting {
		c.mu.Unlock()
		return
	}
	deltas := c.dispatchLocked()
	c.mu.Unlock()

	if deltas == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.SyncTimeout)
	defer cancel()
	c.sync(ctx, deltas)
}

// dispatchLocked drains the accumulator. It returns nil and leaves the
// controller idle when there is nothing to send.
func (c *Controller) dispatchLocked() []api.ItemDelta {
	drained := c.pending.DrainAll()

	deltas := make([]api.ItemDelta, 0, len(drained))
	for _, id := range sortedIDs(drained) {
		// изменения, взаимно погасившие друг друга, не отправляем
		if drained[id] == 0 {
			continue
		}
		deltas = append(deltas, api.ItemDelta{ItemID: id, Delta: drained[id]})
	}

	if len(deltas) == 0 {
		// отображение могло разойтись с сервером из-за ограничения снизу
		c.applyLocked(c.confirmed)
		c.state = Idle
		return nil
	}

	c.state = Syncing
	return deltas
}

// sync sends deltas and reconciles the displayed cart with the outcome.
// Вызывается без блокировки, c.state == Syncing.
func (c *Controller) sync(ctx context.Context, deltas []api.ItemDelta) SyncReport {
	start := time.Now()
	report := SyncReport{Deltas: deltas}

	c.logger.Debug("Syncing cart", "items", len(deltas))

	var cart *models.Cart
	resp, err := c.apiClient.UpdateItems(ctx, c.cfg.CartID, api.UpdateItemsRequest{Updates: deltas})
	if err != nil {
		report.Err = err
		c.logger.Error("Cart sync failed", "items", len(deltas), "error", err)

		// после ошибки перечитываем авторитетное состояние
		refetchCtx, cancel := context.WithTimeout(context.Background(), c.cfg.SyncTimeout)
		resp, err = c.apiClient.GetCart(refetchCtx, c.cfg.CartID)
		cancel()
		if err != nil {
			c.logger.Warn("Failed to refetch cart after sync error", "error", err)
		} else {
			report.Refetched = true
		}
	}
	if err == nil {
		cart = cartFromAPI(resp)
	}

	c.mu.Lock()
	saved := false
	if cart != nil {
		if c.applyLocked(cart) {
			c.stale = false
			saved = true
		} else {
			report.Superseded = true
			c.logger.Debug("Dropped outdated sync response", "version", cart.Version, "confirmed", c.confirmed.Version)
		}
	} else {
		// дельты из неудачного запроса теряются, остаётся снимок плюс новые изменения
		c.applyLocked(c.confirmed)
		report.Reverted = true
	}
	report.Version = c.confirmed.Version

	if c.pending.Len() > 0 && !c.closed {
		c.state = Waiting
		c.armLocked()
	} else {
		c.state = Idle
	}
	c.idle.Broadcast()
	c.mu.Unlock()

	if saved {
		c.saveCache(ctx, cart)
	}

	report.Duration = time.Since(start)
	if report.Err == nil {
		c.logger.Info("Cart synced", "items", len(deltas), "version", report.Version, "duration", report.Duration)
	}
	if c.cfg.OnSync != nil {
		c.cfg.OnSync(report)
	}

	return report
}

// applyLocked makes cart the confirmed snapshot and rebuilds the displayed
// items from the confirmed snapshot and the undispatched deltas.
// Ответ с версией ниже подтверждённой не применяется (ответы на
// параллельные запросы приходят в любом порядке), тогда возвращается false.
// Снимок из кэша (stale) заменяется любым ответом сервера.
func (c *Controller) applyLocked(cart *models.Cart) bool {
	applied := c.stale || cart.ID != c.confirmed.ID || cart.Version >= c.confirmed.Version
	if applied {
		c.confirmed = cart
	}

	items := make([]models.CartItem, len(c.confirmed.Items))
	copy(items, c.confirmed.Items)

	known := make(map[string]struct{}, len(items))
	for i := range items {
		known[items[i].ID] = struct{}{}
		items[i].Quantity = models.ClampQuantity(items[i].Quantity + c.pending.Get(items[i].ID))
	}

	// строки, удалённые на сервере, больше не синхронизируем
	for id := range c.pending.Snapshot() {
		if _, ok := known[id]; !ok {
			c.pending.Discard(id)
		}
	}

	c.store.Replace(items)
	return applied
}

func (c *Controller) saveCache(ctx context.Context, cart *models.Cart) {
	if c.cache == nil {
		return
	}
	if err := c.cache.SaveCart(context.WithoutCancel(ctx), cart); err != nil {
		c.logger.Warn("Failed to cache cart", "error", err)
	}
}

// Flush sends pending deltas now. Waits for an in-flight sync first.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	c.debouncer.Cancel()

	for c.state == Syncing {
		c.idle.Wait()
	}
	// ожидание могло перезапустить таймер
	c.debouncer.Cancel()

	deltas := c.dispatchLocked()
	c.mu.Unlock()

	if deltas == nil {
		return nil
	}

	report := c.sync(ctx, deltas)
	if report.Err != nil {
		return fmt.Errorf("failed to sync cart: %w", report.Err)
	}
	return nil
}

// Close rejects further mutations and flushes pending deltas
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	return c.Flush(ctx)
}

// Add adds a product to the cart on the server. The server increments the
// quantity if the product is already in the cart.
func (c *Controller) Add(ctx context.Context, productID string, quantity int) error {
	if c.isClosed() {
		return ErrClosed
	}

	resp, err := c.apiClient.AddItem(ctx, c.cfg.CartID, api.AddItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	c.applyResponse(ctx, cartFromAPI(resp), "")
	return nil
}

// Remove deletes a line item on the server and drops its pending delta.
// If the server call fails, the pending delta stays and is synced as usual.
func (c *Controller) Remove(ctx context.Context, itemID string) error {
	if c.isClosed() {
		return ErrClosed
	}

	resp, err := c.apiClient.RemoveItem(ctx, c.cfg.CartID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	c.applyResponse(ctx, cartFromAPI(resp), itemID)
	return nil
}

// applyResponse применяет ответ Add/Remove, removed - id удалённой строки или ""
func (c *Controller) applyResponse(ctx context.Context, cart *models.Cart, removed string) {
	c.mu.Lock()
	if removed != "" {
		c.pending.Discard(removed)
	}
	applied := c.applyLocked(cart)
	if applied {
		c.stale = false
	}
	c.mu.Unlock()

	if applied {
		c.saveCache(ctx, cart)
	}
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// CartID returns the id of the managed cart
func (c *Controller) CartID() string {
	return c.cfg.CartID
}

// Items returns the displayed line items in cart order
func (c *Controller) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Items()
}

// Quantity returns the displayed quantity of an item
func (c *Controller) Quantity(itemID string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Quantity(itemID)
}

// Total returns the displayed cart total
func (c *Controller) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, it := range c.store.items {
		total += it.LineTotal()
	}
	return total
}

// Pending returns deltas recorded but not yet dispatched
func (c *Controller) Pending() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.Snapshot()
}

// State returns the current sync state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stale reports whether the displayed cart came from the local cache
func (c *Controller) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// Version returns the version of the last confirmed server snapshot
func (c *Controller) Version() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmed.Version
}
