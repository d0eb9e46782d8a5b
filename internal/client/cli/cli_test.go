package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/client/storage"
	"github.com/iudanet/storefront/internal/client/storage/boltdb"
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

// testIO собирает вывод и отдаёт заранее заданный ввод
type testIO struct {
	*iocli.IOMock
	out bytes.Buffer
	mu  sync.Mutex
}

func newTestIO(terminal bool, lines ...string) *testIO {
	tio := &testIO{}
	tio.IOMock = &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			tio.mu.Lock()
			defer tio.mu.Unlock()
			_, _ = fmt.Fprintln(&tio.out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			tio.mu.Lock()
			defer tio.mu.Unlock()
			_, _ = fmt.Fprintf(&tio.out, format, a...)
		},
		WriteFunc: func(p []byte) (int, error) {
			tio.mu.Lock()
			defer tio.mu.Unlock()
			return tio.out.Write(p)
		},
		ReadInputFunc: func(prompt string) (string, error) {
			if len(lines) == 0 {
				return "", io.EOF
			}
			line := lines[0]
			lines = lines[1:]
			return line, nil
		},
		IsTerminalFunc: func() bool { return terminal },
	}
	return tio
}

func (t *testIO) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.String()
}

func newTestStorage(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// serverCart состояние корзины на стороне мока API
type serverCart struct {
	cart api.Cart
	mu   sync.Mutex
}

func (s *serverCart) get() *api.Cart {
	c := s.cart
	c.Items = append([]api.CartItem(nil), s.cart.Items...)
	return &c
}

func newAPIMock(sc *serverCart) *httpClient.ClientAPIMock {
	return &httpClient.ClientAPIMock{
		GetCartFunc: func(ctx context.Context, cartID string) (*api.Cart, error) {
			sc.mu.Lock()
			defer sc.mu.Unlock()
			sc.cart.ID = cartID
			return sc.get(), nil
		},
		UpdateItemsFunc: func(ctx context.Context, cartID string, req api.UpdateItemsRequest) (*api.Cart, error) {
			sc.mu.Lock()
			defer sc.mu.Unlock()
			for _, d := range req.Updates {
				for i := range sc.cart.Items {
					if sc.cart.Items[i].ID == d.ItemID {
						sc.cart.Items[i].Quantity = models.ClampQuantity(sc.cart.Items[i].Quantity + d.Delta)
					}
				}
			}
			sc.cart.Version++
			return sc.get(), nil
		},
		AddItemFunc: func(ctx context.Context, cartID string, req api.AddItemRequest) (*api.Cart, error) {
			sc.mu.Lock()
			defer sc.mu.Unlock()
			sc.cart.Items = append(sc.cart.Items, api.CartItem{
				ID: "i-" + req.ProductID, ProductID: req.ProductID, Name: "Product " + req.ProductID,
				Quantity: req.Quantity, UnitPrice: 1000, Currency: "USD",
			})
			sc.cart.Version++
			return sc.get(), nil
		},
		RemoveItemFunc: func(ctx context.Context, cartID, itemID string) (*api.Cart, error) {
			sc.mu.Lock()
			defer sc.mu.Unlock()
			items := sc.cart.Items[:0]
			for _, it := range sc.cart.Items {
				if it.ID != itemID {
					items = append(items, it)
				}
			}
			sc.cart.Items = items
			sc.cart.Version++
			return sc.get(), nil
		},
		SearchProductsFunc: func(ctx context.Context, query string, limit int) (*api.ProductsResponse, error) {
			return &api.ProductsResponse{Products: []api.Product{
				{ID: "p-1", Name: "Coffee mug", Price: 1250, Currency: "USD", Description: "Ceramic"},
			}}, nil
		},
	}
}

func newTestCli(t *testing.T, tio *testIO, items ...api.CartItem) (*Cli, *httpClient.ClientAPIMock, *boltdb.Storage) {
	t.Helper()
	sc := &serverCart{cart: api.Cart{Items: items, Version: 1}}
	mock := newAPIMock(sc)
	store := newTestStorage(t)
	c := New(tio, mock, store, slog.New(slog.NewTextHandler(io.Discard, nil)), Options{Window: time.Hour})
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c, mock, store
}

func TestCli_CartIDCreatedOnce(t *testing.T) {
	ctx := context.Background()
	c, _, store := newTestCli(t, newTestIO(false))

	id1, err := c.cartID(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id1)

	id2, err := c.cartID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	stored, err := store.GetCartID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, stored)
}

func TestCli_RunShow(t *testing.T) {
	tio := newTestIO(false)
	c, _, _ := newTestCli(t, tio,
		api.CartItem{ID: "42", Name: "Mug", Quantity: 2, UnitPrice: 1250, Currency: "USD"},
	)

	require.NoError(t, c.RunShow(context.Background()))

	out := tio.Output()
	assert.Contains(t, out, "Mug x2")
	assert.Contains(t, out, "Price: 12.50 USD")
	assert.Contains(t, out, "Total: 25.00 USD")
	assert.NotContains(t, out, "offline")
}

func TestCli_RunShow_Empty(t *testing.T) {
	tio := newTestIO(false)
	c, _, _ := newTestCli(t, tio)

	require.NoError(t, c.RunShow(context.Background()))
	assert.Contains(t, tio.Output(), "Cart is empty.")
}

func TestCli_RunIncrement_FlushedOnClose(t *testing.T) {
	ctx := context.Background()
	tio := newTestIO(false)
	c, mock, _ := newTestCli(t, tio, api.CartItem{ID: "42", Quantity: 2})

	require.NoError(t, c.RunIncrement(ctx, []string{"42"}, 1))
	require.NoError(t, c.RunIncrement(ctx, []string{"42", "3"}, 1))
	require.NoError(t, c.RunIncrement(ctx, []string{"42", "2"}, -1))
	assert.Contains(t, tio.Output(), "42: quantity 4")
	assert.Empty(t, mock.UpdateItemsCalls())

	require.NoError(t, c.Close(ctx))

	require.Len(t, mock.UpdateItemsCalls(), 1)
	assert.Equal(t, []api.ItemDelta{{ItemID: "42", Delta: 2}}, mock.UpdateItemsCalls()[0].Req.Updates)
}

func TestCli_RunIncrement_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		errMsg string
		args   []string
		sign   int
	}{
		{name: "missing item", args: nil, sign: 1, errMsg: "missing item id"},
		{name: "invalid item id", args: []string{"bad id"}, sign: 1, errMsg: "item id can only contain"},
		{name: "invalid count", args: []string{"42", "abc"}, sign: 1, errMsg: "invalid number"},
		{name: "zero count", args: []string{"42", "0"}, sign: -1, errMsg: "quantity must be at least 1"},
		{name: "unknown item", args: []string{"7"}, sign: 1, errMsg: "item 7 not found in cart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCli(t, newTestIO(false), api.CartItem{ID: "42", Quantity: 2})

			err := c.RunIncrement(ctx, tt.args, tt.sign)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCli_RunAddAndRemove(t *testing.T) {
	ctx := context.Background()
	tio := newTestIO(false)
	c, mock, _ := newTestCli(t, tio)

	require.NoError(t, c.RunAdd(ctx, []string{"p-1", "2"}))
	require.Len(t, mock.AddItemCalls(), 1)
	assert.Equal(t, api.AddItemRequest{ProductID: "p-1", Quantity: 2}, mock.AddItemCalls()[0].Req)
	assert.Contains(t, tio.Output(), "Added 2 x p-1")

	require.NoError(t, c.RunRemove(ctx, []string{"i-p-1"}))
	require.Len(t, mock.RemoveItemCalls(), 1)
	assert.Equal(t, "i-p-1", mock.RemoveItemCalls()[0].ItemID)

	assert.Error(t, c.RunAdd(ctx, nil))
	assert.Error(t, c.RunRemove(ctx, nil))
}

func TestCli_RunSearch(t *testing.T) {
	tio := newTestIO(false)
	c, mock, _ := newTestCli(t, tio)

	require.NoError(t, c.RunSearch(context.Background(), []string{"coffee", "mug"}, 0))

	require.Len(t, mock.SearchProductsCalls(), 1)
	assert.Equal(t, "coffee mug", mock.SearchProductsCalls()[0].Query)
	assert.Equal(t, defaultSearchLimit, mock.SearchProductsCalls()[0].Limit)
	assert.Contains(t, tio.Output(), "Coffee mug (12.50 USD)")
	assert.Contains(t, tio.Output(), "ID: p-1")
}

func TestCli_RunSearch_Error(t *testing.T) {
	c, mock, _ := newTestCli(t, newTestIO(false))
	mock.SearchProductsFunc = func(ctx context.Context, query string, limit int) (*api.ProductsResponse, error) {
		return nil, errors.New("boom")
	}

	err := c.RunSearch(context.Background(), []string{"x"}, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestCli_RunStatus(t *testing.T) {
	ctx := context.Background()
	tio := newTestIO(false)
	c, mock, _ := newTestCli(t, tio, api.CartItem{ID: "42", Quantity: 3})

	require.NoError(t, c.RunStatus(ctx))
	assert.Contains(t, tio.Output(), "Cart ID:   (none)")
	assert.Contains(t, tio.Output(), "Last sync: never")
	assert.Empty(t, mock.GetCartCalls())

	// загрузка корзины пишет снимок в кэш
	require.NoError(t, c.RunShow(ctx))
	require.NoError(t, c.RunStatus(ctx))
	assert.Contains(t, tio.Output(), "Cached:    1 item(s), 3 unit(s), version 1")
	assert.Len(t, mock.GetCartCalls(), 1)
}

func TestCli_RunShow_OfflineUsesCache(t *testing.T) {
	ctx := context.Background()
	tio := newTestIO(false)
	c, mock, store := newTestCli(t, tio)

	require.NoError(t, store.SaveCartID(ctx, "cart-1"))
	require.NoError(t, store.SaveCart(ctx, &models.Cart{
		ID:    "cart-1",
		Items: []models.CartItem{{ID: "42", Name: "Mug", Quantity: 2, UnitPrice: 100, Currency: "USD"}},
	}))
	mock.GetCartFunc = func(ctx context.Context, cartID string) (*api.Cart, error) {
		return nil, errors.New("connection refused")
	}

	require.NoError(t, c.RunShow(ctx))
	assert.Contains(t, tio.Output(), "offline: showing cached cart")
	assert.Contains(t, tio.Output(), "Mug x2")
}

func TestCli_RunShell(t *testing.T) {
	tio := newTestIO(true,
		"+ 42",
		"+ 42 2",
		"- 7",
		"",
		"bogus",
		"flush",
		"show",
		"quit",
		"+ 42", // после quit не читается
	)
	c, mock, _ := newTestCli(t, tio,
		api.CartItem{ID: "42", Name: "Mug", Quantity: 1, UnitPrice: 100, Currency: "USD"},
		api.CartItem{ID: "7", Name: "Tee", Quantity: 1, UnitPrice: 100, Currency: "USD"},
	)

	require.NoError(t, c.RunShell(context.Background()))

	out := tio.Output()
	assert.Contains(t, out, "Type 'help' for commands.")
	assert.Contains(t, out, "42: quantity 4")
	assert.Contains(t, out, "7: quantity 1")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "Mug x4")

	require.Len(t, mock.UpdateItemsCalls(), 1)
	assert.Equal(t, []api.ItemDelta{{ItemID: "42", Delta: 3}, {ItemID: "7", Delta: -1}}, mock.UpdateItemsCalls()[0].Req.Updates)
	assert.Len(t, tio.ReadInputCalls(), 8)
	assert.Equal(t, "cart> ", tio.ReadInputCalls()[0].Prompt)
}

func TestCli_RunShell_EOF(t *testing.T) {
	tio := newTestIO(false, "help")
	c, _, _ := newTestCli(t, tio)

	require.NoError(t, c.RunShell(context.Background()))
	assert.True(t, strings.Contains(tio.Output(), "Send pending changes now"))
	assert.Equal(t, "", tio.ReadInputCalls()[0].Prompt)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "12.50 USD", formatPrice(1250, "USD"))
	assert.Equal(t, "0.05", formatPrice(5, ""))
	assert.Equal(t, "-1.00 EUR", formatPrice(-100, "EUR"))
}

func TestCli_RunShell_CancelWhileReading(t *testing.T) {
	tio := newTestIO(true)
	unblock := make(chan struct{})
	reading := make(chan struct{}, 1)
	tio.ReadInputFunc = func(prompt string) (string, error) {
		reading <- struct{}{}
		<-unblock
		return "", io.EOF
	}
	defer close(unblock)

	c, _, _ := newTestCli(t, tio, api.CartItem{ID: "42", Name: "Mug", Quantity: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.RunShell(ctx) }()

	<-reading
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("shell did not return after cancel")
	}
}

func TestCli_RunReset(t *testing.T) {
	ctx := context.Background()
	tio := newTestIO(false)
	c, mock, store := newTestCli(t, tio, api.CartItem{ID: "42", Quantity: 2})

	require.NoError(t, c.RunIncrement(ctx, []string{"42"}, 1))
	oldID, err := store.GetCartID(ctx)
	require.NoError(t, err)

	require.NoError(t, c.RunReset(ctx))

	// накопленное изменение отправлено до сброса
	require.Len(t, mock.UpdateItemsCalls(), 1)
	assert.Contains(t, tio.Output(), "Forgot cart "+oldID)

	_, err = store.GetCartID(ctx)
	assert.ErrorIs(t, err, storage.ErrCartIDNotFound)
	_, err = store.GetCart(ctx, oldID)
	assert.ErrorIs(t, err, storage.ErrCartNotFound)
	last, err := store.GetLastSyncAt(ctx)
	require.NoError(t, err)
	assert.True(t, last.IsZero())

	newID, err := c.cartID(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, oldID, newID)

	// повторный сброс без корзины
	require.NoError(t, c.RunReset(ctx))
	require.NoError(t, c.RunReset(ctx))
	assert.Contains(t, tio.Output(), "Nothing to reset.")
}
