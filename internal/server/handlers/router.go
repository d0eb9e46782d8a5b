package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/storefront/internal/server/middleware"
	"github.com/iudanet/storefront/internal/server/storage"
)

// Storage всё, что нужно HTTP слою от хранилища
type Storage interface {
	storage.CartStorage
	storage.ProductStorage
	Ping(ctx context.Context) error
}

// RouterConfig параметры HTTP слоя
type RouterConfig struct {
	// RateLimiter может быть nil, тогда ограничение не применяется
	RateLimiter *middleware.RateLimiter
	Version     string
}

const healthPath = "/healthz"

// NewRouter собирает chi router со всеми маршрутами cart service
func NewRouter(logger *slog.Logger, store Storage, cfg RouterConfig) http.Handler {
	carts := NewCartHandler(logger, store)
	products := NewProductHandler(logger, store)
	health := NewHealthHandler(logger, store, cfg.Version)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger, healthPath))
	r.Use(middleware.Recovery(logger))

	r.Get(healthPath, health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Get("/products", products.Search)

		r.Route("/carts/{cartID}", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Post("/items", carts.AddItem)
			r.Patch("/items", carts.UpdateItems)
			r.Delete("/items/{itemID}", carts.RemoveItem)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sendError(logger, w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		sendError(logger, w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
