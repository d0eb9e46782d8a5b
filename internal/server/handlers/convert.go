package handlers

import (
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

func cartToAPI(c *models.Cart) api.Cart {
	items := make([]api.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, api.CartItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Currency:  it.Currency,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	return api.Cart{
		ID:        c.ID,
		Items:     items,
		Version:   c.Version,
		Total:     c.Total(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func productToAPI(p *models.Product) api.Product {
	return api.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Currency:    p.Currency,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
	}
}
