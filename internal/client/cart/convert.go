package cart

import (
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

// cartFromAPI конвертирует ответ сервера в модель клиента
func cartFromAPI(c *api.Cart) *models.Cart {
	items := make([]models.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, models.CartItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Currency:  it.Currency,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	return &models.Cart{
		ID:        c.ID,
		Items:     items,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
