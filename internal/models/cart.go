package models

import "time"

// MinQuantity минимальное количество товара в строке корзины.
// Уменьшить ниже можно только явным удалением строки.
const MinQuantity = 1

// CartItem represents one line of a cart
type CartItem struct {
	ID        string `json:"id"`         // server-assigned line item id
	ProductID string `json:"product_id"` // ссылка на товар
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	UnitPrice int64  `json:"unit_price"` // снимок цены, принадлежит backend
	Quantity  int    `json:"quantity"`
}

// LineTotal returns unit price multiplied by quantity
func (i CartItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Cart represents a customer cart as known to the client or server
type Cart struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	Version   int64      `json:"version"` // увеличивается сервером на каждое изменение
}

// Find returns the line item with the given id
func (c *Cart) Find(itemID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return CartItem{}, false
}

// Total returns the sum of all line totals
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.LineTotal()
	}
	return total
}

// Quantities returns item id -> quantity
func (c *Cart) Quantities() map[string]int {
	out := make(map[string]int, len(c.Items))
	for _, it := range c.Items {
		out[it.ID] = it.Quantity
	}
	return out
}

// ClampQuantity applies the lower bound of a line item quantity
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	return q
}

// Product represents a catalog product
type Product struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Currency    string    `json:"currency"`
	Price       int64     `json:"price"`
}
