package api

import "time"

// CartItem представляет строку корзины в формате API
type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Cart представляет авторитетное состояние корзины на сервере
type Cart struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	Version   int64      `json:"version"`
	Total     int64      `json:"total"`
}

// AddItemRequest добавляет товар в корзину (или увеличивает количество)
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ItemDelta изменение количества одной строки корзины
type ItemDelta struct {
	ItemID string `json:"item_id"`
	Delta  int    `json:"delta"`
}

// UpdateItemsRequest carries the net quantity changes collected during one
// debounce window. Each line item keeps its own delta.
type UpdateItemsRequest struct {
	Updates []ItemDelta `json:"updates"`
}

// Product представляет товар каталога
type Product struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Currency    string    `json:"currency"`
	Price       int64     `json:"price"`
}

// ProductsResponse ответ на поиск товаров
type ProductsResponse struct {
	Products []Product `json:"products"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
