package cart

import "github.com/iudanet/storefront/internal/models"

// ItemStore holds the displayed line items in cart order.
// Не потокобезопасен: доступ сериализует Controller.
type ItemStore struct {
	index map[string]int
	items []models.CartItem
}

// NewItemStore creates a store with a copy of items
func NewItemStore(items []models.CartItem) *ItemStore {
	s := &ItemStore{}
	s.Replace(items)
	return s
}

// Replace заменяет все строки, сохраняя порядок items
func (s *ItemStore) Replace(items []models.CartItem) {
	s.items = make([]models.CartItem, len(items))
	copy(s.items, items)
	s.index = make(map[string]int, len(items))
	for i, it := range s.items {
		s.index[it.ID] = i
	}
}

// Increment applies delta to the displayed quantity, never going below
// models.MinQuantity. Returns false if the item is not in the cart.
func (s *ItemStore) Increment(itemID string, delta int) (int, bool) {
	i, ok := s.index[itemID]
	if !ok {
		return 0, false
	}
	s.items[i].Quantity = models.ClampQuantity(s.items[i].Quantity + delta)
	return s.items[i].Quantity, true
}

// Quantity returns the displayed quantity of an item
func (s *ItemStore) Quantity(itemID string) (int, bool) {
	i, ok := s.index[itemID]
	if !ok {
		return 0, false
	}
	return s.items[i].Quantity, true
}

// Items returns a copy of the displayed line items
func (s *ItemStore) Items() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of line items
func (s *ItemStore) Len() int {
	return len(s.items)
}
