package validation

import (
	"fmt"
	"regexp"
)

// IDPattern определяет допустимый формат идентификаторов строк корзины и товаров
// Латинские буквы, цифры, дефис и нижнее подчеркивание. Покрывает UUID и числовые id.
var IDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

const (
	// MaxQuantity верхняя граница количества одной строки корзины
	MaxQuantity = 999
	// MaxDelta верхняя граница одного изменения количества
	MaxDelta = MaxQuantity
)

// ValidateItemID проверяет идентификатор строки корзины
func ValidateItemID(id string) error {
	return validateID("item id", id)
}

// ValidateProductID проверяет идентификатор товара
func ValidateProductID(id string) error {
	return validateID("product id", id)
}

// ValidateCartID проверяет идентификатор корзины
func ValidateCartID(id string) error {
	return validateID("cart id", id)
}

func validateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if !IDPattern.MatchString(id) {
		return fmt.Errorf("%s can only contain letters, numbers, '-' and '_' (max 64 characters)", kind)
	}
	return nil
}

// ValidateQuantity проверяет количество при добавлении товара
func ValidateQuantity(q int) error {
	if q < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", q)
	}
	if q > MaxQuantity {
		return fmt.Errorf("quantity must not exceed %d, got %d", MaxQuantity, q)
	}
	return nil
}

// ValidateDelta checks a single quantity change sent to the cart service.
func ValidateDelta(delta int) error {
	if delta == 0 {
		return fmt.Errorf("delta cannot be zero")
	}
	if delta > MaxDelta || delta < -MaxDelta {
		return fmt.Errorf("delta must be within ±%d, got %d", MaxDelta, delta)
	}
	return nil
}
