package cli

import (
	"fmt"
	"strconv"

	"github.com/iudanet/storefront/internal/validation"
)

// formatPrice форматирует сумму в минимальных единицах валюты
func formatPrice(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
	if currency != "" {
		s += " " + currency
	}
	return s
}

// parseCount разбирает необязательный положительный аргумент количества
func parseCount(args []string, idx int) (int, error) {
	if len(args) <= idx {
		return 1, nil
	}
	n, err := strconv.Atoi(args[idx])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[idx])
	}
	if err := validation.ValidateQuantity(n); err != nil {
		return 0, err
	}
	return n, nil
}
