package cli

import (
	"context"
	"fmt"
	"strings"
)

const defaultSearchLimit = 20

func (c *Cli) RunSearch(ctx context.Context, args []string, limit int) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	resp, err := c.apiClient.SearchProducts(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if err := productsTmpl.Execute(c.io, resp.Products); err != nil {
		return fmt.Errorf("failed to render products: %w", err)
	}
	return nil
}
