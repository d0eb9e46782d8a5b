package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/server/storage"
)

// likeEscaper экранирует спецсимволы LIKE
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchProducts returns products matching query ordered by name
func (s *Storage) SearchProducts(ctx context.Context, query string, limit int) ([]*models.Product, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	pattern := "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price, currency, created_at
		FROM products
		WHERE name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a product by id
func (s *Storage) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}
	return getProduct(ctx, s.db, id)
}

func getProduct(ctx context.Context, q querier, id string) (*models.Product, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, name, description, price, currency, created_at FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrProductNotFound
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(sc scanner) (*models.Product, error) {
	var (
		p         models.Product
		createdAt int64
	)
	if err := sc.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.CreatedAt = time.Unix(createdAt, 0)
	return &p, nil
}
