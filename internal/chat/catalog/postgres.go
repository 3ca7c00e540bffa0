package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"food-assistant/internal/common/logger"
	"food-assistant/internal/models"
)

const listMenuItemsQuery = `SELECT id, name, price, category FROM menu_items ORDER BY category, name`

// PostgresSource reads the menu from the menu_items table.
type PostgresSource struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresSource(db *sql.DB, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog.postgres"}),
	}
}

func (s *PostgresSource) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, listMenuItemsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var (
			item     models.MenuItem
			category sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &category); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogDecode, err)
		}
		item.Category = category.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	s.logger.Debug("menu loaded", map[string]interface{}{"items": len(items)})
	return items, nil
}
