package catalog

import (
	"context"
	"errors"

	"food-assistant/internal/models"
)

var (
	ErrCatalogUnavailable = errors.New("CATALOG_UNAVAILABLE")
	ErrCatalogDecode      = errors.New("CATALOG_DECODE_FAILED")
)

// Source returns the current menu snapshot.
type Source interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
}

// StaticSource serves a fixed snapshot. Used by the ask command and tests.
type StaticSource []models.MenuItem

func (s StaticSource) ListMenuItems(context.Context) ([]models.MenuItem, error) {
	out := make([]models.MenuItem, len(s))
	copy(out, s)
	return out, nil
}
