package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"food-assistant/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSource_ListMenuItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "price", "category"}).
		AddRow("1", "Zinger Burger", 450.0, "Fast Food").
		AddRow("2", "Fries", 150.0, nil)
	mock.ExpectQuery(regexp.QuoteMeta(listMenuItemsQuery)).WillReturnRows(rows)

	src := NewPostgresSource(db, logger.NewTestLogger(t))
	items, err := src.ListMenuItems(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Zinger Burger", items[0].Name)
	assert.Equal(t, 450.0, items[0].Price)
	assert.Equal(t, "", items[1].Category)
	assert.Equal(t, "Other", items[1].CategoryOrDefault())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(listMenuItemsQuery)).WillReturnError(errors.New("connection refused"))

	src := NewPostgresSource(db, logger.NewNoOpLogger())
	items, err := src.ListMenuItems(context.Background())

	assert.Nil(t, items)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "price", "category"}).
		AddRow("1", "Zinger Burger", "not-a-number", "Fast Food")
	mock.ExpectQuery(regexp.QuoteMeta(listMenuItemsQuery)).WillReturnRows(rows)

	_, err = NewPostgresSource(db, logger.NewNoOpLogger()).ListMenuItems(context.Background())
	assert.ErrorIs(t, err, ErrCatalogDecode)
}
