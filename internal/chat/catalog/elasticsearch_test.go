package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-assistant/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestESClient(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchSource_ListMenuItems(t *testing.T) {
	var gotPath string
	client := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
			"took": 1,
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_id": "a1", "_source": {"name": "Zinger Burger", "price": 450, "category": "Fast Food"}},
					{"_id": "a2", "_source": {"id": "m-2", "name": "Mango Shake", "price": 250}}
				]
			}
		}`))
	})

	src := NewElasticsearchSource(client, "", 0, logger.NewTestLogger(t))
	items, err := src.ListMenuItems(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/menu_items/_search", gotPath)
	require.Len(t, items, 2)
	assert.Equal(t, "a1", items[0].ID)
	assert.Equal(t, "Fast Food", items[0].Category)
	assert.Equal(t, "m-2", items[1].ID)
	assert.Equal(t, 250.0, items[1].Price)
}

func TestElasticsearchSource_ErrorStatus(t *testing.T) {
	client := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"type": "index_not_found_exception"}, "status": 404}`))
	})

	_, err := NewElasticsearchSource(client, "menu", 10, logger.NewNoOpLogger()).ListMenuItems(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestElasticsearchSource_BadBody(t *testing.T) {
	client := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits": [`))
	})

	_, err := NewElasticsearchSource(client, "menu", 10, logger.NewNoOpLogger()).ListMenuItems(context.Background())
	assert.ErrorIs(t, err, ErrCatalogDecode)
}
