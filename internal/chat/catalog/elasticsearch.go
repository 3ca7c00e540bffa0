package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"food-assistant/internal/common/logger"
	"food-assistant/internal/models"
)

const (
	DefaultIndex   = "menu_items"
	defaultMaxSize = 500
)

// ElasticsearchSource reads the menu from an index of menu item documents.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
	size   int
	logger logger.Logger
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, size int, log logger.Logger) *ElasticsearchSource {
	if index == "" {
		index = DefaultIndex
	}
	if size <= 0 {
		size = defaultMaxSize
	}
	return &ElasticsearchSource{
		client: client,
		index:  index,
		size:   size,
		logger: log.WithFields(map[string]interface{}{"component": "catalog.elasticsearch", "index": index}),
	}
}

type menuDocument struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string       `json:"_id"`
			Source menuDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSource) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	})

	from := 0
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		From:  &from,
		Size:  &s.size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: search failed: %s", ErrCatalogUnavailable, res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogDecode, err)
	}

	items := make([]models.MenuItem, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id := hit.Source.ID
		if id == "" {
			id = hit.ID
		}
		items = append(items, models.MenuItem{
			ID:       id,
			Name:     hit.Source.Name,
			Price:    hit.Source.Price,
			Category: hit.Source.Category,
		})
	}

	s.logger.Debug("menu loaded", map[string]interface{}{"items": len(items)})
	return items, nil
}
