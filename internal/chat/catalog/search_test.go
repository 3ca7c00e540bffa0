package catalog

import (
	"context"
	"testing"

	"food-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Zinger Burger", Price: 450, Category: "Fast Food"},
		{ID: "2", Name: "Chicken Karahi", Price: 1200, Category: "Desi"},
		{ID: "3", Name: "Chocolate Cake", Price: 300, Category: "Dessert"},
		{ID: "4", Name: "Mango Shake", Price: 250, Category: "Drinks"},
		{ID: "5", Name: "Garden Salad", Price: 200},
	}
}

// ==========================
// Strategy Tests
// ==========================

func TestSearch_Variants(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		validate func(t *testing.T, r Result)
	}{
		{
			name:  "query contained in product name",
			query: "zinger",
			validate: func(t *testing.T, r Result) {
				p, ok := r.(ProductMatch)
				require.True(t, ok, "got %T", r)
				assert.Equal(t, "Zinger Burger", p.Item.Name)
			},
		},
		{
			name:  "product name contained in query",
			query: "I would like a ZINGER BURGER today",
			validate: func(t *testing.T, r Result) {
				p, ok := r.(ProductMatch)
				require.True(t, ok, "got %T", r)
				assert.Equal(t, "1", p.Item.ID)
			},
		},
		{
			name:  "direct category",
			query: "fast food",
			validate: func(t *testing.T, r Result) {
				c, ok := r.(CategoryMatch)
				require.True(t, ok, "got %T", r)
				assert.Equal(t, "Fast Food", c.Category)
				require.Len(t, c.Items(), 1)
				assert.Equal(t, "Zinger Burger", c.Items()[0].Name)
			},
		},
		{
			name:  "empty category is searchable as Other",
			query: "other",
			validate: func(t *testing.T, r Result) {
				c, ok := r.(CategoryMatch)
				require.True(t, ok, "got %T", r)
				assert.Equal(t, models.DefaultCategory, c.Category)
				assert.Equal(t, "Garden Salad", c.Items()[0].Name)
			},
		},
		{
			name:  "alias groups by category",
			query: "something sweet",
			validate: func(t *testing.T, r Result) {
				a, ok := r.(CategoryAliasMatch)
				require.True(t, ok, "got %T", r)
				assert.Equal(t, "sweet", a.Alias)
				require.Len(t, a.Groups, 1)
				assert.Equal(t, "Dessert", a.Groups[0].Category)
				assert.Equal(t, "Chocolate Cake", a.Groups[0].Items[0].Name)
			},
		},
		{
			name:  "alias keyword matches plural category",
			query: "drinks",
			validate: func(t *testing.T, r Result) {
				a, ok := r.(CategoryAliasMatch)
				require.True(t, ok, "got %T", r)
				assert.Equal(t, "drink", a.Alias)
				assert.Equal(t, "Mango Shake", a.Items()[0].Name)
			},
		},
		{
			name:  "partial word match keeps catalog order",
			query: "chicken burger deal",
			validate: func(t *testing.T, r Result) {
				p, ok := r.(PartialMatch)
				require.True(t, ok, "got %T", r)
				names := []string{}
				for _, it := range p.Items() {
					names = append(names, it.Name)
				}
				assert.Equal(t, []string{"Zinger Burger", "Chicken Karahi"}, names)
			},
		},
		{
			name:  "nothing matches",
			query: "xyz123",
			validate: func(t *testing.T, r Result) {
				assert.IsType(t, NoMatch{}, r)
				assert.Empty(t, r.Items())
			},
		},
		{
			name:  "blank query",
			query: "   ",
			validate: func(t *testing.T, r Result) {
				assert.IsType(t, NoMatch{}, r)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Search(tt.query, testMenu(), DefaultAliases()))
		})
	}
}

func TestSearch_AliasOrderIsDefinitionOrder(t *testing.T) {
	r := Search("sweet dessert", testMenu(), DefaultAliases())
	a, ok := r.(CategoryAliasMatch)
	require.True(t, ok)
	assert.Equal(t, "sweet", a.Alias)
}

func TestSearch_AliasWithoutItemsFallsThrough(t *testing.T) {
	r := Search("noodles", testMenu(), DefaultAliases())
	assert.IsType(t, NoMatch{}, r)
}

func TestSearch_EmptyCatalog(t *testing.T) {
	assert.IsType(t, NoMatch{}, Search("zinger", nil, DefaultAliases()))
}

func TestSearch_NonEmptyVariantsCarryItems(t *testing.T) {
	queries := []string{"zinger", "fast food", "sweet", "drinks", "desi", "burger deal", "cake", "mango"}
	for _, q := range queries {
		r := Search(q, testMenu(), DefaultAliases())
		if _, none := r.(NoMatch); none {
			continue
		}
		assert.NotEmpty(t, r.Items(), "query %q", q)
	}
}

func TestSearch_DoesNotMutateSnapshot(t *testing.T) {
	menu := testMenu()
	before := append([]models.MenuItem(nil), menu...)
	_ = Search("sweet", menu, DefaultAliases())
	_ = Search("chicken burger", menu, DefaultAliases())
	assert.Equal(t, before, menu)
}

func TestStaticSource_ReturnsCopy(t *testing.T) {
	src := StaticSource(testMenu())
	items, err := src.ListMenuItems(context.Background())
	require.NoError(t, err)
	items[0].Name = "changed"
	assert.Equal(t, "Zinger Burger", src[0].Name)
}
