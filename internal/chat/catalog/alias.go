package catalog

// Alias maps a colloquial word onto the category keywords it stands for.
type Alias struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// DefaultAliases is consulted in order; the first alias that matches wins.
func DefaultAliases() []Alias {
	return []Alias{
		{Name: "sweet", Keywords: []string{"cake", "dessert", "ice cream"}},
		{Name: "dessert", Keywords: []string{"cake", "dessert", "ice cream", "pastry"}},
		{Name: "drink", Keywords: []string{"drink", "beverage", "juice", "shake"}},
		{Name: "spicy", Keywords: []string{"karahi", "bbq", "biryani"}},
		{Name: "veg", Keywords: []string{"salad", "veg", "pure veg"}},
		{Name: "noodle", Keywords: []string{"noodles", "pasta", "chinese"}},
	}
}
