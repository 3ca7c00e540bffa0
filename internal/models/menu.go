package models

import "strings"

// DefaultCategory is used for menu items stored without a category.
const DefaultCategory = "Other"

type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

// CategoryOrDefault returns the trimmed category or DefaultCategory.
func (m MenuItem) CategoryOrDefault() string {
	if c := strings.TrimSpace(m.Category); c != "" {
		return c
	}
	return DefaultCategory
}

// CategoryGroup is a run of items sharing a category, in catalog order.
type CategoryGroup struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// GroupByCategory groups items by category in first-seen order.
func GroupByCategory(items []MenuItem) []CategoryGroup {
	index := make(map[string]int)
	var groups []CategoryGroup
	for _, item := range items {
		cat := item.CategoryOrDefault()
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, CategoryGroup{Category: cat})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
