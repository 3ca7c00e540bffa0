// Package catalog searches the menu snapshot and fetches it from the backing stores.
package catalog

import (
	"strings"
	"unicode"

	"food-assistant/internal/models"
)

// minTokenLen is the shortest word considered for partial name matching.
const minTokenLen = 3

// Result is the outcome of one Search call. The concrete type is one of
// ProductMatch, CategoryAliasMatch, CategoryMatch, PartialMatch or NoMatch.
type Result interface {
	// Items returns every item carried by the result, in catalog order.
	Items() []models.MenuItem
	isResult()
}

type ProductMatch struct {
	Item models.MenuItem
}

type CategoryAliasMatch struct {
	Alias  string
	Groups []models.CategoryGroup
}

type CategoryMatch struct {
	Category string
	Matched  []models.MenuItem
}

type PartialMatch struct {
	Query   string
	Matched []models.MenuItem
}

type NoMatch struct{}

func (r ProductMatch) Items() []models.MenuItem { return []models.MenuItem{r.Item} }

func (r CategoryAliasMatch) Items() []models.MenuItem {
	var out []models.MenuItem
	for _, g := range r.Groups {
		out = append(out, g.Items...)
	}
	return out
}

func (r CategoryMatch) Items() []models.MenuItem { return r.Matched }
func (r PartialMatch) Items() []models.MenuItem  { return r.Matched }
func (NoMatch) Items() []models.MenuItem         { return nil }

func (ProductMatch) isResult()       {}
func (CategoryAliasMatch) isResult() {}
func (CategoryMatch) isResult()      {}
func (PartialMatch) isResult()       {}
func (NoMatch) isResult()            {}

// Search runs the matching strategies in priority order over items and
// returns the first that yields anything.
func Search(query string, items []models.MenuItem, aliases []Alias) Result {
	q := Normalize(query)
	if q == "" || len(items) == 0 {
		return NoMatch{}
	}

	if item, ok := matchProduct(q, items); ok {
		return ProductMatch{Item: item}
	}
	if r, ok := matchAlias(q, items, aliases); ok {
		return r
	}
	if r, ok := matchCategory(q, items); ok {
		return r
	}
	if matched := matchPartial(q, items); len(matched) > 0 {
		return PartialMatch{Query: q, Matched: matched}
	}
	return NoMatch{}
}

// Normalize lower-cases and trims a query.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchProduct prefers an item whose whole name appears in the query over
// one whose name merely contains the query.
func matchProduct(q string, items []models.MenuItem) (models.MenuItem, bool) {
	for _, item := range items {
		name := Normalize(item.Name)
		if name != "" && strings.Contains(q, name) {
			return item, true
		}
	}
	for _, item := range items {
		if strings.Contains(Normalize(item.Name), q) {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

func matchAlias(q string, items []models.MenuItem, aliases []Alias) (Result, bool) {
	for _, alias := range aliases {
		name := Normalize(alias.Name)
		if name == "" || !containsEither(q, name) {
			continue
		}
		var matched []models.MenuItem
		for _, item := range items {
			category := Normalize(item.CategoryOrDefault())
			for _, kw := range alias.Keywords {
				if containsEither(category, Normalize(kw)) {
					matched = append(matched, item)
					break
				}
			}
		}
		if len(matched) > 0 {
			return CategoryAliasMatch{Alias: alias.Name, Groups: models.GroupByCategory(matched)}, true
		}
	}
	return nil, false
}

func matchCategory(q string, items []models.MenuItem) (Result, bool) {
	var matched []models.MenuItem
	for _, item := range items {
		if containsEither(Normalize(item.CategoryOrDefault()), q) {
			matched = append(matched, item)
		}
	}
	if len(matched) == 0 {
		return nil, false
	}
	return CategoryMatch{Category: matched[0].CategoryOrDefault(), Matched: matched}, true
}

// matchPartial compares words rather than whole strings, since the whole
// query was already tried against every name.
func matchPartial(q string, items []models.MenuItem) []models.MenuItem {
	queryTokens := tokens(q)
	var matched []models.MenuItem
	for _, item := range items {
		name := Normalize(item.Name)
		if sharesToken(name, queryTokens) || sharesToken(q, tokens(name)) {
			matched = append(matched, item)
		}
	}
	return matched
}

func sharesToken(s string, toks []string) bool {
	for _, t := range toks {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func tokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minTokenLen && !stopWords[f] {
			out = append(out, f)
		}
	}
	return out
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"have": true, "any": true, "some": true, "can": true, "get": true,
	"what": true, "show": true, "please": true, "want": true, "need": true,
}

// containsEither reports whether either string contains the other.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
