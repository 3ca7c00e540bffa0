package registry

// ChatRegistry is the on-disk description of search aliases and, for
// deployments without a catalog database, a static menu.
type ChatRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Aliases     []Alias     `json:"aliases"`
	Menu        []MenuEntry `json:"menu,omitempty"`
}

// Alias order in the file is the order aliases are tried in.
type Alias struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type MenuEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}
