package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadRegistry reads and validates a chat registry file.
func LoadRegistry(path string) (*ChatRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ChatRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return &reg, nil
}

func (r *ChatRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Aliases))
	for i, a := range r.Aliases {
		name := strings.ToLower(strings.TrimSpace(a.Name))
		if name == "" {
			return fmt.Errorf("aliases[%d]: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("aliases[%d]: duplicate alias %q", i, a.Name)
		}
		seen[name] = true
		if len(a.Keywords) == 0 {
			return fmt.Errorf("aliases[%d]: %q has no keywords", i, a.Name)
		}
	}
	for i, m := range r.Menu {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("menu[%d]: name is required", i)
		}
		if m.Price < 0 {
			return fmt.Errorf("menu[%d]: %q has a negative price", i, m.Name)
		}
	}
	return nil
}

// SaveRegistry validates reg and writes it as indented JSON, creating the
// parent directory when needed.
func SaveRegistry(reg *ChatRegistry, path string) error {
	if err := reg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// AddAlias appends a, keeping alias names unique.
func (r *ChatRegistry) AddAlias(a Alias) error {
	for _, existing := range r.Aliases {
		if strings.EqualFold(strings.TrimSpace(existing.Name), strings.TrimSpace(a.Name)) {
			return fmt.Errorf("alias %q already exists", a.Name)
		}
	}
	r.Aliases = append(r.Aliases, a)
	return nil
}

// AddMenuItem appends m, keeping non-empty ids unique.
func (r *ChatRegistry) AddMenuItem(m MenuEntry) error {
	if m.ID != "" {
		for _, existing := range r.Menu {
			if existing.ID == m.ID {
				return fmt.Errorf("menu item with ID %s already exists", m.ID)
			}
		}
	}
	r.Menu = append(r.Menu, m)
	return nil
}
