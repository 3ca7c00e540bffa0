package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"food-assistant/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRegistryCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat-registry.json")

	out, err := runCLI(t, "registry", "add-alias", "--path", path, "--name", "bbq", "--keywords", "tikka,kebab")
	require.NoError(t, err)
	assert.Contains(t, out, "Added alias: bbq")

	out, err = runCLI(t, "registry", "add-item", "--path", path, "--id", "m-1", "--name", "Chicken Tikka", "--price", "650", "--category", "BBQ")
	require.NoError(t, err)
	assert.Contains(t, out, "Added menu item: Chicken Tikka")

	_, err = runCLI(t, "registry", "add-alias", "--path", path, "--name", "BBQ", "--keywords", "grill")
	assert.ErrorContains(t, err, "already exists")

	out, err = runCLI(t, "registry", "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 aliases and 1 menu items")

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"tikka", "kebab"}, reg.Aliases[0].Keywords)
	assert.Equal(t, 650.0, reg.Menu[0].Price)
	assert.NotEmpty(t, reg.LastUpdated)
}

func TestRegistryValidate_Missing(t *testing.T) {
	_, err := runCLI(t, "registry", "validate", "--path", filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorContains(t, err, "registry validation failed")
}
