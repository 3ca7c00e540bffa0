package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"food-assistant/pkg/registry"
)

var registryPath string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and edit the chat registry (aliases and static menu)",
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d aliases and %d menu items.\n",
			len(reg.Aliases), len(reg.Menu))
		return nil
	},
}

var aliasOpts struct {
	name     string
	keywords []string
}

var registryAddAliasCmd = &cobra.Command{
	Use:     "add-alias",
	Short:   "Append a search alias",
	Example: `  chat-server registry add-alias --name bbq --keywords tikka,kebab,bbq`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if strings.TrimSpace(aliasOpts.name) == "" || len(aliasOpts.keywords) == 0 {
			return fmt.Errorf("name and keywords are required")
		}
		return updateRegistry(func(reg *registry.ChatRegistry) error {
			return reg.AddAlias(registry.Alias{Name: aliasOpts.name, Keywords: aliasOpts.keywords})
		}, cmd, "Added alias: "+aliasOpts.name)
	},
}

var itemOpts struct {
	id       string
	name     string
	price    float64
	category string
}

var registryAddItemCmd = &cobra.Command{
	Use:     "add-item",
	Short:   "Append a static menu item",
	Example: `  chat-server registry add-item --id m-801 --name "Chicken Tikka" --price 650 --category BBQ`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if strings.TrimSpace(itemOpts.name) == "" {
			return fmt.Errorf("name is required")
		}
		return updateRegistry(func(reg *registry.ChatRegistry) error {
			return reg.AddMenuItem(registry.MenuEntry{
				ID:       itemOpts.id,
				Name:     itemOpts.name,
				Price:    itemOpts.price,
				Category: itemOpts.category,
			})
		}, cmd, "Added menu item: "+itemOpts.name)
	},
}

func init() {
	registryCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/chat-registry.json", "path to registry file")

	registryAddAliasCmd.Flags().StringVar(&aliasOpts.name, "name", "", "alias word (e.g. sweet)")
	registryAddAliasCmd.Flags().StringSliceVar(&aliasOpts.keywords, "keywords", nil, "comma separated category keywords")

	registryAddItemCmd.Flags().StringVar(&itemOpts.id, "id", "", "menu item id")
	registryAddItemCmd.Flags().StringVar(&itemOpts.name, "name", "", "menu item name")
	registryAddItemCmd.Flags().Float64Var(&itemOpts.price, "price", 0, "price in rupees")
	registryAddItemCmd.Flags().StringVar(&itemOpts.category, "category", "", "menu category")

	registryCmd.AddCommand(registryValidateCmd, registryAddAliasCmd, registryAddItemCmd)
	rootCmd.AddCommand(registryCmd)
}

// updateRegistry loads the registry (or starts an empty one), applies edit
// and saves it with a fresh timestamp.
func updateRegistry(edit func(*registry.ChatRegistry) error, cmd *cobra.Command, done string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ChatRegistry{Version: "1.0.0"}
	}

	if err := edit(reg); err != nil {
		return err
	}
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if err := registry.SaveRegistry(reg, registryPath); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}
