package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"food-assistant/internal/common/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chat-server",
	Short: "Conversational support assistant for a food-ordering service",
	Long: `chat-server answers customer chat messages about the menu, delivery
coverage and order status, falling back to a generative model for anything
the rules do not cover.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./configs/config.yaml)")
	rootCmd.AddCommand(serveCmd, askCmd)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.Load()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
