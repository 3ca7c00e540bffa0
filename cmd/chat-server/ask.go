package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"food-assistant/internal/chat/router"
	"food-assistant/internal/common/logger"
	"food-assistant/internal/models"
)

var askOpts struct {
	user    string
	lat     float64
	lng     float64
	place   string
	verbose bool
}

var askCmd = &cobra.Command{
	Use:   "ask [message...]",
	Short: "Answer a single chat message and print the reply as JSON",
	Example: `  chat-server ask --user u1 "track my order"
  chat-server ask --lat 31.52 --lng 74.35 --place Gulberg`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askOpts.user, "user", "", "user id (empty means guest)")
	askCmd.Flags().Float64Var(&askOpts.lat, "lat", 0, "pinned latitude")
	askCmd.Flags().Float64Var(&askOpts.lng, "lng", 0, "pinned longitude")
	askCmd.Flags().StringVar(&askOpts.place, "place", "", "display name of the pinned location")
	askCmd.Flags().BoolVar(&askOpts.verbose, "verbose", false, "write logs to stderr")
}

func runAsk(cmd *cobra.Command, args []string) error {
	req := router.Request{
		Message: strings.Join(args, " "),
		UserID:  askOpts.user,
	}
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		req.Coordinates = &models.Location{
			Coordinates: models.Coordinates{Lat: askOpts.lat, Lng: askOpts.lng},
			Name:        askOpts.place,
		}
	}
	if strings.TrimSpace(req.Message) == "" && req.Coordinates == nil {
		return errors.New("a message or a pinned location is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	log := logger.NewNoOpLogger()
	if askOpts.verbose {
		log = logger.NewStructured(cfg.Logging.Level, "console")
	}

	app, err := buildApplication(cmd.Context(), cfg, nil, log, 1)
	if err != nil {
		return err
	}
	defer app.Close()

	reply := app.router.Handle(cmd.Context(), req)
	out, err := json.MarshalIndent(reply, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
