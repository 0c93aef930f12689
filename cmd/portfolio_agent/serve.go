package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/logger"
	"github.com/jonathan/portfolio-builder/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes parsing, mapping and merging over REST.
When DATABASE_URL is set, profiles can also be stored and imported into;
otherwise the /v1/profiles routes answer 503.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := *appConfig
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	var store server.ProfileStore
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		store = database
	} else {
		logger.Warn().Msg("DATABASE_URL not set; profile store disabled")
	}

	srv := server.New(server.ConfigFrom(&cfg), store)
	return srv.Start(ctx)
}
