package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-console/internal/draft"
	"github.com/jonathan/career-console/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveDBURL      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for the catalog, selections, and document builds.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL connection URL (overrides config and DATABASE_URL)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	stringFlagOverride(cmd, "db-url", &cfg.DatabaseURL, serveDBURL)

	a, err := openApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open stores: %w", err)
	}
	defer a.close()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var drafter *draft.Drafter
	if cfg.APIKey != "" {
		client, err := draft.NewGeminiClient(ctx, cfg.APIKey, "")
		if err != nil {
			return fmt.Errorf("failed to create draft client: %w", err)
		}
		defer func() { _ = client.Close() }()
		drafter = draft.NewDrafter(client)
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set; draft endpoints disabled")
	}

	srv := server.New(server.Config{Port: cfg.Port}, server.Deps{
		Log:        log,
		Master:     a.master,
		Selections: a.selections,
		Renderer:   a.renderer,
		Drafter:    drafter,
	})

	return srv.Start()
}
