package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-console/internal/config"
	"github.com/jonathan/career-console/internal/render"
	"github.com/jonathan/career-console/internal/selection"
	"github.com/jonathan/career-console/internal/store"
	"github.com/jonathan/career-console/internal/types"
)

// app bundles the wired services shared by every subcommand.
type app struct {
	cfg        config.Config
	master     *store.Master
	selections *selection.Store
	renderer   *render.Renderer
	pg         *store.Postgres
}

// close releases backend resources.
func (a *app) close() {
	if a.pg != nil {
		a.pg.Close()
	}
}

// loadMergedConfig loads the optional config file, applies environment
// fallbacks, and merges built-in defaults.
func loadMergedConfig(configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openApp wires storage and rendering from the merged config. With a
// database URL both document stores live in Postgres; otherwise they live
// on the local filesystem.
func openApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{cfg: cfg}

	var (
		masterBackend    store.Backend
		selectionBackend selection.Backend
	)
	if cfg.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.pg = pg
		masterBackend = pg
		selectionBackend = pg
	} else {
		fileBackend, err := store.NewFile(cfg.MasterPath)
		if err != nil {
			return nil, err
		}
		dirBackend, err := selection.NewDir(cfg.SelectionsDir)
		if err != nil {
			return nil, err
		}
		masterBackend = fileBackend
		selectionBackend = dirBackend
	}

	master, err := store.OpenMaster(ctx, masterBackend)
	if err != nil {
		a.close()
		return nil, err
	}
	a.master = master

	a.selections = selection.NewStore(selectionBackend, master, loadTemplate(cfg.SelectionsDir))

	renderer, err := render.NewRenderer(cfg.Template, cfg.DistDir)
	if err != nil {
		a.close()
		return nil, err
	}
	a.renderer = renderer

	return a, nil
}

// loadTemplate reads the selection seed document from template.json in the
// selections directory, falling back to the built-in template.
func loadTemplate(selectionsDir string) types.Selection {
	data, err := os.ReadFile(filepath.Join(selectionsDir, "template.json"))
	if err != nil {
		return selection.DefaultTemplate()
	}

	tpl := selection.DefaultTemplate()
	if err := json.Unmarshal(data, &tpl); err != nil {
		return selection.DefaultTemplate()
	}
	tpl.Slug = ""
	return tpl
}

// stringFlagOverride applies a flag value over cfg when the flag was set.
func stringFlagOverride(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}
