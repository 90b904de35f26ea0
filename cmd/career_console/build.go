package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-console/internal/export"
	"github.com/jonathan/career-console/internal/observability"
	"github.com/jonathan/career-console/internal/resolve"
)

var (
	buildConfigPath string
	buildAll        bool
	buildPDF        bool
	buildVerbose    bool
)

var buildCmd = &cobra.Command{
	Use:   "build [slug]",
	Short: "Render one selection (or all) to an HTML document",
	Long: `Resolve a selection against the master catalog and assemble the HTML
document into the dist directory. With --pdf the HTML is additionally
printed to PDF (requires Chrome).`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildConfigPath, "config", "", "Path to config.json file")
	buildCmd.Flags().BoolVar(&buildAll, "all", false, "Build every stored selection")
	buildCmd.Flags().BoolVar(&buildPDF, "pdf", false, "Also export a PDF (requires Chrome)")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Print detailed progress information")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	if !buildAll && len(args) != 1 {
		return fmt.Errorf("expected exactly one slug, or --all")
	}

	cfg, err := loadMergedConfig(buildConfigPath)
	if err != nil {
		return err
	}
	if buildVerbose {
		cfg.Verbose = true
	}

	a, err := openApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open stores: %w", err)
	}
	defer a.close()

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintCatalog(a.master.Snapshot(ctx))
	}

	slugs := args
	if buildAll {
		summaries, err := a.selections.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list selections: %w", err)
		}
		slugs = slugs[:0]
		for _, summary := range summaries {
			slugs = append(slugs, summary.Slug)
		}
		if len(slugs) == 0 {
			fmt.Println("No selections to build.")
			return nil
		}
	}

	// Renders are CPU-light; the PDF export dominates, so cap concurrency
	// at a handful of browser sessions.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, slug := range slugs {
		g.Go(func() error {
			return buildOne(gctx, a, printer, slug, cfg.Verbose)
		})
	}
	return g.Wait()
}

func buildOne(ctx context.Context, a *app, printer *observability.Printer, slug string, verbose bool) error {
	sel, err := a.selections.Get(ctx, slug)
	if err != nil {
		return err
	}

	doc := a.master.Snapshot(ctx)
	if verbose {
		printer.PrintResolved(slug, resolve.Resolve(doc, sel))
	}

	path, err := a.renderer.WriteArtifact(doc, sel)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	printer.PrintArtifact(slug, path, int(info.Size()))

	if buildPDF {
		pdfPath, err := export.ToPDF(ctx, path, 0, verbose)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", pdfPath)
	}
	return nil
}
