package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listConfigPath string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored selections",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(listConfigPath)
	if err != nil {
		return err
	}

	a, err := openApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open stores: %w", err)
	}
	defer a.close()

	summaries, err := a.selections.List(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No selections.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tSUMMARY\tPROJECTS")
	for _, s := range summaries {
		key := s.SummaryKey
		if key == "" {
			key = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.Slug, s.Title, key, len(s.SelectedProjects))
	}
	return w.Flush()
}
