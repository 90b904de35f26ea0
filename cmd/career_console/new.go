package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-console/internal/selection"
)

var (
	newConfigPath string
	newTitle      string
	newSummaryKey string
)

var newCmd = &cobra.Command{
	Use:   "new <slug>",
	Short: "Create a selection from the template",
	Long:  `Create a new selection document seeded from the template, ready to be edited and built.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newConfigPath, "config", "", "Path to config.json file")
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Document title for the new selection")
	newCmd.Flags().StringVar(&newSummaryKey, "summary", "", "Summary variant key to use")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(newConfigPath)
	if err != nil {
		return err
	}

	a, err := openApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open stores: %w", err)
	}
	defer a.close()

	var patch selection.Patch
	if cmd.Flags().Changed("title") {
		patch.Title = &newTitle
	}
	if cmd.Flags().Changed("summary") {
		patch.SummaryKey = &newSummaryKey
	}

	sel, err := a.selections.Create(ctx, args[0], patch)
	if err != nil {
		return err
	}

	fmt.Printf("Created selection %q (title: %q)\n", sel.Slug, sel.Title)
	return nil
}
