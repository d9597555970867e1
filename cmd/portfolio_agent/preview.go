package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-generator/internal/render"
	"github.com/jonathan/portfolio-generator/internal/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the saved portfolio as HTML",
	Long: `Renders the working portfolio, or a published one with --slug, to stdout or a file.
A missing record renders the not-found page. --edit also stages the rendered record
so the next edit command starts from it.`,
	RunE: runPreview,
}

var (
	previewSlug   string
	previewOutput string
	previewEdit   bool
)

func init() {
	previewCmd.Flags().StringVar(&previewSlug, "slug", "", "Render the portfolio published under this subdomain")
	previewCmd.Flags().StringVarP(&previewOutput, "out", "o", "", "Write HTML to this file instead of stdout")
	previewCmd.Flags().BoolVar(&previewEdit, "edit", false, "Stage the rendered record for the next edit")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	local, err := openLocalStore(cfg)
	if err != nil {
		return err
	}

	var rec *types.PortfolioRecord
	if previewSlug != "" {
		rec, err = local.LoadPublished(previewSlug)
	} else {
		rec, err = local.LoadPortfolio()
	}
	if err != nil {
		return fmt.Errorf("failed to load portfolio: %w", err)
	}
	if previewEdit && rec != nil {
		if err := local.StageEdit(rec); err != nil {
			return fmt.Errorf("failed to stage edit: %w", err)
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if previewOutput != "" {
		f, err := os.Create(previewOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	// A nil record renders the not-found page.
	return render.Render(w, rec)
}
