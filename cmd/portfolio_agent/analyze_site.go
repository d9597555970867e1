package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-generator/internal/analysis"
	"github.com/jonathan/portfolio-generator/internal/observability"
)

var analyzeSiteCmd = &cobra.Command{
	Use:   "analyze-site <url>",
	Short: "Critique a personal website",
	Long: `Fetches the page, asks the LLM for a design critique and prints it.
Without an API key, or when the LLM call fails, a fallback critique is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyzeSite,
}

var analyzeSiteJSON bool

func init() {
	analyzeSiteCmd.Flags().BoolVar(&analyzeSiteJSON, "json", false, "Print the analysis as JSON")
	rootCmd.AddCommand(analyzeSiteCmd)
}

func runAnalyzeSite(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	analyzer := analysis.New(client,
		analysis.WithFetcher(newFetcher(cfg, logger)),
		analysis.WithLogger(logger))
	result, err := analyzer.Analyze(ctx, args[0])
	if err != nil {
		return err
	}

	if analyzeSiteJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(args[0], result)
	return nil
}
