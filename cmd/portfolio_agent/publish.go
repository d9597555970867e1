package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-generator/internal/publish"
	"github.com/jonathan/portfolio-generator/internal/types"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the saved portfolio under a generated subdomain",
	Long:  "Builds the published envelope for the working portfolio, stores a copy under its subdomain and prints the envelope.",
	RunE:  runPublish,
}

var publishName string

func init() {
	publishCmd.Flags().StringVar(&publishName, "name", "", "Name used for the subdomain (default: the portfolio's name)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	local, err := openLocalStore(cfg)
	if err != nil {
		return err
	}

	rec, err := local.LoadPortfolio()
	if err != nil {
		return fmt.Errorf("failed to load portfolio: %w", err)
	}
	if !rec.Valid() {
		return fmt.Errorf("no portfolio saved in %s, run generate first", cfg.DataDir)
	}

	userData := map[string]any{}
	if publishName != "" {
		userData["name"] = publishName
	}

	// The full record is kept, not just the extracted subset.
	saver := publish.SaverFunc(func(slug string, _ *types.PortfolioRecord) error {
		return local.Publish(slug, rec)
	})
	portfolio, err := publish.New(publish.WithSaver(saver)).Publish(types.GeneratePortfolioRequest{
		UserData: userData,
		ExtractedContent: &types.ExtractedContent{
			BasicInfo:  rec.BasicInfo,
			Projects:   rec.Projects,
			Experience: rec.Experience,
			Skills:     rec.Skills,
		},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(portfolio)
}
