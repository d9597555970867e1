// Package main provides the portfolio_agent CLI: the HTTP API server plus
// local commands for generating, previewing and publishing a portfolio.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio_agent",
	Short: "Portfolio Generator API server and CLI",
	Long: "Portfolio Generator aggregates a CV, GitHub stars, a LinkedIn profile and a manual form " +
		"into one portfolio record and serves it through a REST API or local commands.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
