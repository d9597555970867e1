package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/observability"
)

var inferProfileCmd = &cobra.Command{
	Use:   "infer-profile <filename>",
	Short: "Show the profile inferred from a CV filename",
	Long:  "Detects the archetype and name from a CV filename and prints the resulting profile. The file itself is not read.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInferProfile,
}

var inferProfileJSON bool

func init() {
	inferProfileCmd.Flags().BoolVar(&inferProfileJSON, "json", false, "Print the profile as JSON")
	rootCmd.AddCommand(inferProfileCmd)
}

func runInferProfile(cmd *cobra.Command, args []string) error {
	rec := cvextract.InferProfile(args[0])

	if inferProfileJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archetype: %s\n", cvextract.DetectArchetype(args[0]))
	observability.NewPrinter(cmd.OutOrStdout()).PrintRecord(&rec)
	return nil
}
