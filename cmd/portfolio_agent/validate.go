package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-generator/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against an embedded schema",
	Long:  "Validates a JSON document against one of the embedded schemas: extraction, website-analysis or portfolio.",
	RunE:  runValidate,
}

var (
	validateSchema string
	validateInput  string
)

var schemaNames = map[string]string{
	"extraction":       schemas.Extraction,
	"website-analysis": schemas.WebsiteAnalysis,
	"portfolio":        schemas.Portfolio,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "portfolio", "Schema name: extraction, website-analysis or portfolio")
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to JSON file (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	name, ok := schemaNames[validateSchema]
	if !ok {
		return fmt.Errorf("unknown schema %q", validateSchema)
	}

	if err := schemas.ValidateFile(name, validateInput); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("validation failed: %w", err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid against %s\n", validateInput, name)
	return nil
}
