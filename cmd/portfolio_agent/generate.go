package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/editing"
	"github.com/jonathan/portfolio-generator/internal/observability"
	"github.com/jonathan/portfolio-generator/internal/pipeline"
	"github.com/jonathan/portfolio-generator/internal/store"
	"github.com/jonathan/portfolio-generator/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a portfolio record and save it locally",
	Long: `Runs the aggregation pipeline over a CV filename, GitHub and LinkedIn identifiers
and the manual form fields, prints the result and saves it to the data directory
where preview, edit and publish pick it up.`,
	RunE: runGenerate,
}

var (
	generateCV       string
	generateGitHub   string
	generateLinkedIn string
	generateBehance  string
	generateDribbble string
	generateFigma    string
	generateWebsite  string
	generateName     string
	generateTitle    string
	generateBio      string
	generateLocation string
	generateEmail    string
	generatePhone    string
)

func init() {
	generateCmd.Flags().StringVar(&generateCV, "cv", "", "Path to a CV PDF (only its name and size are used)")
	generateCmd.Flags().StringVar(&generateGitHub, "github", "", "GitHub username or profile URL")
	generateCmd.Flags().StringVar(&generateLinkedIn, "linkedin", "", "LinkedIn profile URL")
	generateCmd.Flags().StringVar(&generateBehance, "behance", "", "Behance profile")
	generateCmd.Flags().StringVar(&generateDribbble, "dribbble", "", "Dribbble profile")
	generateCmd.Flags().StringVar(&generateFigma, "figma", "", "Figma profile")
	generateCmd.Flags().StringVar(&generateWebsite, "website", "", "Personal website URL")
	generateCmd.Flags().StringVar(&generateName, "name", "", "Full name")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "Professional title")
	generateCmd.Flags().StringVar(&generateBio, "bio", "", "Short bio")
	generateCmd.Flags().StringVar(&generateLocation, "location", "", "Location")
	generateCmd.Flags().StringVar(&generateEmail, "email", "", "Contact email")
	generateCmd.Flags().StringVar(&generatePhone, "phone", "", "Contact phone")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	in := pipeline.Input{
		GitHub:   generateGitHub,
		LinkedIn: generateLinkedIn,
		Behance:  generateBehance,
		Dribbble: generateDribbble,
		Figma:    generateFigma,
		Website:  generateWebsite,
		Manual: types.ManualInput{
			Name:     generateName,
			Title:    generateTitle,
			Bio:      generateBio,
			Location: generateLocation,
			Email:    generateEmail,
			Phone:    generatePhone,
		},
	}
	if generateCV != "" {
		info, err := os.Stat(generateCV)
		if err != nil {
			return fmt.Errorf("failed to read CV: %w", err)
		}
		if err := cvextract.ValidatePipelineUpload(info.Name(), info.Size()); err != nil {
			return err
		}
		in.CVFilename = info.Name()
		in.CVSize = info.Size()
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	opts := pipelineOptions(cfg, logger)
	opts.OnProgress = func(ev pipeline.ProgressEvent) {
		printer.PrintProgress(ev.Step, ev.Message)
	}

	out, err := pipeline.NewRunner(opts).Run(context.Background(), in)
	if err != nil {
		return err
	}
	wizard := advanceWizard(out)
	if wizard.Warning != "" {
		logger.Warn(wizard.Warning)
		fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", wizard.Warning)
	}

	printer.PrintSources(out.Sources)
	printer.PrintRecord(&out.Record)
	if wizard.Done() {
		fmt.Fprintln(cmd.OutOrStdout(), "Next: review projects with `edit projects add|save|remove`")
	}

	local, err := openLocalStore(cfg)
	if err != nil {
		return err
	}
	if err := local.SavePortfolio(&out.Record); err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}
	userID := store.Key(in.GitHub, in.LinkedIn)
	if err := local.SetUserID(userID); err != nil {
		return fmt.Errorf("failed to save user id: %w", err)
	}

	logger.Info("portfolio saved", zap.String("dir", cfg.DataDir), zap.String("user_id", userID))
	return nil
}

// advanceWizard walks the creation wizard past the basic and social tabs for a
// finished run. A degraded run lands on the projects tab with its warning.
func advanceWizard(out *pipeline.Output) *editing.Wizard {
	w := editing.NewWizard()
	w.Next()
	if out.Warning != "" {
		w.Degrade(out.Warning)
		return w
	}
	w.Next()
	return w
}
