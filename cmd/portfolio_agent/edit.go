package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-generator/internal/editing"
	"github.com/jonathan/portfolio-generator/internal/types"
)

var editCmd = &cobra.Command{
	Use:   "edit <experience|education|projects|skills> <add|save|remove>",
	Short: "Add, replace or remove an item of the saved portfolio",
	Long: `Applies one edit to the working portfolio in the data directory and writes it back.
A record staged with preview --edit replaces the working portfolio first.
save and remove need --id; add and save take the item as JSON in --item.
Skills may be given as a bare name.`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

var (
	editID   string
	editItem string
)

func init() {
	editCmd.Flags().StringVar(&editID, "id", "", "ID of the item to save or remove")
	editCmd.Flags().StringVar(&editItem, "item", "", "Item JSON, or a skill name")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	collection, kind := args[0], editing.ActionKind(args[1])
	switch kind {
	case editing.ActionAdd, editing.ActionSave, editing.ActionRemove:
	default:
		return fmt.Errorf("%w: %s", editing.ErrUnknownAction, kind)
	}
	if kind != editing.ActionAdd && editID == "" {
		return fmt.Errorf("--id is required for %s", kind)
	}

	var item json.RawMessage
	if editItem != "" {
		if json.Valid([]byte(editItem)) {
			item = json.RawMessage(editItem)
		} else if collection == editing.CollectionSkills {
			item, _ = json.Marshal(editItem)
		} else {
			return fmt.Errorf("--item is not valid JSON")
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	local, err := openLocalStore(cfg)
	if err != nil {
		return err
	}

	staged, err := local.TakeEdit()
	if err != nil {
		return err
	}

	var saved *types.PortfolioRecord
	err = local.UpdatePortfolio(func(rec *types.PortfolioRecord) error {
		if staged != nil {
			*rec = *staged
		}
		if !rec.Valid() {
			return fmt.Errorf("no portfolio saved in %s, run generate first", cfg.DataDir)
		}
		if err := editing.ApplyToRecord(rec, collection, kind, editID, item); err != nil {
			return err
		}
		saved = rec
		return nil
	})
	if err != nil {
		if staged != nil {
			// Keep the hand-off for the next attempt.
			_ = local.StageEdit(staged)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d experience, %d education, %d projects, %d skills\n",
		kind, collection, len(saved.Experience), len(saved.Education), len(saved.Projects), saved.Skills.Len())
	return nil
}
