package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NickGaultney/elementor-logic-controls/internal/builder"
	"github.com/NickGaultney/elementor-logic-controls/internal/core/db"
	"github.com/NickGaultney/elementor-logic-controls/internal/core/fields"
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List forms, or one form's fields with their legal operators",
	RunE:  runFields,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.Flags().String("form", "", "form identifier (omit to list forms)")
}

func runFields(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formID, _ := cmd.Flags().GetString("form")

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	source := fields.NewDBSource(queries)
	out := cmd.OutOrStdout()

	if formID == "" {
		forms, err := source.Forms(ctx)
		if errors.Is(err, types.ErrNoForms) {
			fmt.Fprintln(out, "no forms found")
			return nil
		}
		if err != nil {
			return err
		}
		for _, f := range forms {
			fmt.Fprintf(out, "%-36s %s\n", f.ID, f.Title)
		}
		return nil
	}

	descriptors, err := source.Fields(ctx, types.FormID(formID))
	if err != nil {
		return err
	}

	for _, d := range descriptors {
		ops := builder.OperatorsFor(d.Type)
		fmt.Fprintf(out, "%-24s %-12s %v\n", d.Key, d.Type, ops)
	}
	return nil
}
