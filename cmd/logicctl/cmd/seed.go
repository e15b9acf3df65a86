package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NickGaultney/elementor-logic-controls/internal/core/db"
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a demo form, entry and page for local development",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

const demoFieldsJSON = `{
  "fields": [
    {"element": "input_text", "attributes": {"name": "full_name"}, "settings": {"label": "Full Name"}},
    {"element": "select", "attributes": {"name": "plan"}, "settings": {
      "label": "Plan",
      "advanced_options": [
        {"label": "Free", "value": "free"},
        {"label": "Pro", "value": "pro"}
      ]}},
    {"element": "input_checkbox", "attributes": {"name": "interests"}, "settings": {"label": "Interests"}}
  ]
}`

const demoResponseJSON = `{"full_name": "Ada Lovelace", "plan": "pro", "interests": ["api", "automation"]}`

func runSeed(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	formID := uuid.Must(uuid.NewV7()).String()
	if _, err := queries.Exec("create-form", formID, "Demo Signup", demoFieldsJSON, now); err != nil {
		return fmt.Errorf("failed to seed form: %w", err)
	}

	entryID := uuid.Must(uuid.NewV7()).String()
	if _, err := queries.Exec("create-entry", entryID, formID, demoResponseJSON, now); err != nil {
		return fmt.Errorf("failed to seed entry: %w", err)
	}

	pageID := uuid.Must(uuid.NewV7()).String()
	sectionID := types.NewElementID()
	if _, err := queries.Exec("create-element",
		string(sectionID), pageID, nil, "section", 0, false, "", now); err != nil {
		return fmt.Errorf("failed to seed section: %w", err)
	}

	widgetID := types.NewElementID()
	ruleText := `contains('interests', "api") && s('plan') === "pro"`
	if _, err := queries.Exec("create-element",
		string(widgetID), pageID, string(sectionID), "widget", 0, true, ruleText, now); err != nil {
		return fmt.Errorf("failed to seed widget: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "form:  %s\n", formID)
	fmt.Fprintf(out, "entry: %s\n", entryID)
	fmt.Fprintf(out, "page:  %s\n", pageID)
	return nil
}
