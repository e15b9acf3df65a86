package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/NickGaultney/elementor-logic-controls/internal/core/config"
	"github.com/NickGaultney/elementor-logic-controls/internal/core/db"
	"github.com/NickGaultney/elementor-logic-controls/internal/core/store"
	"github.com/NickGaultney/elementor-logic-controls/internal/core/token"
	"github.com/NickGaultney/elementor-logic-controls/internal/document"
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a page's element tree with visibility rules applied",
	Long: `render loads a page's elements, resolves the submission referenced
by the entry token and applies each element's visibility rule. In the
default mode hidden subtrees are structurally removed before output; with
deferred_client enabled the tree is emitted intact together with per-element
outcomes for the client to apply once its data-ready signal fires. A missing
or invalid token degrades to an empty submission rather than failing the
page: rules then evaluate against no data and fall back to their emptiness
semantics.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("page", "", "page identifier to render")
	renderCmd.Flags().String("token", "", "signed entry token (optional)")
	renderCmd.MarkFlagRequired("page")
}

// renderOutput is the JSON document emitted for one server-side pass.
type renderOutput struct {
	Page      types.PageID               `json:"page"`
	Root      *document.Element          `json:"root"`
	Decisions map[types.ElementID]string `json:"decisions"`
}

// deferredOutput is the JSON document emitted in deferred-client mode: the
// tree untouched plus the outcome each closure resolved for its element.
type deferredOutput struct {
	Page     types.PageID               `json:"page"`
	Root     *document.Element          `json:"root"`
	Outcomes map[types.ElementID]string `json:"outcomes"`
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pageID, _ := cmd.Flags().GetString("page")
	tok, _ := cmd.Flags().GetString("token")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	queries, err := db.LoadQueries(database)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	root, err := document.NewDBLoader(queries).LoadPage(ctx, types.PageID(pageID))
	if err != nil {
		return fmt.Errorf("failed to load page: %w", err)
	}

	submissions := resolveStore(tok, queries)

	rec, err := submissions.Record(ctx)
	if err != nil {
		// A missing or unreadable entry degrades to an empty record; the
		// page still renders.
		slog.Warn("entry fetch failed, rendering without submission data", "error", err)
	}

	out, err := renderPage(cfg, types.PageID(pageID), root, rec)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}

// renderPage applies the configured pass strategy to a loaded page tree.
// The configured page size binds here; the synthetic page root is not
// counted against it.
func renderPage(cfg *config.RenderConfig, pageID types.PageID, root *document.Element, rec types.SubmissionRecord) (interface{}, error) {
	if n := root.Count() - 1; n > cfg.MaxPageSize {
		return nil, fmt.Errorf("page %s has %d elements: %w", pageID, n, types.ErrTooManyElements)
	}

	if cfg.DeferredClient {
		outcomes := document.CompileBatch(root).Run(rec)
		out := deferredOutput{
			Page:     pageID,
			Root:     root,
			Outcomes: make(map[types.ElementID]string, len(outcomes)),
		}
		for _, o := range outcomes {
			out.Outcomes[o.ID] = o.Decision.String()
		}
		return out, nil
	}

	result, err := document.Filter(root, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to filter page: %w", err)
	}

	out := renderOutput{
		Page:      pageID,
		Root:      result.Root,
		Decisions: make(map[types.ElementID]string, len(result.Decisions)),
	}
	for id, d := range result.Decisions {
		out.Decisions[id] = d.String()
	}
	return out, nil
}

// resolveStore decodes the entry token into a memoized submission store.
// Any token failure (absent, malformed, bad signature, no secrets) yields
// the empty store so the render proceeds without data.
func resolveStore(tok string, queries *db.Queries) *store.Store {
	if tok == "" {
		return store.Empty()
	}

	secrets, err := config.TokenSecrets()
	if err != nil {
		slog.Warn("token secrets unavailable", "error", err)
		return store.Empty()
	}

	claims, err := token.Decode(tok, secrets)
	if err != nil {
		slog.Warn("entry token rejected", "error", err)
		return store.Empty()
	}

	fetcher := store.NewDBFetcher(queries)
	return store.New(fetcher, types.EntryID(claims.EntryID), types.FormID(claims.FormID))
}
