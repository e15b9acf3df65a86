package document

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

// Queries is the named-query surface the loader needs.
// Implemented by *db.Queries to allow query loading via LoadQueries().
type Queries interface {
	Select(name string, dest interface{}, args ...interface{}) error
}

// DBLoader reads a page's element rows and assembles the tree.
type DBLoader struct {
	queries Queries
}

// NewDBLoader creates a loader over loaded named queries.
func NewDBLoader(queries Queries) *DBLoader {
	return &DBLoader{queries: queries}
}

type elementRow struct {
	ID           string         `db:"id"`
	ParentID     sql.NullString `db:"parent_id"`
	Kind         string         `db:"kind"`
	Position     int            `db:"position"`
	LogicEnabled bool           `db:"logic_enabled"`
	RuleText     string         `db:"rule_text"`
}

// LoadPage builds the element tree for one page. The returned root is a
// synthetic page node; its children are the page's top-level elements in
// position order. Rows referencing a missing parent are rejected rather
// than silently dropped.
func (l *DBLoader) LoadPage(ctx context.Context, pageID types.PageID) (*Element, error) {
	var rows []elementRow
	if err := l.queries.Select("list-page-elements", &rows, string(pageID)); err != nil {
		return nil, fmt.Errorf("load page %s elements: %w", pageID, err)
	}
	if len(rows) > types.MaxElementsPerPage {
		return nil, fmt.Errorf("page %s has %d elements: %w", pageID, len(rows), types.ErrTooManyElements)
	}

	root := &Element{ID: types.ElementID(pageID), Kind: "page"}
	byID := map[types.ElementID]*Element{}

	for _, r := range rows {
		el := &Element{
			ID:   types.ElementID(r.ID),
			Kind: r.Kind,
		}
		if r.RuleText != "" || r.LogicEnabled {
			el.Rule = &types.ElementRule{
				ElementID: el.ID,
				Enabled:   r.LogicEnabled,
				Source:    r.RuleText,
			}
		}
		byID[el.ID] = el
	}

	// Rows arrive in position order, so appending preserves document order
	// at every level of the tree.
	for _, r := range rows {
		el := byID[types.ElementID(r.ID)]
		if !r.ParentID.Valid || r.ParentID.String == "" {
			root.Children = append(root.Children, el)
			continue
		}
		parent, ok := byID[types.ElementID(r.ParentID.String)]
		if !ok {
			return nil, fmt.Errorf("element %s references unknown parent %s", r.ID, r.ParentID.String)
		}
		parent.Children = append(parent.Children, el)
	}

	return root, nil
}
