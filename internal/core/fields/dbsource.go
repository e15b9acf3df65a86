// internal/core/fields/dbsource.go
package fields

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

// Queries is the named-query surface the source needs.
// Implemented by *db.Queries to allow query loading via LoadQueries().
type Queries interface {
	Get(name string, dest interface{}, args ...interface{}) error
	Select(name string, dest interface{}, args ...interface{}) error
}

// DBSource reads form metadata from the form backend's tables.
type DBSource struct {
	queries Queries
}

// NewDBSource creates a source over loaded named queries.
func NewDBSource(queries Queries) *DBSource {
	return &DBSource{queries: queries}
}

// Forms lists all forms, newest first.
// Returns ErrNoForms when the backend has none, so the authoring surface can
// show its "no forms found" message instead of an empty picker.
func (s *DBSource) Forms(ctx context.Context) ([]Form, error) {
	var rows []struct {
		ID    string `db:"id"`
		Title string `db:"title"`
	}
	if err := s.queries.Select("list-forms", &rows); err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	if len(rows) == 0 {
		return nil, types.ErrNoForms
	}

	forms := make([]Form, 0, len(rows))
	for _, r := range rows {
		forms = append(forms, Form{ID: types.FormID(r.ID), Title: r.Title})
	}
	return forms, nil
}

// Fields loads and flattens one form's field definition.
func (s *DBSource) Fields(ctx context.Context, formID types.FormID) ([]types.FieldDescriptor, error) {
	var row struct {
		FieldsJSON string `db:"fields_json"`
	}
	err := s.queries.Get("get-form-fields", &row, string(formID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrFormNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load form %s fields: %w", formID, err)
	}
	return ParseFieldJSON([]byte(row.FieldsJSON))
}
