// internal/core/store/fetcher.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

// Queries is the named-query surface the fetcher needs.
// Implemented by *db.Queries to allow query loading via LoadQueries().
type Queries interface {
	Get(name string, dest interface{}, args ...interface{}) error
}

// DBFetcher loads entry responses from the form backend's tables.
type DBFetcher struct {
	queries Queries
}

// NewDBFetcher creates a fetcher over loaded named queries.
func NewDBFetcher(queries Queries) *DBFetcher {
	return &DBFetcher{queries: queries}
}

// FetchEntry reads one entry's response JSON and decodes it into a record.
// The response is a flat JSON object: field key to scalar or array of
// scalars, exactly the shape FieldValue accepts.
func (f *DBFetcher) FetchEntry(ctx context.Context, entryID types.EntryID, formID types.FormID) (types.SubmissionRecord, error) {
	var row struct {
		Response string `db:"response_json"`
	}

	err := f.queries.Get("get-entry-response", &row, string(entryID), string(formID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch entry %s: %w", entryID, err)
	}

	var rec types.SubmissionRecord
	if err := json.Unmarshal([]byte(row.Response), &rec); err != nil {
		return nil, fmt.Errorf("decode entry %s response: %w", entryID, err)
	}
	return rec, nil
}
