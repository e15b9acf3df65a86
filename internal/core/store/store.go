// Package store provides the per-pass submission record cache and its
// database-backed entry fetcher.
package store

import (
	"context"
	"sync"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Submission store.
 *
 * One Store serves one evaluation pass (one page render). It loads the
 * submission record at most once from the entry fetcher and hands the same
 * immutable snapshot to every reader; concurrent readers within the pass
 * observe identical data, and no reader can mutate what the others see.
 *
 * Scoping the cache to a value owned by the pass, rather than process-global
 * state, is deliberate: two concurrent renders for different entries never
 * share or clobber each other's data, and a finished pass releases its
 * snapshot with it.
 *
 * A fetch failure is memoized the same way the record is: the pass degrades
 * to an empty record everywhere rather than retrying per element.
 */

// EntryFetcher loads the answer set of one form entry.
// Implementations are fallible, possibly remote I/O; the Store shields the
// evaluation pass from their failure modes.
type EntryFetcher interface {
	FetchEntry(ctx context.Context, entryID types.EntryID, formID types.FormID) (types.SubmissionRecord, error)
}

// Store is the request-scoped submission cache.
type Store struct {
	fetcher EntryFetcher
	entryID types.EntryID
	formID  types.FormID

	once sync.Once
	rec  types.SubmissionRecord
	err  error
}

// New creates a store for one pass over one entry.
func New(fetcher EntryFetcher, entryID types.EntryID, formID types.FormID) *Store {
	return &Store{fetcher: fetcher, entryID: entryID, formID: formID}
}

// Empty creates a store that resolves to an empty record without fetching.
// Used when there is no submission context (no token, or decode failed).
func Empty() *Store {
	s := &Store{}
	s.once.Do(func() { s.rec = types.SubmissionRecord{} })
	return s
}

// Record returns the pass's submission snapshot, loading it on first call.
// On fetch failure it returns an empty record together with the error; the
// failure is memoized and later calls observe the same outcome.
func (s *Store) Record(ctx context.Context) (types.SubmissionRecord, error) {
	s.once.Do(func() {
		if s.fetcher == nil {
			s.rec = types.SubmissionRecord{}
			return
		}
		rec, err := s.fetcher.FetchEntry(ctx, s.entryID, s.formID)
		if err != nil {
			s.rec = types.SubmissionRecord{}
			s.err = err
			return
		}
		if rec == nil {
			rec = types.SubmissionRecord{}
		}
		s.rec = rec
	})
	return s.rec, s.err
}
