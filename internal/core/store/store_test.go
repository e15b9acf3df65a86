// internal/core/store/store_test.go
package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

// countingFetcher records how many times it was asked to load.
type countingFetcher struct {
	calls atomic.Int32
	rec   types.SubmissionRecord
	err   error
}

func (f *countingFetcher) FetchEntry(ctx context.Context, entryID types.EntryID, formID types.FormID) (types.SubmissionRecord, error) {
	f.calls.Add(1)
	return f.rec, f.err
}

func TestStore_LoadsAtMostOnce(t *testing.T) {
	fetcher := &countingFetcher{rec: types.SubmissionRecord{"country": types.Scalar("US")}}
	s := New(fetcher, "42", "7")

	for i := 0; i < 5; i++ {
		rec, err := s.Record(context.Background())
		if err != nil {
			t.Fatalf("Record() error = %v, want nil", err)
		}
		if rec["country"].Text != "US" {
			t.Fatalf("Record()[country] = %q, want US", rec["country"].Text)
		}
	}

	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetcher called %d times, want 1", got)
	}
}

func TestStore_ConcurrentReadersShareSnapshot(t *testing.T) {
	fetcher := &countingFetcher{rec: types.SubmissionRecord{"a": types.Scalar("1")}}
	s := New(fetcher, "42", "7")

	const readers = 16
	var wg sync.WaitGroup
	records := make([]types.SubmissionRecord, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records[i], _ = s.Record(context.Background())
		}(i)
	}
	wg.Wait()

	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetcher called %d times under concurrency, want 1", got)
	}
	for i, rec := range records {
		if rec["a"].Text != "1" {
			t.Errorf("reader %d observed %v, want shared snapshot", i, rec)
		}
	}
}

func TestStore_FetchFailureDegradesToEmpty(t *testing.T) {
	wantErr := errors.New("backend down")
	fetcher := &countingFetcher{err: wantErr}
	s := New(fetcher, "42", "7")

	rec, err := s.Record(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("Record() error = %v, want %v", err, wantErr)
	}
	if len(rec) != 0 {
		t.Errorf("Record() on failure = %v, want empty record", rec)
	}

	// Failure is memoized; no retry per element.
	_, _ = s.Record(context.Background())
	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetcher called %d times after failure, want 1", got)
	}
}

func TestStore_Empty(t *testing.T) {
	s := Empty()
	rec, err := s.Record(context.Background())
	if err != nil {
		t.Fatalf("Record() error = %v, want nil", err)
	}
	if len(rec) != 0 {
		t.Errorf("Record() = %v, want empty record", rec)
	}
}
