// internal/document/deferred.go
package document

import (
	"sync"

	"github.com/NickGaultney/elementor-logic-controls/internal/rules"
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Deferred document pass.
 *
 * For deployments where submission data is not available at render time, each
 * element's rule compiles to a closure over (record, hide, show). Closures
 * are batched at render time and executed when the data-ready signal fires.
 *
 * Isolation invariants:
 *   - Each closure's hide/show capability is bound to its own element ID; a
 *     closure cannot affect a sibling's outcome.
 *   - A fault inside one closure (parse failure or panic) never prevents the
 *     remaining closures from running; the faulting element resolves per the
 *     fail-open policy.
 *   - The batch runs at most once: the signal is consumed exactly once and
 *     later fires are ignored.
 */

// Outcome is one element's resolved decision from a deferred run.
type Outcome struct {
	ID       types.ElementID
	Decision types.Decision
}

// closure is one element's compiled rule, bound to that element only.
type closure struct {
	id  types.ElementID
	run func(rec types.SubmissionRecord, hide, show func())
}

// Batch is a set of per-element closures awaiting the data-ready signal.
type Batch struct {
	closures []closure

	once     sync.Once
	outcomes []Outcome
}

// CompileBatch walks the tree and builds one closure per ruled element.
// Elements without a rule are unconditionally visible and compile to nothing.
// Rule text is parsed inside the closure so a malformed rule faults at run
// time, where it is isolated, rather than failing the whole batch.
func CompileBatch(root *Element) *Batch {
	b := &Batch{}
	root.Walk(func(e *Element) {
		if e.Rule == nil {
			return
		}
		rule := *e.Rule
		b.closures = append(b.closures, closure{
			id: e.ID,
			run: func(rec types.SubmissionRecord, hide, show func()) {
				switch rules.Decide(rule, rec) {
				case types.DecisionHide:
					hide()
				case types.DecisionShow:
					show()
				default:
					// Evaluation fault: invoke neither capability so the
					// outcome stays the error decision and resolves to
					// visible only through the fail policy.
				}
			},
		})
	})
	return b
}

// Len returns the number of compiled closures.
func (b *Batch) Len() int {
	return len(b.closures)
}

// Run executes every closure synchronously against the record and returns
// each element's outcome. Only the first call runs; subsequent calls return
// the outcomes of the first (at-most-once, matching the one data-ready fire).
func (b *Batch) Run(rec types.SubmissionRecord) []Outcome {
	b.once.Do(func() {
		b.outcomes = make([]Outcome, 0, len(b.closures))
		for _, c := range b.closures {
			b.outcomes = append(b.outcomes, runIsolated(c, rec))
		}
	})
	return b.outcomes
}

// runIsolated executes one closure, converting a panic into an evaluation
// error so a faulting element cannot take its siblings down.
func runIsolated(c closure, rec types.SubmissionRecord) (out Outcome) {
	out = Outcome{ID: c.id, Decision: types.DecisionError}
	defer func() {
		recover() // fault stays with this element; outcome remains the error decision
	}()

	decision := types.DecisionError
	c.run(rec,
		func() { decision = types.DecisionHide },
		func() { decision = types.DecisionShow },
	)
	out.Decision = decision
	return out
}

// Signal delivers the submission record once data is ready.
// Fire is idempotent: only the first record is delivered.
type Signal struct {
	ch   chan types.SubmissionRecord
	once sync.Once
}

// NewSignal creates an unfired data-ready signal.
func NewSignal() *Signal {
	return &Signal{ch: make(chan types.SubmissionRecord, 1)}
}

// Fire publishes the record. Later calls are ignored.
func (s *Signal) Fire(rec types.SubmissionRecord) {
	s.once.Do(func() {
		s.ch <- rec
		close(s.ch)
	})
}

// Bind subscribes the batch to the signal exactly once: when the signal
// fires, all closures run synchronously on the receiving goroutine and the
// outcomes are passed to apply. Bind blocks until the signal fires.
func (b *Batch) Bind(s *Signal, apply func([]Outcome)) {
	rec, ok := <-s.ch
	if !ok {
		return
	}
	apply(b.Run(rec))
}
