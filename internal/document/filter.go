// internal/document/filter.go
package document

import (
	"github.com/NickGaultney/elementor-logic-controls/internal/rules"
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Server-side document pass.
 *
 * Two phases with a barrier between them:
 *
 *   1. Decide: evaluate every element's rule against the fully-loaded
 *      submission record and collect a decision per element. All elements
 *      are decided, including those nested under elements that will be
 *      removed; decisions have no ordering dependency on each other.
 *   2. Remove: rebuild the tree without hidden subtrees. A hidden element is
 *      excised entirely, children included, so nothing of it reaches the
 *      output. Removed subtrees are never visited again.
 *
 * The removal phase runs strictly after every decision is known. It operates
 * on the assembled tree, not per-element renders: an element's hide decision
 * is only final once its rule has seen the full record.
 *
 * Decisions resolve per the fail-open policy: EvaluationError keeps the
 * element (Decision.Visible).
 */

// Result is the outcome of one server-side pass.
type Result struct {
	Root      *Element                           // filtered tree (nil if the root itself hid)
	Decisions map[types.ElementID]types.Decision // every element's decision, removed ones included
}

// Filter decides every element and returns the tree with hidden subtrees
// structurally removed. The input tree and record are not mutated.
func Filter(root *Element, rec types.SubmissionRecord) (Result, error) {
	if root.Count() > types.MaxElementsPerPage {
		return Result{}, types.ErrTooManyElements
	}

	decisions := make(map[types.ElementID]types.Decision)

	// Phase 1: decide everything. Evaluation is pure, so order is free.
	root.Walk(func(e *Element) {
		decisions[e.ID] = decide(e, rec)
	})

	// Phase 2: rebuild without hidden subtrees.
	return Result{
		Root:      prune(root, decisions),
		Decisions: decisions,
	}, nil
}

// decide maps one element to its decision; elements without a rule show.
func decide(e *Element, rec types.SubmissionRecord) types.Decision {
	if e.Rule == nil {
		return types.DecisionShow
	}
	return rules.Decide(*e.Rule, rec)
}

// prune copies the subtree, dropping any element whose decision resolved to
// hidden. Children of a dropped element are not visited.
func prune(e *Element, decisions map[types.ElementID]types.Decision) *Element {
	if !decisions[e.ID].Visible() {
		return nil
	}

	out := &Element{ID: e.ID, Kind: e.Kind, Rule: e.Rule}
	for _, c := range e.Children {
		if kept := prune(c, decisions); kept != nil {
			out.Children = append(out.Children, kept)
		}
	}
	return out
}
