// internal/rules/evaluate.go
package rules

import (
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Visibility evaluation.
 *
 * Turns one element's rule into a tri-state decision against the submission
 * record:
 *
 *   1. Rule disabled or empty       -> Show (no rule means always visible)
 *   2. Expression true              -> Show
 *   3. Expression false             -> Hide
 *   4. Parse or compile fault       -> EvaluationError
 *
 * EvaluationError resolves to visible at the document pass (fail-open,
 * Decision.Visible): a broken rule must never hide content the author put on
 * the page. The historical implementations flipped between fail-open and
 * fail-closed; this engine fixes fail-open everywhere.
 *
 * Decide is a pure function of (ElementRule, SubmissionRecord). It mutates
 * nothing and is safe to invoke concurrently for every element of a page;
 * elements have no ordering dependency on each other.
 */

// Decide evaluates one element rule against the record per the state machine
// above. Boolean evaluation short-circuits: AND stops at the first false
// condition, OR at the first true one, at both composition levels.
func Decide(rule types.ElementRule, rec types.SubmissionRecord) types.Decision {
	if !rule.Enabled {
		return types.DecisionShow
	}

	compiled, err := Parse(rule.Source)
	if err != nil {
		return types.DecisionError
	}
	return DecideCompiled(compiled, rec)
}

// DecideCompiled applies the decision states to an already-compiled rule.
// Callers that compile once and evaluate per-pass (the deferred document
// strategy) use this to skip re-parsing.
func DecideCompiled(rule *CompiledRule, rec types.SubmissionRecord) types.Decision {
	if rule.Empty() {
		return types.DecisionShow
	}
	if rule.Eval(rec) {
		return types.DecisionShow
	}
	return types.DecisionHide
}
