// internal/rules/predicates.go
package rules

import (
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Predicate library.
 *
 * Pure boolean tests over one field of a SubmissionRecord. Predicates never
 * return errors: an absent or type-mismatched field resolves to the defined
 * boolean below, which keeps the visibility evaluator total.
 *
 * Semantics:
 *   - Equals/NotEquals operate on scalar answers. A multi-value or absent
 *     field never equals anything, so NotEquals is true for it.
 *   - Contains/NotContains operate on multi-value answers only. Both require
 *     the field to exist and be list-typed; NotContains is therefore not the
 *     plain negation of Contains (both are false for a scalar field).
 *   - IsEmpty/NotEmpty test multi-value answers: a field is empty when it is
 *     absent, not list-typed, or an empty list. IsEmpty and NotEmpty are
 *     exact complements.
 */

// Equals reports whether field resolves to a scalar that matches value
// exactly (case-sensitive).
func Equals(rec types.SubmissionRecord, field, value string) bool {
	v, ok := rec[field]
	return ok && !v.Multi && v.Text == value
}

// NotEquals is the negation of Equals.
func NotEquals(rec types.SubmissionRecord, field, value string) bool {
	return !Equals(rec, field, value)
}

// Contains reports whether field resolves to a list whose intersection with
// values is non-empty.
func Contains(rec types.SubmissionRecord, field string, values ...string) bool {
	v, ok := rec[field]
	return ok && v.Multi && intersects(v.List, values)
}

// NotContains reports whether field resolves to a list whose intersection
// with values is empty. The field must still exist and be list-typed.
func NotContains(rec types.SubmissionRecord, field string, values ...string) bool {
	v, ok := rec[field]
	return ok && v.Multi && !intersects(v.List, values)
}

// IsEmpty reports whether field is absent, not list-typed, or an empty list.
func IsEmpty(rec types.SubmissionRecord, field string) bool {
	v, ok := rec[field]
	return !ok || !v.Multi || len(v.List) == 0
}

// NotEmpty reports whether field exists, is list-typed, and is non-empty.
// Exact complement of IsEmpty.
func NotEmpty(rec types.SubmissionRecord, field string) bool {
	v, ok := rec[field]
	return ok && v.Multi && len(v.List) > 0
}

// intersects reports whether the two string slices share any element.
// Linear scan: both sides are bounded by MaxContainsValues and typical
// checkbox answer counts, so a set build would cost more than it saves.
func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
