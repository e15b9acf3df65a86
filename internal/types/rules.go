// internal/types/rules.go
package types

/*
 * Domain types for visibility rules.
 *
 * Provides Condition, ConditionGroup, RuleExpression and ElementRule used by
 * internal/rules for compilation, rendering and evaluation, plus the
 * FieldDescriptor metadata consumed by the builder. These types are
 * storage-format agnostic: the rule text stored alongside an element is
 * produced by the renderer and recovered by the parser.
 *
 * Structure mirrors how rules are authored: an expression is an ordered
 * sequence of condition groups joined by one inter-group operator; each group
 * is an ordered sequence of conditions joined by one intra-group operator.
 * Groups never nest further; the builder cannot express deeper trees and the
 * evaluator does not need them.
 */

// Operator is a named boolean test over one submission field.
type Operator string

// The closed operator set. Equals/NotEquals compare scalar answers;
// Contains/NotContains and the emptiness tests apply to multi-value answers.
const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpIsEmpty     Operator = "is_empty"
	OpNotEmpty    Operator = "not_empty"
)

// BoolOp joins conditions within a group and groups within an expression.
type BoolOp string

// BoolAnd and BoolOr are the only combinators; there is no negation at the
// composition level (negation lives in the operator set).
const (
	BoolAnd BoolOp = "and"
	BoolOr  BoolOp = "or"
)

// Condition is a single field test.
// Value carries the comparison value for equals/not_equals; Values carries
// the value set for contains/not_contains. Emptiness tests use neither.
type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// Complete reports whether the condition carries enough information to take
// part in an expression. Incomplete conditions are silently omitted from
// rendering and compilation.
func (c Condition) Complete() bool {
	return c.Field != "" && c.Operator != ""
}

// ValueSet returns the comparison values for membership operators.
// A builder-authored condition carries a single Value; Values takes
// precedence when populated.
func (c Condition) ValueSet() []string {
	if len(c.Values) > 0 {
		return c.Values
	}
	if c.Value != "" {
		return []string{c.Value}
	}
	return nil
}

// ConditionGroup is an ordered sequence of conditions joined by one operator.
type ConditionGroup struct {
	Operator   BoolOp      `json:"operator"`
	Conditions []Condition `json:"conditions"`
}

// RuleExpression is an ordered sequence of groups joined by one operator.
type RuleExpression struct {
	Operator BoolOp           `json:"operator"`
	Groups   []ConditionGroup `json:"groups"`
}

// ElementRule attaches a visibility rule to one page element.
// Source holds the textual rule form; an empty source or Enabled=false means
// the element is always visible.
type ElementRule struct {
	ElementID ElementID `json:"element_id"`
	Enabled   bool      `json:"enabled"`
	Source    string    `json:"source"`
}

// Decision is the tri-state outcome of evaluating one element's rule.
// Computed fresh every pass; never cached across submissions.
type Decision int

// DecisionPending is the zero value before evaluation; the remaining states
// are terminal for one pass. An EvaluationError resolves to visible
// (fail-open): a broken rule must never hide authored content.
const (
	DecisionPending Decision = iota
	DecisionShow
	DecisionHide
	DecisionError
)

// String implements fmt.Stringer for diagnostics and logs.
func (d Decision) String() string {
	switch d {
	case DecisionShow:
		return "show"
	case DecisionHide:
		return "hide"
	case DecisionError:
		return "error"
	default:
		return "pending"
	}
}

// Visible resolves a decision to the final show/hide outcome, applying the
// fail-open policy to evaluation errors.
func (d Decision) Visible() bool {
	return d != DecisionHide
}

// FieldType classifies a form field for operator legality.
type FieldType string

// Field types as reported by the metadata provider. Checkbox and multi-select
// produce multi-value answers; everything else renders a scalar.
const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeSelect      FieldType = "select"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeMultiSelect FieldType = "multi_select"
	FieldTypeHidden      FieldType = "hidden"
)

// MultiValued reports whether answers for this field type are lists.
func (t FieldType) MultiValued() bool {
	return t == FieldTypeCheckbox || t == FieldTypeMultiSelect
}

// Option is one closed choice of a select/radio/checkbox field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDescriptor describes one form field for the authoring surface.
// Read-only to this core; it drives operator legality and value input shape,
// and plays no part in evaluation.
type FieldDescriptor struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`
	Options []Option  `json:"options,omitempty"`
}
