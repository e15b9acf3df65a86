// Package builder assembles visibility rules from field/operator/value
// triples, restricted by the field metadata of one form.
//
// The builder is strictly a convenience front-end over the same expression
// grammar the engine evaluates: its only output is a RuleExpression and the
// canonical text the renderer makes of it. It never evaluates anything.
package builder

import (
	"fmt"

	"github.com/NickGaultney/elementor-logic-controls/internal/rules"
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Operator legality.
 *
 * One consistent mapping, fixed here and enforced on every added condition:
 *
 *   scalar-rendering fields (text, select, radio, hidden, ...)
 *       -> equals, not_equals
 *   multi-value fields (checkbox, multi-select)
 *       -> contains, not_contains, is_empty, not_empty
 *
 * Emptiness stays with the multi-value family because the predicate library
 * defines emptiness over list answers; on a scalar field is_empty is
 * constant and useless to an author.
 */

// scalarOperators and multiOperators are the legal sets per field family.
var (
	scalarOperators = []types.Operator{
		types.OpEquals,
		types.OpNotEquals,
	}
	multiOperators = []types.Operator{
		types.OpContains,
		types.OpNotContains,
		types.OpIsEmpty,
		types.OpNotEmpty,
	}
)

// OperatorsFor returns the legal operator set for a field type.
func OperatorsFor(t types.FieldType) []types.Operator {
	if t.MultiValued() {
		return multiOperators
	}
	return scalarOperators
}

// Builder accumulates condition groups for one form's rule.
// Not safe for concurrent use; one builder serves one authoring session.
type Builder struct {
	fields  map[string]types.FieldDescriptor
	groups  []types.ConditionGroup
	interOp types.BoolOp
}

// New creates a builder over the form's field metadata.
// The outer combinator defaults to AND.
func New(fields []types.FieldDescriptor) *Builder {
	byKey := make(map[string]types.FieldDescriptor, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f
	}
	return &Builder{
		fields:  byKey,
		interOp: types.BoolAnd,
	}
}

// SetInterOp sets the combinator joining groups.
func (b *Builder) SetInterOp(op types.BoolOp) {
	b.interOp = op
}

// AddGroup appends an empty condition group with the given intra-group
// combinator and returns its index.
func (b *Builder) AddGroup(op types.BoolOp) int {
	b.groups = append(b.groups, types.ConditionGroup{Operator: op})
	return len(b.groups) - 1
}

// AddCondition appends a condition to a group after checking that the field
// exists and the operator is legal for its type.
func (b *Builder) AddCondition(group int, c types.Condition) error {
	if group < 0 || group >= len(b.groups) {
		return fmt.Errorf("no such group %d", group)
	}
	if len(b.groups) > types.MaxGroupsPerRule {
		return types.ErrTooManyGroups
	}
	if len(b.groups[group].Conditions) >= types.MaxConditionsPerGroup {
		return types.ErrTooManyConditions
	}

	field, ok := b.fields[c.Field]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrUnknownField, c.Field)
	}
	if !operatorAllowed(field.Type, c.Operator) {
		return fmt.Errorf("%w: %s on %s field %s", types.ErrOperatorNotAllowed, c.Operator, field.Type, c.Field)
	}
	if len(c.ValueSet()) > types.MaxContainsValues {
		return types.ErrTooManyValues
	}

	b.groups[group].Conditions = append(b.groups[group].Conditions, c)
	return nil
}

// Expression returns the assembled expression. Incomplete conditions and
// empty groups survive here untouched; the renderer and compiler omit them.
func (b *Builder) Expression() types.RuleExpression {
	groups := make([]types.ConditionGroup, len(b.groups))
	copy(groups, b.groups)
	return types.RuleExpression{
		Operator: b.interOp,
		Groups:   groups,
	}
}

// Render returns the canonical rule text for the current state.
func (b *Builder) Render() string {
	return rules.Render(b.Expression())
}

// operatorAllowed checks membership in the field family's legal set.
func operatorAllowed(t types.FieldType, op types.Operator) bool {
	for _, allowed := range OperatorsFor(t) {
		if op == allowed {
			return true
		}
	}
	return false
}
