// internal/rules/compile.go
package rules

import (
	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Rule compilation.
 *
 * Compiles a structural RuleExpression into a CompiledRule ready for
 * evaluation. Compilation validates the closed operator set and the resource
 * limits, and drops incomplete conditions and the groups they leave empty.
 *
 * Why compile-time validation: enforcing limits and operator membership here
 * moves error detection to authoring time rather than render time. The
 * evaluator can then be total: every predicate is defined for every record.
 *
 * The compiled form is a two-level node tree matching the expression
 * structure (inter-group operator over intra-group operators over
 * conditions). The parser produces the same node type from rule text, so a
 * rule evaluates identically whether it arrived structurally from the
 * builder or textually from storage.
 */

// node is one evaluable vertex of a compiled rule.
type node interface {
	eval(rec types.SubmissionRecord) bool
}

// condNode evaluates a single validated condition.
type condNode struct {
	cond types.Condition
}

func (n condNode) eval(rec types.SubmissionRecord) bool {
	c := n.cond
	switch c.Operator {
	case types.OpEquals:
		return Equals(rec, c.Field, c.Value)
	case types.OpNotEquals:
		return NotEquals(rec, c.Field, c.Value)
	case types.OpContains:
		return Contains(rec, c.Field, c.ValueSet()...)
	case types.OpNotContains:
		return NotContains(rec, c.Field, c.ValueSet()...)
	case types.OpIsEmpty:
		return IsEmpty(rec, c.Field)
	case types.OpNotEmpty:
		return NotEmpty(rec, c.Field)
	default:
		// Unreachable: compile and parse reject unknown operators.
		return false
	}
}

// boolNode combines child nodes with short-circuit AND/OR semantics.
type boolNode struct {
	op   types.BoolOp
	kids []node
}

func (n boolNode) eval(rec types.SubmissionRecord) bool {
	if n.op == types.BoolOr {
		for _, k := range n.kids {
			if k.eval(rec) {
				return true
			}
		}
		return false
	}
	for _, k := range n.kids {
		if !k.eval(rec) {
			return false
		}
	}
	return true
}

// CompiledRule is a validated, evaluable visibility rule.
// The zero value is the empty rule, which always evaluates true (visible).
type CompiledRule struct {
	root node
}

// Empty reports whether the rule carries no conditions at all.
func (r *CompiledRule) Empty() bool {
	return r == nil || r.root == nil
}

// Eval evaluates the rule against a submission record.
// Pure function of its inputs: no shared state, safe for concurrent use.
// The empty rule is true, matching "no rule means always visible".
func (r *CompiledRule) Eval(rec types.SubmissionRecord) bool {
	if r.Empty() {
		return true
	}
	return r.root.eval(rec)
}

// Compile validates and pre-processes an expression for evaluation.
// Incomplete conditions are dropped; groups left without conditions are
// dropped; an expression left without groups compiles to the empty rule.
func Compile(expr types.RuleExpression) (*CompiledRule, error) {
	if len(expr.Groups) > types.MaxGroupsPerRule {
		return nil, types.ErrTooManyGroups
	}

	groups := make([]node, 0, len(expr.Groups))
	for _, g := range expr.Groups {
		if len(g.Conditions) > types.MaxConditionsPerGroup {
			return nil, types.ErrTooManyConditions
		}

		kids := make([]node, 0, len(g.Conditions))
		for _, c := range g.Conditions {
			if !c.Complete() {
				continue
			}
			if err := validateCondition(c); err != nil {
				return nil, err
			}
			kids = append(kids, condNode{cond: c})
		}
		if len(kids) == 0 {
			continue
		}
		groups = append(groups, boolNode{op: normalizeOp(g.Operator), kids: kids})
	}

	if len(groups) == 0 {
		return &CompiledRule{}, nil
	}
	return &CompiledRule{root: boolNode{op: normalizeOp(expr.Operator), kids: groups}}, nil
}

// validateCondition checks operator membership and value-list limits.
func validateCondition(c types.Condition) error {
	switch c.Operator {
	case types.OpEquals, types.OpNotEquals, types.OpIsEmpty, types.OpNotEmpty:
		return nil
	case types.OpContains, types.OpNotContains:
		if len(c.ValueSet()) > types.MaxContainsValues {
			return types.ErrTooManyValues
		}
		return nil
	default:
		return types.ErrUnknownOperator
	}
}

// normalizeOp defaults an unset combinator to AND, the builder's default.
func normalizeOp(op types.BoolOp) types.BoolOp {
	if op == types.BoolOr {
		return types.BoolOr
	}
	return types.BoolAnd
}
