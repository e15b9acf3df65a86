// internal/rules/render.go
package rules

import (
	"strings"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Rule text renderer.
 *
 * Renders a structural RuleExpression to the textual micro-grammar the
 * parser understands:
 *
 *   s('field') === "value"          equals
 *   s('field') !== "value"          not_equals
 *   contains('field', "a", "b")     contains
 *   not_contains('field', "a")      not_contains
 *   is_empty('field')               is_empty
 *   not_empty('field')              not_empty
 *
 * Conditions join with && or || inside a group; a group with more than one
 * condition is parenthesized; the whole expression is parenthesized when it
 * has more than one group. Single-condition groups drop their parentheses,
 * so re-parsing does not reproduce the identical structure, only an
 * expression that evaluates identically (the round-trip law the tests pin).
 *
 * Rendering is deterministic: same expression in, same text out. Incomplete
 * conditions are omitted, as are groups they leave empty; an expression left
 * without groups renders as the empty string.
 */

// Render produces the canonical textual form of an expression.
func Render(expr types.RuleExpression) string {
	groups := make([]string, 0, len(expr.Groups))
	for _, g := range expr.Groups {
		if text := renderGroup(g); text != "" {
			groups = append(groups, text)
		}
	}

	switch len(groups) {
	case 0:
		return ""
	case 1:
		return groups[0]
	default:
		return "(" + strings.Join(groups, renderBoolOp(expr.Operator)) + ")"
	}
}

// renderGroup renders one condition group, omitting incomplete conditions.
func renderGroup(g types.ConditionGroup) string {
	conds := make([]string, 0, len(g.Conditions))
	for _, c := range g.Conditions {
		if !c.Complete() {
			continue
		}
		// An operator outside the closed set renders as nothing; skip it
		// rather than joining an empty operand into the group text.
		text := renderCondition(c)
		if text == "" {
			continue
		}
		conds = append(conds, text)
	}

	switch len(conds) {
	case 0:
		return ""
	case 1:
		return conds[0]
	default:
		return "(" + strings.Join(conds, renderBoolOp(g.Operator)) + ")"
	}
}

// renderCondition maps one condition to its exact textual predicate form.
// Unknown operators render as the empty string; Compile rejects them before
// any caller that round-trips through text can reach this.
func renderCondition(c types.Condition) string {
	field := quoteSingle(c.Field)
	switch c.Operator {
	case types.OpEquals:
		return "s(" + field + ") === " + quoteDouble(c.Value)
	case types.OpNotEquals:
		return "s(" + field + ") !== " + quoteDouble(c.Value)
	case types.OpContains:
		return renderCall("contains", field, c.ValueSet())
	case types.OpNotContains:
		return renderCall("not_contains", field, c.ValueSet())
	case types.OpIsEmpty:
		return "is_empty(" + field + ")"
	case types.OpNotEmpty:
		return "not_empty(" + field + ")"
	default:
		return ""
	}
}

// renderCall renders a membership predicate call with its value list.
func renderCall(name, field string, values []string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString("(")
	b.WriteString(field)
	for _, v := range values {
		b.WriteString(", ")
		b.WriteString(quoteDouble(v))
	}
	b.WriteString(")")
	return b.String()
}

// renderBoolOp renders the combinator with its surrounding spaces.
func renderBoolOp(op types.BoolOp) string {
	if op == types.BoolOr {
		return " || "
	}
	return " && "
}

// quoteSingle wraps a field key in single quotes, escaping backslash and
// the quote character.
func quoteSingle(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\\' || r == '\'' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

// quoteDouble wraps a comparison value in double quotes, escaping backslash
// and the quote character.
func quoteDouble(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
