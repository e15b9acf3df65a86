// internal/rules/parse.go
package rules

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

/*
 * Rule text parser.
 *
 * Parses the textual micro-grammar produced by the renderer (and by the
 * authoring surface) back into an evaluable rule:
 *
 *   Expression := Or
 *   Or         := And ( "||" And )*
 *   And        := Term ( "&&" Term )*
 *   Term       := "(" Or ")" | Call
 *   Call       := Ident "(" SQString ( "," DQString )* ")" [ CmpOp DQString ]
 *
 * The grammar is more permissive than the renderer's output (it accepts
 * arbitrary nesting), which is what makes the round-trip law cheap: any text
 * the renderer can emit parses back into a tree that evaluates identically.
 *
 * Restricted by construction: the only callable names are the field accessor
 * s() and the closed predicate set. There is no way to reach host code from
 * a rule, which is the whole point of replacing script execution with this
 * parser.
 *
 * All parse-time failures wrap ErrMalformedRule (or the more specific
 * sentinel) so the evaluator can map any of them to an evaluation error.
 */

type ruleAST struct {
	Expr *orAST `parser:"@@"`
}

type orAST struct {
	First *andAST   `parser:"@@"`
	Rest  []*andAST `parser:"( OrOp @@ )*"`
}

type andAST struct {
	First *termAST   `parser:"@@"`
	Rest  []*termAST `parser:"( AndOp @@ )*"`
}

type termAST struct {
	Group *orAST   `parser:"'(' @@ ')'"`
	Call  *callAST `parser:"| @@"`
}

type callAST struct {
	Name  string   `parser:"@Ident"`
	Field string   `parser:"'(' @SQString"`
	Args  []string `parser:"( ',' @DQString )* ')'"`
	Op    string   `parser:"( @CmpOp"`
	Value string   `parser:"@DQString )?"`
}

var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "CmpOp", Pattern: `===|!==`},
	{Name: "AndOp", Pattern: `&&`},
	{Name: "OrOp", Pattern: `\|\|`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "SQString", Pattern: `'(?:\\.|[^'\\])*'`},
	{Name: "DQString", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Punct", Pattern: `[(),]`},
})

var ruleParser = participle.MustBuild[ruleAST](
	participle.Lexer(ruleLexer),
	participle.Elide("whitespace"),
)

// Parse compiles rule text into an evaluable rule.
// Empty or whitespace-only text is the empty rule (always visible).
func Parse(text string) (*CompiledRule, error) {
	if len(text) > types.MaxRuleTextLength {
		return nil, types.ErrRuleTooLong
	}
	if strings.TrimSpace(text) == "" {
		return &CompiledRule{}, nil
	}

	ast, err := ruleParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedRule, err)
	}

	root, err := buildOr(ast.Expr)
	if err != nil {
		return nil, err
	}
	return &CompiledRule{root: root}, nil
}

// buildOr converts an OR level, flattening single-child nodes.
func buildOr(a *orAST) (node, error) {
	kids := make([]node, 0, 1+len(a.Rest))
	first, err := buildAnd(a.First)
	if err != nil {
		return nil, err
	}
	kids = append(kids, first)
	for _, r := range a.Rest {
		n, err := buildAnd(r)
		if err != nil {
			return nil, err
		}
		kids = append(kids, n)
	}
	if len(kids) == 1 {
		return kids[0], nil
	}
	return boolNode{op: types.BoolOr, kids: kids}, nil
}

// buildAnd converts an AND level, flattening single-child nodes.
func buildAnd(a *andAST) (node, error) {
	kids := make([]node, 0, 1+len(a.Rest))
	first, err := buildTerm(a.First)
	if err != nil {
		return nil, err
	}
	kids = append(kids, first)
	for _, r := range a.Rest {
		n, err := buildTerm(r)
		if err != nil {
			return nil, err
		}
		kids = append(kids, n)
	}
	if len(kids) == 1 {
		return kids[0], nil
	}
	return boolNode{op: types.BoolAnd, kids: kids}, nil
}

func buildTerm(a *termAST) (node, error) {
	if a.Group != nil {
		return buildOr(a.Group)
	}
	return buildCall(a.Call)
}

// buildCall maps a parsed call to a validated condition node.
// The accessor form s('f') requires a comparison; predicate forms forbid one.
func buildCall(a *callAST) (node, error) {
	field, err := unquote(a.Field, '\'')
	if err != nil {
		return nil, err
	}

	if a.Name == "s" {
		if a.Op == "" {
			return nil, fmt.Errorf("%w: s(%q) without comparison", types.ErrMalformedRule, field)
		}
		if len(a.Args) > 0 {
			return nil, fmt.Errorf("%w: s() takes one field argument", types.ErrMalformedRule)
		}
		value, err := unquote(a.Value, '"')
		if err != nil {
			return nil, err
		}
		op := types.OpEquals
		if a.Op == "!==" {
			op = types.OpNotEquals
		}
		return condNode{cond: types.Condition{Field: field, Operator: op, Value: value}}, nil
	}

	if a.Op != "" {
		return nil, fmt.Errorf("%w: predicate %s cannot be compared", types.ErrMalformedRule, a.Name)
	}

	values := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		v, err := unquote(arg, '"')
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	var op types.Operator
	switch a.Name {
	case "contains":
		op = types.OpContains
	case "not_contains":
		op = types.OpNotContains
	case "is_empty":
		op = types.OpIsEmpty
	case "not_empty":
		op = types.OpNotEmpty
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownPredicate, a.Name)
	}

	switch op {
	case types.OpIsEmpty, types.OpNotEmpty:
		if len(values) > 0 {
			return nil, fmt.Errorf("%w: %s takes one field argument", types.ErrMalformedRule, a.Name)
		}
	default:
		if len(values) > types.MaxContainsValues {
			return nil, types.ErrTooManyValues
		}
	}

	return condNode{cond: types.Condition{Field: field, Operator: op, Values: values}}, nil
}

// unquote strips the surrounding quote character and resolves backslash
// escapes. The lexer guarantees well-formed literals; the checks here guard
// against direct calls with arbitrary input.
func unquote(s string, quote byte) (string, error) {
	if len(s) < 2 || s[0] != quote || s[len(s)-1] != quote {
		return "", fmt.Errorf("%w: bad string literal %s", types.ErrMalformedRule, s)
	}
	inner := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		b.WriteByte(inner[i])
	}
	return b.String(), nil
}
