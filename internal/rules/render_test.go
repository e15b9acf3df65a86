// internal/rules/render_test.go
package rules

import (
	"testing"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

func TestRender_SingleCondition(t *testing.T) {
	tests := []struct {
		name string
		cond types.Condition
		want string
	}{
		{
			name: "equals",
			cond: types.Condition{Field: "country", Operator: types.OpEquals, Value: "US"},
			want: `s('country') === "US"`,
		},
		{
			name: "not equals",
			cond: types.Condition{Field: "country", Operator: types.OpNotEquals, Value: "US"},
			want: `s('country') !== "US"`,
		},
		{
			name: "contains",
			cond: types.Condition{Field: "interests", Operator: types.OpContains, Values: []string{"a", "b"}},
			want: `contains('interests', "a", "b")`,
		},
		{
			name: "not contains single value",
			cond: types.Condition{Field: "interests", Operator: types.OpNotContains, Value: "c"},
			want: `not_contains('interests', "c")`,
		},
		{
			name: "is empty",
			cond: types.Condition{Field: "interests", Operator: types.OpIsEmpty},
			want: `is_empty('interests')`,
		},
		{
			name: "not empty",
			cond: types.Condition{Field: "interests", Operator: types.OpNotEmpty},
			want: `not_empty('interests')`,
		},
		{
			name: "value with quote escaped",
			cond: types.Condition{Field: "note", Operator: types.OpEquals, Value: `say "hi"`},
			want: `s('note') === "say \"hi\""`,
		},
		{
			name: "field with quote escaped",
			cond: types.Condition{Field: "it's", Operator: types.OpIsEmpty},
			want: `is_empty('it\'s')`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := types.RuleExpression{
				Operator: types.BoolAnd,
				Groups: []types.ConditionGroup{
					{Operator: types.BoolAnd, Conditions: []types.Condition{tt.cond}},
				},
			}
			if got := Render(expr); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_GroupComposition(t *testing.T) {
	// Group1 = [equals('a','1')] AND, Group2 = [equals('b','2'), equals('c','3')] OR, outer AND.
	expr := types.RuleExpression{
		Operator: types.BoolAnd,
		Groups: []types.ConditionGroup{
			{
				Operator: types.BoolAnd,
				Conditions: []types.Condition{
					{Field: "a", Operator: types.OpEquals, Value: "1"},
				},
			},
			{
				Operator: types.BoolOr,
				Conditions: []types.Condition{
					{Field: "b", Operator: types.OpEquals, Value: "2"},
					{Field: "c", Operator: types.OpEquals, Value: "3"},
				},
			},
		},
	}

	want := `(s('a') === "1" && (s('b') === "2" || s('c') === "3"))`
	if got := Render(expr); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_OmitsIncomplete(t *testing.T) {
	expr := types.RuleExpression{
		Operator: types.BoolAnd,
		Groups: []types.ConditionGroup{
			{
				Operator: types.BoolAnd,
				Conditions: []types.Condition{
					{Field: "", Operator: types.OpEquals, Value: "1"},  // no field
					{Field: "a", Operator: "", Value: "1"},             // no operator
					{Field: "a", Operator: types.OpEquals, Value: "1"}, // complete
				},
			},
			{
				// Group with only incomplete conditions is omitted entirely.
				Operator: types.BoolOr,
				Conditions: []types.Condition{
					{Field: "", Operator: types.OpEquals},
				},
			},
		},
	}

	want := `s('a') === "1"`
	if got := Render(expr); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_OmitsUnknownOperator(t *testing.T) {
	expr := types.RuleExpression{
		Operator: types.BoolAnd,
		Groups: []types.ConditionGroup{
			{
				Operator: types.BoolAnd,
				Conditions: []types.Condition{
					{Field: "a", Operator: "matches_regex", Value: ".*"},
					{Field: "a", Operator: types.OpEquals, Value: "1"},
				},
			},
			{
				// Group with only an unknown operator is omitted entirely.
				Operator: types.BoolOr,
				Conditions: []types.Condition{
					{Field: "b", Operator: "between", Value: "1"},
				},
			},
		},
	}

	// The unknown operator must not leave a dangling combinator like
	// "( && s('a') === \"1\")" behind.
	want := `s('a') === "1"`
	if got := Render(expr); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_EmptyExpression(t *testing.T) {
	if got := Render(types.RuleExpression{}); got != "" {
		t.Errorf("Render(empty) = %q, want empty string", got)
	}

	onlyIncomplete := types.RuleExpression{
		Groups: []types.ConditionGroup{
			{Conditions: []types.Condition{{Field: "x"}}},
		},
	}
	if got := Render(onlyIncomplete); got != "" {
		t.Errorf("Render(incomplete only) = %q, want empty string", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	expr := types.RuleExpression{
		Operator: types.BoolOr,
		Groups: []types.ConditionGroup{
			{Operator: types.BoolAnd, Conditions: []types.Condition{
				{Field: "a", Operator: types.OpEquals, Value: "1"},
				{Field: "b", Operator: types.OpNotEquals, Value: "2"},
			}},
			{Operator: types.BoolOr, Conditions: []types.Condition{
				{Field: "c", Operator: types.OpContains, Values: []string{"x", "y"}},
			}},
		},
	}

	first := Render(expr)
	for i := 0; i < 10; i++ {
		if got := Render(expr); got != first {
			t.Fatalf("Render() not deterministic: %q vs %q", got, first)
		}
	}
}
