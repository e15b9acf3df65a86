// Package types provides domain models shared across logic-controls components.
//
// Zero-dependency design: types.go, rules.go and errors.go use only
// encoding/json so the evaluation core stays embeddable. ID utilities in
// ids.go import uuid but are isolated for selective inclusion.
package types

import (
	"encoding/json"
	"strconv"
)

// EntryID identifies one form submission entry.
// String alias enables type safety while maintaining JSON string serialization.
type EntryID string

// FormID identifies one logical form.
type FormID string

// PageID identifies one rendered page (a tree of elements).
type PageID string

// FieldValue is one submitted answer: either a scalar (text input, single
// select) or an ordered list of scalars (checkbox, multi-select).
// The zero value is a scalar empty string.
type FieldValue struct {
	Text  string   // scalar answer (valid when !Multi)
	List  []string // multi-value answer (valid when Multi)
	Multi bool     // true when List is the authoritative form
}

// Scalar constructs a scalar field value.
func Scalar(s string) FieldValue {
	return FieldValue{Text: s}
}

// Multi constructs a multi-value field value.
func Multi(vs ...string) FieldValue {
	return FieldValue{List: vs, Multi: true}
}

// UnmarshalJSON accepts the flat answer forms produced by form backends:
// JSON strings, numbers and booleans become scalars; JSON arrays become
// multi-value answers with each element stringified; null becomes an empty
// scalar.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = FieldValue{}
	case []any:
		list := make([]string, 0, len(x))
		for _, elem := range x {
			list = append(list, stringify(elem))
		}
		*v = FieldValue{List: list, Multi: true}
	default:
		*v = FieldValue{Text: stringify(x)}
	}
	return nil
}

// MarshalJSON emits the list form for multi-value answers and a plain string
// otherwise, mirroring the accepted input shapes.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.Multi {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Text)
}

// stringify renders a decoded JSON scalar as its string comparison form.
// Numbers use the shortest round-trip representation so 2 and 2.0 both
// compare as "2".
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// SubmissionRecord is the resolved field-key to answer mapping for one form
// entry. It is populated at most once per evaluation pass and never mutated
// thereafter; all predicate functions treat it as read-only.
type SubmissionRecord map[string]FieldValue

// Resource limits enforced at rule compile time to keep evaluation bounded.
const (
	// MaxGroupsPerRule limits the outer OR/AND composition width.
	// 16 groups covers every builder-generated rule with margin.
	MaxGroupsPerRule = 16

	// MaxConditionsPerGroup limits intra-group composition width.
	MaxConditionsPerGroup = 32

	// MaxContainsValues limits the value list of contains/not_contains.
	// Keeps per-condition comparison cost linear and small.
	MaxContainsValues = 16

	// MaxRuleTextLength bounds the textual rule accepted by the parser.
	// 8KB is far beyond any builder-generated rule.
	MaxRuleTextLength = 8 * 1024

	// MaxElementsPerPage bounds one document pass.
	MaxElementsPerPage = 512
)
