// Package fields exposes form field metadata to the authoring surface.
//
// The provider flattens the form backend's nested field definition into the
// flat key -> descriptor mapping the builder consumes. It plays no part in
// evaluation: a record field the metadata does not know about still
// evaluates normally.
package fields

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

// Form is one selectable form of the backend.
type Form struct {
	ID    types.FormID `json:"id"`
	Title string       `json:"title"`
}

// Source lists forms and their flattened fields.
type Source interface {
	Forms(ctx context.Context) ([]Form, error)
	Fields(ctx context.Context, formID types.FormID) ([]types.FieldDescriptor, error)
}

// ignoredElements are non-data element types excluded from the field list.
var ignoredElements = map[string]bool{
	"custom_html":             true,
	"form_step":               true,
	"additional_info_field":   true,
	"additional_info_scripts": true,
	"section_break":           true,
}

// elementTypes maps the backend's element names to field types. Unlisted
// elements default to text, which gets the safe scalar operator set.
var elementTypes = map[string]types.FieldType{
	"input_text":     types.FieldTypeText,
	"input_textarea": types.FieldTypeTextarea,
	"input_number":   types.FieldTypeNumber,
	"input_email":    types.FieldTypeText,
	"input_url":      types.FieldTypeText,
	"input_date":     types.FieldTypeText,
	"select":         types.FieldTypeSelect,
	"input_radio":    types.FieldTypeRadio,
	"input_checkbox": types.FieldTypeCheckbox,
	"multi_select":   types.FieldTypeMultiSelect,
	"input_hidden":   types.FieldTypeHidden,
}

// rawField is the backend's field definition shape.
type rawField struct {
	Element    string `json:"element"`
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
	Settings struct {
		Label           string `json:"label"`
		AdvancedOptions []struct {
			Label string `json:"label"`
			Value string `json:"value"`
		} `json:"advanced_options"`
	} `json:"settings"`
	Columns []struct {
		Fields []rawField `json:"fields"`
	} `json:"columns"`
}

// rawForm is the top-level field definition document.
type rawForm struct {
	Fields []rawField `json:"fields"`
}

// ParseFieldJSON flattens a form's field definition document into ordered
// descriptors. Containers are flattened recursively, ignored element types
// are dropped, and hidden inputs are kept with an empty label.
func ParseFieldJSON(data []byte) ([]types.FieldDescriptor, error) {
	var form rawForm
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("decode form fields: %w", err)
	}
	return flatten(form.Fields), nil
}

// flatten walks the field list in order, recursing into container columns.
func flatten(raw []rawField) []types.FieldDescriptor {
	var out []types.FieldDescriptor

	for _, f := range raw {
		if ignoredElements[f.Element] {
			continue
		}

		if f.Element == "container" {
			for _, col := range f.Columns {
				out = append(out, flatten(col.Fields)...)
			}
			continue
		}

		if f.Attributes.Name == "" {
			continue
		}

		fieldType, ok := elementTypes[f.Element]
		if !ok {
			fieldType = types.FieldTypeText
		}

		label := f.Settings.Label
		if fieldType == types.FieldTypeHidden {
			// Hidden inputs carry no label by definition.
			label = ""
		} else if label == "" {
			// Regular fields without a label are not authorable.
			continue
		}

		desc := types.FieldDescriptor{
			Key:   f.Attributes.Name,
			Label: label,
			Type:  fieldType,
		}
		for _, opt := range f.Settings.AdvancedOptions {
			desc.Options = append(desc.Options, types.Option{Value: opt.Value, Label: opt.Label})
		}
		out = append(out, desc)
	}

	return out
}
