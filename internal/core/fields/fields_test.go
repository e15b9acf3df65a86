// internal/core/fields/fields_test.go
package fields

import (
	"testing"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

const fixtureForm = `{
  "fields": [
    {
      "element": "input_text",
      "attributes": {"name": "full_name"},
      "settings": {"label": "Full Name"}
    },
    {
      "element": "section_break",
      "attributes": {"name": "divider"},
      "settings": {"label": "Divider"}
    },
    {
      "element": "container",
      "columns": [
        {
          "fields": [
            {
              "element": "select",
              "attributes": {"name": "country"},
              "settings": {
                "label": "Country",
                "advanced_options": [
                  {"label": "United States", "value": "US"},
                  {"label": "United Kingdom", "value": "UK"}
                ]
              }
            },
            {
              "element": "container",
              "columns": [
                {
                  "fields": [
                    {
                      "element": "input_checkbox",
                      "attributes": {"name": "interests"},
                      "settings": {"label": "Interests"}
                    }
                  ]
                }
              ]
            }
          ]
        },
        {
          "fields": [
            {
              "element": "custom_html",
              "attributes": {"name": "blurb"},
              "settings": {"label": "Blurb"}
            }
          ]
        }
      ]
    },
    {
      "element": "input_hidden",
      "attributes": {"name": "campaign"},
      "settings": {"label": "should be dropped"}
    },
    {
      "element": "input_text",
      "attributes": {"name": ""},
      "settings": {"label": "Nameless"}
    }
  ]
}`

func TestParseFieldJSON_Flattening(t *testing.T) {
	fields, err := ParseFieldJSON([]byte(fixtureForm))
	if err != nil {
		t.Fatalf("ParseFieldJSON() error = %v, want nil", err)
	}

	wantKeys := []string{"full_name", "country", "interests", "campaign"}
	if len(fields) != len(wantKeys) {
		t.Fatalf("got %d fields %v, want %d", len(fields), fields, len(wantKeys))
	}
	for i, key := range wantKeys {
		if fields[i].Key != key {
			t.Errorf("fields[%d].Key = %q, want %q (order must follow the document)", i, fields[i].Key, key)
		}
	}
}

func TestParseFieldJSON_Types(t *testing.T) {
	fields, err := ParseFieldJSON([]byte(fixtureForm))
	if err != nil {
		t.Fatalf("ParseFieldJSON() error = %v", err)
	}

	byKey := map[string]types.FieldDescriptor{}
	for _, f := range fields {
		byKey[f.Key] = f
	}

	if got := byKey["full_name"].Type; got != types.FieldTypeText {
		t.Errorf("full_name type = %v, want text", got)
	}
	if got := byKey["country"].Type; got != types.FieldTypeSelect {
		t.Errorf("country type = %v, want select", got)
	}
	if got := byKey["interests"].Type; got != types.FieldTypeCheckbox {
		t.Errorf("interests type = %v, want checkbox", got)
	}
	if got := byKey["campaign"].Type; got != types.FieldTypeHidden {
		t.Errorf("campaign type = %v, want hidden", got)
	}
}

func TestParseFieldJSON_HiddenLabelEmpty(t *testing.T) {
	fields, err := ParseFieldJSON([]byte(fixtureForm))
	if err != nil {
		t.Fatalf("ParseFieldJSON() error = %v", err)
	}
	for _, f := range fields {
		if f.Key == "campaign" && f.Label != "" {
			t.Errorf("hidden input label = %q, want empty", f.Label)
		}
	}
}

func TestParseFieldJSON_Options(t *testing.T) {
	fields, err := ParseFieldJSON([]byte(fixtureForm))
	if err != nil {
		t.Fatalf("ParseFieldJSON() error = %v", err)
	}
	for _, f := range fields {
		if f.Key != "country" {
			continue
		}
		if len(f.Options) != 2 {
			t.Fatalf("country has %d options, want 2", len(f.Options))
		}
		if f.Options[0].Value != "US" || f.Options[0].Label != "United States" {
			t.Errorf("country option[0] = %+v, want US/United States", f.Options[0])
		}
	}
}

func TestParseFieldJSON_Denylist(t *testing.T) {
	fields, err := ParseFieldJSON([]byte(fixtureForm))
	if err != nil {
		t.Fatalf("ParseFieldJSON() error = %v", err)
	}
	for _, f := range fields {
		if f.Key == "divider" || f.Key == "blurb" {
			t.Errorf("denylisted element %q survived flattening", f.Key)
		}
	}
}

func TestParseFieldJSON_BadDocument(t *testing.T) {
	if _, err := ParseFieldJSON([]byte("{not json")); err == nil {
		t.Errorf("ParseFieldJSON(bad) error = nil, want error")
	}
}
