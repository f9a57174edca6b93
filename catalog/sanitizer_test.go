package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		t.Fatalf("bad fixture %s: %v", raw, err)
	}
	return payload
}

func TestSanitizeMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"nil payload", nil},
		{"string payload", "medicines"},
		{"number payload", 42.0},
		{"array payload", []any{map[string]any{"name": "Aspirin"}}},
		{"medicines missing", decode(t, `{"items":[]}`)},
		{"medicines null", decode(t, `{"medicines":null}`)},
		{"medicines object", decode(t, `{"medicines":{"name":"Aspirin"}}`)},
		{"medicines string", decode(t, `{"medicines":"Aspirin"}`)},
		{"medicines number", decode(t, `{"medicines":3}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.payload)
			if got == nil {
				t.Fatal("Sanitize must never return nil")
			}
			if len(got) != 0 {
				t.Errorf("Expected empty list, got %d records", len(got))
			}

			table := Render(got)
			if !table.Empty || len(table.Rows) != 0 {
				t.Errorf("Expected empty table, got %+v", table)
			}
		})
	}
}

func TestSanitizeKeepsRecordsAsIs(t *testing.T) {
	payload := decode(t, `{"medicines":[{"name":"Aspirin","price":5}, 7, null, "x"]}`)

	got := Sanitize(payload)
	if len(got) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(got))
	}
	if got[1] != json.Number("7") || got[2] != nil || got[3] != "x" {
		t.Errorf("Records should be passed through untouched, got %#v", got)
	}
}
