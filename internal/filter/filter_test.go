// internal/filter/filter_test.go
package filter

import (
	"bytes"
	"testing"
)

func TestApply_EmptyExpression(t *testing.T) {
	data := map[string]interface{}{"name": "test"}
	result, err := Apply(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(map[string]interface{})["name"] != "test" {
		t.Error("empty expression should return data unchanged")
	}
}

func TestApply_SelectField(t *testing.T) {
	data := map[string]interface{}{"name": "test", "id": 123}
	result, err := Apply(data, ".name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "test" {
		t.Errorf("expected 'test', got %v", result)
	}
}

func TestApply_FilterArray(t *testing.T) {
	data := []interface{}{
		map[string]interface{}{"safety": "safe"},
		map[string]interface{}{"safety": "unsafe"},
	}
	result, err := Apply(data, `.[] | select(.safety == "safe")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := result.(map[string]interface{})
	if m["safety"] != "safe" {
		t.Errorf("expected safety 'safe', got %v", m["safety"])
	}
}

func TestApply_InvalidExpression(t *testing.T) {
	data := map[string]interface{}{"name": "test"}
	_, err := Apply(data, "invalid[[[")
	if err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestApplyToJSON_ValidJSON(t *testing.T) {
	jsonData := []byte(`{"name": "test", "id": 123}`)
	result, err := ApplyToJSON(jsonData, ".name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(result, []byte(`"test"`)) {
		t.Error("expected JSON output to contain filtered result")
	}
}

func TestApplyToJSON_InvalidJSON(t *testing.T) {
	_, err := ApplyToJSON([]byte(`{invalid}`), ".name")
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestApplyToJSON_EmptyExpression(t *testing.T) {
	jsonData := []byte(`{"name": "test"}`)
	result, err := ApplyToJSON(jsonData, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(jsonData, result) {
		t.Errorf("empty expression should return original JSON unchanged")
	}
}

func TestApply_ShellEscapedNotEqual(t *testing.T) {
	// Zsh escapes != to \!= even in single quotes
	data := []interface{}{
		map[string]interface{}{"value": nil},
		map[string]interface{}{"value": "test"},
	}
	// Expression as it arrives from zsh: select(.value \!= null)
	result, err := Apply(data, `.[] | select(.value \!= null)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := result.(map[string]interface{})
	if m["value"] != "test" {
		t.Errorf("expected value 'test', got %v", m["value"])
	}
}

func TestNormalizeExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`select(.x \!= null)`, `select(.x != null)`},
		{`select(.x != null)`, `select(.x != null)`},
		{`.[] | select(.a \!= .b)`, `.[] | select(.a != .b)`},
		{`select(.x == "test")`, `select(.x == "test")`},
	}
	for _, tt := range tests {
		got := NormalizeExpression(tt.input)
		if got != tt.expected {
			t.Errorf("NormalizeExpression(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestApplyFromJSON_EmptyExpression(t *testing.T) {
	jsonData := []byte(`{"name": "test", "id": 42}`)
	result, err := ApplyFromJSON(jsonData, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", result)
	}
	if m["name"] != "test" {
		t.Errorf("expected name=test, got %v", m["name"])
	}
}

func TestApplyFromJSON_WithExpression(t *testing.T) {
	jsonData := []byte(`{"name": "test", "id": 42}`)
	result, err := ApplyFromJSON(jsonData, ".name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "test" {
		t.Errorf("expected 'test', got %v", result)
	}
}

func TestApplyFromJSON_InvalidJSON(t *testing.T) {
	_, err := ApplyFromJSON([]byte(`{invalid}`), ".name")
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestApply_RootArrayQueryFallsBackToResults(t *testing.T) {
	data := map[string]any{
		"query":  "sort:random",
		"offset": 0,
		"limit":  2,
		"total":  2,
		"results": []any{
			map[string]any{"id": 11},
			map[string]any{"id": 22},
		},
	}

	result, err := Apply(data, `.[].id`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values, ok := result.([]any)
	if !ok {
		t.Fatalf("expected []any result, got %T (%v)", result, result)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 results, got %d (%v)", len(values), values)
	}
	if values[0] != 11 || values[1] != 22 {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestApply_RootArrayQueryWithoutResultsStillErrors(t *testing.T) {
	data := map[string]any{
		"payload": []any{map[string]any{"id": 1}},
	}

	_, err := Apply(data, `.[].id`)
	if err == nil {
		t.Fatal("expected error for root-array query on object without results")
	}
}

func TestApply_RootArrayQueryFallbackStringSibling(t *testing.T) {
	// With no numeric fields the first envelope value the expression
	// hits is the query string; the retry must still kick in.
	data := map[string]any{
		"query": "safety:safe",
		"results": []any{
			map[string]any{"safety": "safe"},
			map[string]any{"safety": "sketchy"},
		},
	}

	result, err := Apply(data, `.[].safety`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values, ok := result.([]any)
	if !ok {
		t.Fatalf("expected []any result, got %T (%v)", result, result)
	}
	if len(values) != 2 || values[0] != "safe" || values[1] != "sketchy" {
		t.Fatalf("unexpected values: %v", values)
	}
}
