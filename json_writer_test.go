package sactorium

import (
	"encoding/json"
	"testing"
)

func TestJSONObjectWriterFieldOrder(t *testing.T) {
	var w jsonObjectWriter
	w.Append("b", 1).Append("a", "x").Optional("skipped", "").Optional("kept", 2)

	data, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if got, want := string(data), `{"b":1,"a":"x","kept":2}`; got != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
	if !json.Valid(data) {
		t.Errorf("MarshalJSON() produced invalid JSON: %s", data)
	}
}

func TestJSONObjectWriterEmpty(t *testing.T) {
	var w jsonObjectWriter
	data, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if got := string(data); got != "{}" {
		t.Errorf("MarshalJSON() = %s, want {}", got)
	}
}
