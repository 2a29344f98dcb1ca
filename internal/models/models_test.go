package models

import (
	"encoding/json"
	"testing"
)

func TestStatusValid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusBacklog, true},
		{StatusInProgress, true},
		{StatusComplete, true},
		{Status("done"), false},
		{Status(""), false},
		{Status("Backlog"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatuses(t *testing.T) {
	statuses := Statuses()
	if len(statuses) != 3 {
		t.Fatalf("Statuses() returned %d lanes, want 3", len(statuses))
	}
	if statuses[0] != StatusBacklog || statuses[2] != StatusComplete {
		t.Errorf("Statuses() = %v, want board order backlog..complete", statuses)
	}
}

func TestClientHasPriority(t *testing.T) {
	priority := 0
	with := Client{ID: 1, Priority: &priority}
	without := Client{ID: 2}

	if !with.HasPriority() {
		t.Error("HasPriority() = false for a client with priority set")
	}
	if without.HasPriority() {
		t.Error("HasPriority() = true for a client with no priority")
	}
}

func TestClientJSONShape(t *testing.T) {
	priority := 2
	c := Client{ID: 7, Name: "Acme Corp", Status: StatusBacklog, Position: 1, Priority: &priority}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	// Boundary shape is exactly {id, name, status, position, priority}
	want := []string{"id", "name", "status", "position", "priority"}
	if len(fields) != len(want) {
		t.Errorf("JSON has %d fields (%v), want %d", len(fields), fields, len(want))
	}
	for _, key := range want {
		if _, ok := fields[key]; !ok {
			t.Errorf("JSON missing field %q", key)
		}
	}
}

func TestClientJSONNullPriority(t *testing.T) {
	c := Client{ID: 1, Name: "Globex", Status: StatusComplete, Position: 1}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if v, ok := fields["priority"]; !ok || v != nil {
		t.Errorf("priority = %v, want explicit null", v)
	}
}
