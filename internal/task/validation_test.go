package task

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func itemsFromJSON(t *testing.T, raw string) []WorkItem {
	t.Helper()
	var f File
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return f.Tasks
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name: "valid collection",
			raw: `{"tasks": [
				{"id": 1, "title": "a", "status": "done"},
				{"id": 2, "title": "b", "status": "pending", "priority": "high",
				 "subtasks": [{"id": 1, "title": "b1", "status": "pending"}]}
			]}`,
		},
		{
			name: "duplicate top-level id",
			raw: `{"tasks": [
				{"id": 1, "title": "a", "status": "done"},
				{"id": 1, "title": "b", "status": "pending"}
			]}`,
			wantErr: "TASK-003",
		},
		{
			name:    "unknown status",
			raw:     `{"tasks": [{"id": 1, "title": "a", "status": "doing"}]}`,
			wantErr: "TASK-004",
		},
		{
			name:    "unknown priority",
			raw:     `{"tasks": [{"id": 1, "title": "a", "status": "pending", "priority": "urgent"}]}`,
			wantErr: "TASK-002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(itemsFromJSON(t, tt.raw))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want code %s", err, tt.wantErr)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	items := itemsFromJSON(t, `{"tasks": [
		{"id": 1, "title": "a", "status": "done"},
		{"id": 2, "title": "b", "status": "pending",
		 "subtasks": [{"id": 1, "title": "b1", "status": "pending"}]}
	]}`)

	index := Index(items)
	if len(index) != 3 {
		t.Fatalf("Index() has %d entries, want 3", len(index))
	}
	sub, ok := index[mustID(t, "2.1")]
	if !ok || sub.Title != "b1" {
		t.Errorf("index[2.1] = %+v, want subtask b1", sub)
	}
}

func TestByRequirement(t *testing.T) {
	items := itemsFromJSON(t, `{"tasks": [
		{"id": 1, "title": "a", "status": "done",
		 "requirementSource": {"requirementId": "prd-auth"}},
		{"id": 2, "title": "b", "status": "pending",
		 "requirementSource": {"requirementId": "prd-auth"}},
		{"id": 3, "title": "c", "status": "pending"}
	]}`)

	groups := ByRequirement(items)
	if len(groups) != 1 {
		t.Fatalf("ByRequirement() has %d groups, want 1", len(groups))
	}
	if len(groups["prd-auth"]) != 2 {
		t.Errorf("prd-auth group has %d items, want 2", len(groups["prd-auth"]))
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	items := itemsFromJSON(t, `{"tasks": [
		{"id": 1, "title": "a", "status": "pending", "dependencies": []}
	]}`)

	if err := SaveFile(&File{Tasks: items}, path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].Title != "a" {
		t.Errorf("LoadFile() = %+v", loaded.Tasks)
	}
}
