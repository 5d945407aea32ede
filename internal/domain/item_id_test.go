package domain

import (
	"encoding/json"
	"testing"
)

func TestParseItemID(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      string
		isSubtask bool
		wantErr   bool
	}{
		{
			name:  "scalar top-level id",
			value: "5",
			want:  "5",
		},
		{
			name:      "dotted subtask id",
			value:     "5.1",
			want:      "5.1",
			isSubtask: true,
		},
		{
			name:  "surrounding whitespace",
			value: " 12 ",
			want:  "12",
		},
		{
			name:    "empty id",
			value:   "",
			wantErr: true,
		},
		{
			name:    "non-numeric id",
			value:   "abc",
			wantErr: true,
		},
		{
			name:    "non-numeric subtask part",
			value:   "5.x",
			wantErr: true,
		},
		{
			name:    "too many segments",
			value:   "5.1.2",
			wantErr: true,
		},
		{
			name:    "zero id",
			value:   "0",
			wantErr: true,
		},
		{
			name:    "negative id",
			value:   "-3",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseItemID(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseItemID(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if id.String() != tt.want {
				t.Errorf("ParseItemID(%q).String() = %q, want %q", tt.value, id.String(), tt.want)
			}
			if id.IsSubtask() != tt.isSubtask {
				t.Errorf("ParseItemID(%q).IsSubtask() = %v, want %v", tt.value, id.IsSubtask(), tt.isSubtask)
			}
		})
	}
}

func TestItemIDParent(t *testing.T) {
	sub, err := NewSubtaskID(5, 2)
	if err != nil {
		t.Fatalf("NewSubtaskID() error = %v", err)
	}
	if got := sub.Parent().String(); got != "5" {
		t.Errorf("Parent() = %q, want %q", got, "5")
	}

	top, err := NewTaskID(7)
	if err != nil {
		t.Fatalf("NewTaskID() error = %v", err)
	}
	if got := top.Parent().String(); got != "7" {
		t.Errorf("Parent() of top-level = %q, want %q", got, "7")
	}
}

func TestItemIDCompare(t *testing.T) {
	mustParse := func(s string) ItemID {
		id, err := ParseItemID(s)
		if err != nil {
			t.Fatalf("ParseItemID(%q) error = %v", s, err)
		}
		return id
	}

	tests := []struct {
		a, b string
		want int
	}{
		{"1", "2", -1},
		{"2", "1", 1},
		{"3", "3", 0},
		{"5", "5.1", -1},
		{"5.1", "5.2", -1},
		{"5.2", "5.1", 1},
		{"5.1", "6", -1},
	}

	for _, tt := range tests {
		if got := mustParse(tt.a).Compare(mustParse(tt.b)); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestItemIDJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "top-level id marshals as number",
			in:   `5`,
			out:  `5`,
		},
		{
			name: "subtask id marshals as dotted string",
			in:   `"5.1"`,
			out:  `"5.1"`,
		},
		{
			name: "scalar string accepted on input",
			in:   `"7"`,
			out:  `7`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ItemID
			if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			got, err := json.Marshal(id)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.out {
				t.Errorf("round trip of %s = %s, want %s", tt.in, got, tt.out)
			}
		})
	}
}
