package models

import (
	"strings"
	"testing"
)

func TestMarshalDocument(t *testing.T) {
	tests := []struct {
		name  string
		input Document
		want  string
	}{
		{
			name:  "nil encodes as empty object",
			input: nil,
			want:  "{}",
		},
		{
			name:  "empty encodes as empty object",
			input: Document{},
			want:  "{}",
		},
		{
			name:  "single key",
			input: Document{"branch": "main"},
			want:  `{"branch":"main"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalDocument(tt.input)
			if err != nil {
				t.Fatalf("MarshalDocument() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MarshalDocument() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalDocument_Error(t *testing.T) {
	// Channels cannot be marshaled to JSON.
	_, err := MarshalDocument(Document{"ch": make(chan int)})
	if err == nil {
		t.Fatal("expected error marshaling channel value")
	}
}

func TestUnmarshalDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{name: "empty string", input: "", wantLen: 0},
		{name: "empty object", input: "{}", wantLen: 0},
		{name: "two keys", input: `{"a":1,"b":"x"}`, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalDocument(tt.input)
			if err != nil {
				t.Fatalf("UnmarshalDocument() error: %v", err)
			}
			if got == nil {
				t.Fatal("UnmarshalDocument() returned nil document")
			}
			if len(got) != tt.wantLen {
				t.Errorf("document has %d keys, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	_, err := UnmarshalDocument("{not json")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	d := Document{"branch": "main", "stars": float64(42)}
	s, err := MarshalDocument(d)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}
	back, err := UnmarshalDocument(s)
	if err != nil {
		t.Fatalf("UnmarshalDocument() error: %v", err)
	}
	if back["branch"] != "main" {
		t.Errorf("branch = %v, want main", back["branch"])
	}
	if back["stars"] != float64(42) {
		t.Errorf("stars = %v, want 42", back["stars"])
	}
}

func TestNewID_Format(t *testing.T) {
	id, err := NewID("prj")
	if err != nil {
		t.Fatalf("NewID() error: %v", err)
	}
	if !strings.HasPrefix(id, "prj-") {
		t.Errorf("ID %q missing prj- prefix", id)
	}
	// prj- (4 chars) + 12 hex chars = 16 total
	if len(id) != 16 {
		t.Errorf("ID length = %d, want 16; id = %q", len(id), id)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewID("usr")
		if err != nil {
			t.Fatalf("NewID() iteration %d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q on iteration %d", id, i)
		}
		seen[id] = true
	}
}
