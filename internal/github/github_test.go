package github

import (
	"context"
	"testing"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "https",
			input:     "https://github.com/acme/demo",
			wantOwner: "acme",
			wantRepo:  "demo",
		},
		{
			name:      "https with .git",
			input:     "https://github.com/acme/demo.git",
			wantOwner: "acme",
			wantRepo:  "demo",
		},
		{
			name:      "ssh",
			input:     "git@github.com:acme/demo.git",
			wantOwner: "acme",
			wantRepo:  "demo",
		},
		{
			name:      "bare host",
			input:     "github.com/acme/demo",
			wantOwner: "acme",
			wantRepo:  "demo",
		},
		{
			name:      "trailing slash",
			input:     "https://github.com/acme/demo/",
			wantOwner: "acme",
			wantRepo:  "demo",
		},
		{name: "missing repo", input: "https://github.com/acme", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "extra segments", input: "github.com/acme/demo/tree/main", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepoURL(%q) = %q/%q, want %q/%q", tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestCanonicalURL(t *testing.T) {
	got := CanonicalURL("acme", "demo")
	want := "https://github.com/acme/demo"
	if got != want {
		t.Errorf("CanonicalURL() = %q, want %q", got, want)
	}
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	if c := NewClient(ctx, ""); c == nil {
		t.Fatal("NewClient without token returned nil")
	}
	if c := NewClient(ctx, "ghp_test"); c == nil {
		t.Fatal("NewClient with token returned nil")
	}
}
