// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"errors"
	"testing"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantKey string
		wantVal string
		wantErr bool
	}{
		{
			name:    "pure JSON",
			text:    `{"title": "Dark Matter Survey"}`,
			wantKey: "title",
			wantVal: "Dark Matter Survey",
		},
		{
			name:    "prose before and after",
			text:    "Here is the proposal you asked for:\n{\"title\": \"FRB Origins\"}\nLet me know if you need changes.",
			wantKey: "title",
			wantVal: "FRB Origins",
		},
		{
			name:    "markdown fenced",
			text:    "```json\n{\"title\": \"Lensing Study\"}\n```",
			wantKey: "title",
			wantVal: "Lensing Study",
		},
		{
			name:    "nested objects",
			text:    `{"idea": {"Research Question": "How?"}, "title": "Nested"}`,
			wantKey: "title",
			wantVal: "Nested",
		},
		{
			name:    "braces inside string literals",
			text:    `{"title": "Use {braces} and \"quotes\" freely"}`,
			wantKey: "title",
			wantVal: `Use {braces} and "quotes" freely`,
		},
		{
			name:    "no object at all",
			text:    "I could not produce a proposal, sorry.",
			wantErr: true,
		},
		{
			name:    "unbalanced object",
			text:    `{"title": "never closed"`,
			wantErr: true,
		},
		{
			name:    "invalid JSON inside braces",
			text:    `{title: unquoted}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ExtractObject(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var malformed *types.MalformedOutputError
				if !errors.As(err, &malformed) {
					t.Fatalf("error type = %T, want *types.MalformedOutputError", err)
				}
				if malformed.Raw != tt.text {
					t.Errorf("Raw = %q, want full input text", malformed.Raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := obj[tt.wantKey]; got != tt.wantVal {
				t.Errorf("obj[%q] = %v, want %q", tt.wantKey, got, tt.wantVal)
			}
		})
	}
}

func TestExtractInto(t *testing.T) {
	var out struct {
		Title string  `json:"title"`
		Score float64 `json:"novelty_score"`
	}
	text := "Analysis follows.\n{\"title\": \"X\", \"novelty_score\": 7.5}"
	if err := ExtractInto(text, &out); err != nil {
		t.Fatalf("ExtractInto: %v", err)
	}
	if out.Title != "X" || out.Score != 7.5 {
		t.Errorf("got %+v", out)
	}
}

func TestStringSlice(t *testing.T) {
	got := StringSlice([]any{"a", 3.0, "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("StringSlice = %v", got)
	}
	if got := StringSlice(nil); got == nil || len(got) != 0 {
		t.Errorf("StringSlice(nil) = %v, want empty non-nil", got)
	}
}

func TestFieldHelpers(t *testing.T) {
	obj := map[string]any{"s": "hello", "f": 4.2, "empty": ""}
	if got := StringField(obj, "s", "x"); got != "hello" {
		t.Errorf("StringField = %q", got)
	}
	if got := StringField(obj, "missing", "fallback"); got != "fallback" {
		t.Errorf("StringField missing = %q", got)
	}
	if got := StringField(obj, "empty", "fallback"); got != "fallback" {
		t.Errorf("StringField empty = %q", got)
	}
	if got := FloatField(obj, "f", 0); got != 4.2 {
		t.Errorf("FloatField = %v", got)
	}
	if got := FloatField(obj, "s", 9); got != 9 {
		t.Errorf("FloatField wrong type = %v", got)
	}
}
