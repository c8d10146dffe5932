// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

type stubBackend struct {
	name     string
	findings []types.LiteratureFinding
	err      error
	delay    time.Duration
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.LiteratureFinding, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.findings, s.err
}

func TestSearchCombinesBackends(t *testing.T) {
	backends := []Backend{
		&stubBackend{name: "alpha", findings: []types.LiteratureFinding{
			{Title: "Paper A", Source: "alpha"},
		}},
		&stubBackend{name: "beta", findings: []types.LiteratureFinding{
			{Title: "Paper B", Source: "beta"},
			{Title: "Paper C", Source: "beta"},
		}},
	}

	out := Search(context.Background(), "dark matter halos", backends, types.SearchConfig{}, nil)
	if len(out.Findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(out.Findings))
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", out.Warnings)
	}
}

func TestSearchToleratesDuplicates(t *testing.T) {
	dup := types.LiteratureFinding{Title: "Same Paper"}
	backends := []Backend{
		&stubBackend{name: "alpha", findings: []types.LiteratureFinding{dup}},
		&stubBackend{name: "beta", findings: []types.LiteratureFinding{dup}},
	}

	out := Search(context.Background(), "exoplanets", backends, types.SearchConfig{}, nil)
	if len(out.Findings) != 2 {
		t.Fatalf("expected duplicates preserved, got %d findings", len(out.Findings))
	}
}

func TestSearchConvertsFailuresToWarnings(t *testing.T) {
	backends := []Backend{
		&stubBackend{name: "alpha", err: errors.New("connection refused")},
		&stubBackend{name: "beta", findings: []types.LiteratureFinding{
			{Title: "Survivor", Source: "beta"},
		}},
	}

	var buf bytes.Buffer
	out := Search(context.Background(), "stellar nurseries", backends, types.SearchConfig{}, &buf)
	if len(out.Findings) != 1 {
		t.Fatalf("expected the healthy backend's finding, got %d", len(out.Findings))
	}
	if len(out.Warnings) != 1 || !strings.Contains(out.Warnings[0], "alpha") {
		t.Fatalf("expected one warning naming alpha, got %v", out.Warnings)
	}
	if !strings.Contains(buf.String(), "warning: backend alpha failed") {
		t.Fatalf("expected warning on progress writer, got %q", buf.String())
	}
}

func TestSearchAllBackendsFailing(t *testing.T) {
	backends := []Backend{
		&stubBackend{name: "alpha", err: errors.New("boom")},
		&stubBackend{name: "beta", err: errors.New("also boom")},
	}

	out := Search(context.Background(), "galactic rotation", backends, types.SearchConfig{}, nil)
	if out.Findings == nil || len(out.Findings) != 0 {
		t.Fatalf("expected non-nil empty findings, got %#v", out.Findings)
	}
	if len(out.Warnings) != 2 {
		t.Fatalf("expected two warnings, got %v", out.Warnings)
	}
}

func TestSearchEnforcesPerBackendTimeout(t *testing.T) {
	backends := []Backend{
		&stubBackend{name: "slow", delay: 500 * time.Millisecond, findings: []types.LiteratureFinding{
			{Title: "Too Late"},
		}},
	}

	cfg := types.SearchConfig{}
	cfg.Timeout = 20 * time.Millisecond
	out := Search(context.Background(), "pulsars", backends, cfg, nil)
	if len(out.Findings) != 0 {
		t.Fatalf("expected no findings from a timed-out backend, got %d", len(out.Findings))
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("expected a timeout warning, got %v", out.Warnings)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	backends := []Backend{&stubBackend{name: "alpha"}}
	out := Search(context.Background(), "   ", backends, types.SearchConfig{}, nil)
	if len(out.Findings) != 0 || len(out.Warnings) != 0 {
		t.Fatalf("expected empty output for blank query, got %#v", out)
	}
}

func TestBackendsRespectsConfig(t *testing.T) {
	cfg := types.SearchConfig{EnableArxiv: true, EnableSemanticScholar: true}
	if got := len(Backends(cfg)); got != 2 {
		t.Fatalf("expected 2 backends, got %d", got)
	}

	cfg.EnableSemanticScholar = false
	backends := Backends(cfg)
	if len(backends) != 1 || backends[0].Name() != "arxiv" {
		t.Fatalf("expected arxiv only, got %v", backends)
	}

	cfg.EnableArxiv = false
	if got := len(Backends(cfg)); got != 0 {
		t.Fatalf("expected no backends, got %d", got)
	}
}

func TestDisplayAuthors(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"none", nil, "Unknown authors"},
		{"blank entries", []string{" ", ""}, "Unknown authors"},
		{"single", []string{"A. Einstein"}, "A. Einstein"},
		{"three", []string{"A", "B", "C"}, "A, B, C"},
		{"four", []string{"A", "B", "C", "D"}, "A et al."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayAuthors(tt.names); got != tt.want {
				t.Errorf("displayAuthors(%v) = %q, want %q", tt.names, got, tt.want)
			}
		})
	}
}
