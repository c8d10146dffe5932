// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries academic APIs for papers related to a proposal.
// Literature search is best-effort by contract: a backend that times out,
// rate-limits, or returns garbage contributes nothing, and the pipeline
// carries on with whatever the other backends produced. Duplicate findings
// across backends are tolerated, not merged.
package search

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// Backend searches a single academic API. Each backend (arXiv, Semantic
// Scholar) implements this interface.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.LiteratureFinding, error)
}

// Output holds the combined findings plus warnings for backends that failed.
type Output struct {
	Findings []types.LiteratureFinding
	Warnings []string
}

// Backends returns the backend set enabled by cfg.
func Backends(cfg types.SearchConfig) []Backend {
	var backends []Backend
	if cfg.EnableArxiv {
		backends = append(backends, &ArxivBackend{})
	}
	if cfg.EnableSemanticScholar {
		backends = append(backends, &SemanticScholarBackend{APIKey: cfg.SemanticScholarAPIKey})
	}
	return backends
}

// Search fans the query out to all backends concurrently and concatenates
// their findings. Every backend failure is converted into a warning, never
// an error: "no results" and "search unavailable" are ordinary outcomes for
// the literature stage, which must keep moving either way. Each backend call
// is bounded by cfg.Timeout.
func Search(ctx context.Context, query string, backends []Backend, cfg types.SearchConfig, w io.Writer) Output {
	if strings.TrimSpace(query) == "" || len(backends) == 0 {
		return Output{Findings: []types.LiteratureFinding{}}
	}

	type backendResult struct {
		findings []types.LiteratureFinding
		err      error
		name     string
	}

	ch := make(chan backendResult, len(backends))
	var wg sync.WaitGroup

	for _, b := range backends {
		wg.Add(1)
		go func(b Backend) {
			defer wg.Done()
			callCtx := ctx
			if cfg.Timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()
			}
			findings, err := b.Search(callCtx, query, cfg)
			ch <- backendResult{findings: findings, err: err, name: b.Name()}
		}(b)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	out := Output{Findings: []types.LiteratureFinding{}}
	for br := range ch {
		if br.err != nil {
			msg := fmt.Sprintf("%s: %v", br.name, br.err)
			out.Warnings = append(out.Warnings, msg)
			if w != nil {
				fmt.Fprintf(w, "warning: backend %s failed: %v\n", br.name, br.err)
			}
			continue
		}
		out.Findings = append(out.Findings, br.findings...)
	}
	return out
}

// unknownAuthors is the sentinel for findings whose source omitted the
// author list.
const unknownAuthors = "Unknown authors"

// displayAuthors collapses an author name list into a display string.
func displayAuthors(names []string) string {
	var kept []string
	for _, n := range names {
		if s := strings.TrimSpace(n); s != "" {
			kept = append(kept, s)
		}
	}
	switch {
	case len(kept) == 0:
		return unknownAuthors
	case len(kept) <= 3:
		return strings.Join(kept, ", ")
	default:
		return kept[0] + " et al."
	}
}
