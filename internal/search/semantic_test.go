// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdiddy/proposal-engine/internal/httputil"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

const semanticFixture = `{
  "total": 2,
  "data": [
    {
      "title": "Machine Learning for Transient Classification",
      "abstract": "We classify transients.",
      "year": 2023,
      "url": "https://www.semanticscholar.org/paper/abc",
      "authors": [{"name": "L. Wu"}, {"name": "M. Chen"}]
    },
    {
      "title": "",
      "abstract": "Untitled record.",
      "year": 2022,
      "url": "https://www.semanticscholar.org/paper/def",
      "authors": []
    },
    {
      "title": "Anonymous Survey",
      "abstract": null,
      "year": 0,
      "url": "",
      "authors": []
    }
  ]
}`

func TestSemanticScholarSearch(t *testing.T) {
	var gotKey, gotFields string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotFields = r.URL.Query().Get("fields")
		if got := r.URL.Query().Get("query"); got != "fast radio bursts" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(semanticFixture))
	}))
	defer srv.Close()

	orig := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = orig }()

	b := &SemanticScholarBackend{APIKey: "test-key"}
	findings, err := b.Search(context.Background(), "fast radio bursts", types.SearchConfig{MaxResults: 3})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotFields != "title,abstract,year,url,authors" {
		t.Errorf("fields = %q", gotFields)
	}
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings (untitled record skipped), got %d", len(findings))
	}

	first := findings[0]
	if first.Title != "Machine Learning for Transient Classification" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Authors != "L. Wu, M. Chen" {
		t.Errorf("authors = %q", first.Authors)
	}
	if first.Year != 2023 {
		t.Errorf("year = %d", first.Year)
	}
	if first.Source != "semantic_scholar" {
		t.Errorf("source = %q", first.Source)
	}

	anon := findings[1]
	if anon.Authors != "Unknown authors" {
		t.Errorf("missing authors should use sentinel, got %q", anon.Authors)
	}
	if anon.Year != 0 {
		t.Errorf("missing year should be 0, got %d", anon.Year)
	}
}

func TestSemanticScholarOmitsKeyHeaderWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["X-Api-Key"]; ok {
			t.Error("x-api-key header should be absent")
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	orig := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = orig }()

	b := &SemanticScholarBackend{}
	findings, err := b.Search(context.Background(), "neutron stars", types.SearchConfig{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %d", len(findings))
	}
}

func TestSemanticScholarRetriesRateLimit(t *testing.T) {
	origDelay := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	defer func() { httputil.RetryBaseDelay = origDelay }()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"data": [{"title": "After Backoff", "year": 2024, "authors": []}]}`))
	}))
	defer srv.Close()

	orig := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = orig }()

	b := &SemanticScholarBackend{}
	findings, err := b.Search(context.Background(), "supernovae", types.SearchConfig{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
	if len(findings) != 1 || findings[0].Title != "After Backoff" {
		t.Fatalf("unexpected findings: %#v", findings)
	}
}

func TestSemanticScholarServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	orig := semanticAPIBase
	semanticAPIBase = srv.URL
	defer func() { semanticAPIBase = orig }()

	b := &SemanticScholarBackend{}
	_, err := b.Search(context.Background(), "black holes", types.SearchConfig{})
	var upstream *types.UpstreamServiceError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamServiceError, got %v", err)
	}
	if upstream.Service != "semantic_scholar" {
		t.Errorf("service = %q", upstream.Service)
	}
}
