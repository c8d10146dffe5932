// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

const arxivFeedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2403.01234v1</id>
    <title>Dark Matter Substructure in
      Dwarf Galaxies</title>
    <summary>We study the distribution of
      dark matter substructure.</summary>
    <published>2024-03-18T17:59:59Z</published>
    <author><name>J. Smith</name></author>
    <author><name>K. Jones</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2403.05678v2</id>
    <title></title>
    <summary>Entry with no title is skipped.</summary>
    <published>2024-03-20T10:00:00Z</published>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2403.09999v1</id>
    <title>A Crowded Paper</title>
    <summary>Many authors.</summary>
    <published>bad-date</published>
    <author><name>A</name></author>
    <author><name>B</name></author>
    <author><name>C</name></author>
    <author><name>D</name></author>
  </entry>
</feed>`

func TestArxivSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		if got := r.URL.Query().Get("max_results"); got != "2" {
			t.Errorf("max_results = %q, want 2", got)
		}
		w.Write([]byte(arxivFeedFixture))
	}))
	defer srv.Close()

	orig := arxivAPIBase
	arxivAPIBase = srv.URL
	defer func() { arxivAPIBase = orig }()

	b := &ArxivBackend{}
	cfg := types.SearchConfig{MaxResults: 2}
	findings, err := b.Search(context.Background(), "dark matter & dwarfs", cfg)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != "all:dark matter & dwarfs" {
		t.Errorf("search_query = %q", gotQuery)
	}
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings (untitled entry skipped), got %d", len(findings))
	}

	first := findings[0]
	if first.Title != "Dark Matter Substructure in Dwarf Galaxies" {
		t.Errorf("title not collapsed: %q", first.Title)
	}
	if first.Authors != "J. Smith, K. Jones" {
		t.Errorf("authors = %q", first.Authors)
	}
	if first.Year != 2024 {
		t.Errorf("year = %d, want 2024", first.Year)
	}
	if first.URL != "http://arxiv.org/abs/2403.01234v1" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Source != "arxiv" {
		t.Errorf("source = %q", first.Source)
	}

	crowded := findings[1]
	if crowded.Authors != "A et al." {
		t.Errorf("crowded authors = %q", crowded.Authors)
	}
	if crowded.Year != 0 {
		t.Errorf("unparseable date should give year 0, got %d", crowded.Year)
	}
}

func TestArxivSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	orig := arxivAPIBase
	arxivAPIBase = srv.URL
	defer func() { arxivAPIBase = orig }()

	b := &ArxivBackend{}
	_, err := b.Search(context.Background(), "pulsars", types.SearchConfig{})
	var upstream *types.UpstreamServiceError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamServiceError, got %v", err)
	}
	if upstream.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d", upstream.Status)
	}
}

func TestArxivDefaultEndpointUsesTLS(t *testing.T) {
	if !strings.HasPrefix(arxivAPIBase, "https://") {
		t.Errorf("arXiv endpoint should use TLS, got %q", arxivAPIBase)
	}
}

func TestArxivSearchMalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not xml at all"))
	}))
	defer srv.Close()

	orig := arxivAPIBase
	arxivAPIBase = srv.URL
	defer func() { arxivAPIBase = orig }()

	b := &ArxivBackend{}
	if _, err := b.Search(context.Background(), "quasars", types.SearchConfig{}); err == nil {
		t.Fatal("expected parse error")
	}
}
