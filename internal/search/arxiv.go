// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/proposal-engine/internal/httputil"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// arxivAPIBase is a variable so tests can point the backend at a local
// httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivBackend searches the arXiv Atom API. No credential is required.
type ArxivBackend struct{}

// Name returns the backend identifier used in warnings and finding sources.
func (b *ArxivBackend) Name() string { return "arxiv" }

type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// Search queries arXiv and converts Atom entries into findings. Entries
// without a title are skipped.
func (b *ArxivBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.LiteratureFinding, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	reqURL := arxivAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building arxiv request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("querying arxiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.UpstreamServiceError{Service: "arxiv", Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading arxiv response: %w", err)
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parsing arxiv feed: %w", err)
	}

	findings := make([]types.LiteratureFinding, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		title := collapseWhitespace(e.Title)
		if title == "" {
			continue
		}
		var names []string
		for _, a := range e.Authors {
			names = append(names, a.Name)
		}
		findings = append(findings, types.LiteratureFinding{
			Title:    title,
			Authors:  displayAuthors(names),
			Year:     arxivYear(e.Published),
			Abstract: collapseWhitespace(e.Summary),
			URL:      strings.TrimSpace(e.ID),
			Source:   b.Name(),
		})
	}
	return findings, nil
}

// arxivYear pulls the year from a timestamp like "2024-03-18T17:59:59Z".
func arxivYear(published string) int {
	published = strings.TrimSpace(published)
	if len(published) < 4 {
		return 0
	}
	year, err := strconv.Atoi(published[:4])
	if err != nil {
		return 0
	}
	return year
}

// collapseWhitespace flattens the newline-wrapped text arXiv returns in
// titles and abstracts.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
