// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/proposal-engine/internal/httputil"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// semanticAPIBase is a variable so tests can point the backend at a local
// httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

// SemanticScholarBackend searches the Semantic Scholar Graph API. An API key
// is optional; without one the service applies a stricter shared rate limit,
// which DoWithRetry absorbs.
type SemanticScholarBackend struct {
	APIKey string
}

// Name returns the backend identifier used in warnings and finding sources.
func (b *SemanticScholarBackend) Name() string { return "semantic_scholar" }

type semanticResponse struct {
	Data []semanticPaper `json:"data"`
}

type semanticPaper struct {
	Title    string           `json:"title"`
	Abstract string           `json:"abstract"`
	Year     int              `json:"year"`
	URL      string           `json:"url"`
	Authors  []semanticAuthor `json:"authors"`
}

type semanticAuthor struct {
	Name string `json:"name"`
}

// Search queries Semantic Scholar and converts papers into findings. Papers
// without a title are skipped.
func (b *SemanticScholarBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.LiteratureFinding, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(maxResults))
	params.Set("fields", "title,abstract,year,url,authors")
	reqURL := semanticAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building semantic scholar request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	if b.APIKey != "" {
		req.Header.Set("x-api-key", b.APIKey)
	}

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("querying semantic scholar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.UpstreamServiceError{Service: "semantic_scholar", Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading semantic scholar response: %w", err)
	}

	var sr semanticResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing semantic scholar response: %w", err)
	}

	findings := make([]types.LiteratureFinding, 0, len(sr.Data))
	for _, p := range sr.Data {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		var names []string
		for _, a := range p.Authors {
			names = append(names, a.Name)
		}
		findings = append(findings, types.LiteratureFinding{
			Title:    title,
			Authors:  displayAuthors(names),
			Year:     p.Year,
			Abstract: strings.TrimSpace(p.Abstract),
			URL:      strings.TrimSpace(p.URL),
			Source:   b.Name(),
		})
	}
	return findings, nil
}
