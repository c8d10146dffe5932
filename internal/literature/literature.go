// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package literature evaluates proposal novelty against recently published
// papers. The stage is best-effort end to end: failed searches shrink the
// paper set, and a failed analysis degrades to a default assessment, but the
// review itself always produces a usable feedback object.
package literature

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/proposal-engine/internal/provider"
	"github.com/pdiddy/proposal-engine/internal/search"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// Default novelty scores used when the automated analysis is unavailable.
// With retrieved papers in hand the proposal gets the benefit of a mild
// doubt; with no similar papers found it scores higher.
const (
	degradedScoreWithPapers    = 7.0
	degradedScoreWithoutPapers = 8.0
)

const degradedNotice = "Automated novelty analysis was unavailable for this pass. Review the retrieved papers manually to judge overlap with this proposal."

const noPapersNotice = "No closely related recent papers were retrieved, which suggests the proposal covers relatively unexplored ground. Treat this as a weak signal: the search may simply have missed relevant work."

// Reviewer runs the literature review stage.
type Reviewer struct {
	Provider provider.Client
	Backends []search.Backend

	SearchConfig types.SearchConfig

	// CompressQuery asks the model to distill the proposal into a short
	// keyword query before searching.
	CompressQuery bool

	Temperature float64

	// Progress receives human-readable stage updates. May be nil.
	Progress io.Writer
}

// New returns a Reviewer wired to the configured search backends.
func New(client provider.Client, cfg types.PipelineConfig) *Reviewer {
	return &Reviewer{
		Provider:      client,
		Backends:      search.Backends(cfg.Search),
		SearchConfig:  cfg.Search,
		CompressQuery: cfg.Literature.CompressQuery,
		Temperature:   cfg.Provider.Temperature,
	}
}

// analysisWire is the JSON shape the model is asked to produce.
type analysisWire struct {
	NoveltyScore               float64  `json:"novelty_score"`
	NoveltyAssessment          string   `json:"novelty_assessment"`
	DifferentiationSuggestions []string `json:"differentiation_suggestions"`
	EmergingTrends             string   `json:"emerging_trends"`
	Summary                    string   `json:"summary"`
}

// Review searches for papers similar to the proposal and has the model judge
// its novelty against them. Only context cancellation is returned as an
// error; every other failure degrades the result instead.
func (r *Reviewer) Review(ctx context.Context, proposal types.Proposal) (types.LiteratureFeedback, error) {
	query := r.searchQuery(ctx, proposal)
	out := search.Search(ctx, query, r.Backends, r.SearchConfig, r.Progress)
	if err := ctx.Err(); err != nil {
		return types.LiteratureFeedback{}, &types.TimeoutError{Op: "literature review", Err: err}
	}

	if len(out.Findings) == 0 {
		r.progressf("literature: no similar papers retrieved for %q\n", proposal.Title)
	} else {
		r.progressf("literature: analyzing %d retrieved papers\n", len(out.Findings))
	}

	// The analysis runs even with an empty paper list; the prompt tells the
	// model nothing was retrieved and it judges novelty on its own knowledge.
	wire, err := r.analyze(ctx, proposal, out.Findings)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.LiteratureFeedback{}, &types.TimeoutError{Op: "literature review", Err: ctxErr}
		}
		r.progressf("warning: literature analysis degraded: %v\n", err)
		return degradedFeedback(out.Findings), nil
	}

	return types.LiteratureFeedback{
		SimilarPapers:              out.Findings,
		NoveltyScore:               wire.NoveltyScore,
		NoveltyAssessment:          wire.NoveltyAssessment,
		DifferentiationSuggestions: provider.StringSlice(wire.DifferentiationSuggestions),
		EmergingTrends:             wire.EmergingTrends,
		Summary:                    wire.Summary,
	}, nil
}

// degradedFeedback builds the fallback object used when the novelty
// analysis is unavailable. The default score depends on whether any papers
// were retrieved.
func degradedFeedback(papers []types.LiteratureFinding) types.LiteratureFeedback {
	if len(papers) == 0 {
		return types.LiteratureFeedback{
			SimilarPapers:              []types.LiteratureFinding{},
			NoveltyScore:               degradedScoreWithoutPapers,
			NoveltyAssessment:          noPapersNotice,
			DifferentiationSuggestions: []string{},
			Summary:                    noPapersNotice,
		}
	}
	return types.LiteratureFeedback{
		SimilarPapers:              papers,
		NoveltyScore:               degradedScoreWithPapers,
		NoveltyAssessment:          degradedNotice,
		DifferentiationSuggestions: []string{},
		Summary:                    degradedNotice,
	}
}

func (r *Reviewer) analyze(ctx context.Context, proposal types.Proposal, papers []types.LiteratureFinding) (analysisWire, error) {
	prompt, err := renderAnalysisPrompt(analysisParams{
		Title:            proposal.Title,
		Subfields:        strings.Join(proposal.Subfields, ", "),
		ResearchQuestion: proposal.Section("Research Question"),
		Methodology:      proposal.Section("Methodology"),
		Papers:           papers,
	})
	if err != nil {
		return analysisWire{}, fmt.Errorf("rendering analysis prompt: %w", err)
	}

	text, err := r.Provider.Complete(ctx, prompt, r.Temperature)
	if err != nil {
		return analysisWire{}, err
	}

	var wire analysisWire
	if err := provider.ExtractInto(text, &wire); err != nil {
		return analysisWire{}, err
	}
	return wire, nil
}

// searchQuery derives the search query from the proposal title and research
// question, optionally compressed by the model. Compression failures fall
// back to the raw query.
func (r *Reviewer) searchQuery(ctx context.Context, proposal types.Proposal) string {
	parts := []string{strings.TrimSpace(proposal.Title)}
	question := strings.TrimSpace(proposal.Section("Research Question"))
	if question != "" && question != types.MissingSectionPlaceholder("Research Question") {
		parts = append(parts, firstSentence(question))
	}
	query := strings.TrimSpace(strings.Join(parts, " "))

	if !r.CompressQuery || query == "" {
		return query
	}

	prompt, err := renderCompressPrompt(query)
	if err != nil {
		return query
	}
	compressed, err := r.Provider.Complete(ctx, prompt, 0)
	if err != nil {
		r.progressf("warning: query compression failed, using raw query: %v\n", err)
		return query
	}
	compressed = strings.TrimSpace(strings.Trim(strings.TrimSpace(compressed), `"`))
	if compressed == "" {
		return query
	}
	return compressed
}

func (r *Reviewer) progressf(format string, args ...any) {
	if r.Progress != nil {
		fmt.Fprintf(r.Progress, format, args...)
	}
}

func firstSentence(text string) string {
	if idx := strings.IndexAny(text, ".?!\n"); idx >= 0 {
		return strings.TrimSpace(text[:idx+1])
	}
	return strings.TrimSpace(text)
}
