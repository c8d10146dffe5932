// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review produces expert critiques of research proposals. The
// critique covers scientific validity, methodology, novelty, impact, and
// feasibility, and incorporates literature findings when a literature review
// ran first.
package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/proposal-engine/internal/provider"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// maxLiteraturePapers bounds how many retrieved papers are folded into the
// evaluation prompt.
const maxLiteraturePapers = 3

const degradedConcern = "Automated critique parsing failed for this pass; the model's raw evaluation could not be structured. Re-run the review or inspect the proposal manually."

const unavailableConcern = "The expert critique call failed for this pass and the proposal was not evaluated. Re-run the review once the completion provider recovers."

// Reviewer runs the expert feedback stage.
type Reviewer struct {
	Provider    provider.Client
	Temperature float64

	// Progress receives human-readable stage updates. May be nil.
	Progress io.Writer
}

// New returns a Reviewer backed by the given provider.
func New(client provider.Client, temperature float64) *Reviewer {
	return &Reviewer{Provider: client, Temperature: temperature}
}

// feedbackWire is the JSON shape the model is asked to produce.
type feedbackWire struct {
	ScientificValidity struct {
		Strengths []string `json:"strengths"`
		Concerns  []string `json:"concerns"`
	} `json:"scientific_validity"`
	Methodology struct {
		Strengths []string `json:"strengths"`
		Concerns  []string `json:"concerns"`
	} `json:"methodology"`
	NoveltyAssessment     string   `json:"novelty_assessment"`
	ImpactAssessment      string   `json:"impact_assessment"`
	FeasibilityAssessment string   `json:"feasibility_assessment"`
	Recommendations       []string `json:"recommendations"`
	Summary               string   `json:"summary"`
}

// Review critiques the proposal, folding literature findings into the prompt
// when lit is non-nil. Only context cancellation is returned as an error:
// provider timeouts and upstream failures, like an unparseable critique,
// degrade to a feedback object that flags what went wrong as a concern so
// downstream improvement still has something to act on. The literature
// feedback rides along on the result either way.
func (r *Reviewer) Review(ctx context.Context, proposal types.Proposal, lit *types.LiteratureFeedback) (types.ExpertFeedback, error) {
	prompt, err := renderEvaluationPrompt(evaluationParams{
		Title:            proposal.Title,
		ResearchQuestion: proposal.Section("Research Question"),
		Background:       proposal.Section("Background"),
		Methodology:      proposal.Section("Methodology"),
		SkillLevel:       proposal.SkillLevel,
		TimeFrame:        proposal.TimeFrame,
		Literature:       condenseLiterature(lit),
	})
	if err != nil {
		return types.ExpertFeedback{}, fmt.Errorf("rendering evaluation prompt: %w", err)
	}

	text, err := r.Provider.Complete(ctx, prompt, r.Temperature)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.ExpertFeedback{}, &types.TimeoutError{Op: "expert review", Err: ctxErr}
		}
		var timeout *types.TimeoutError
		var upstream *types.UpstreamServiceError
		if errors.As(err, &timeout) || errors.As(err, &upstream) {
			r.progressf("warning: expert critique degraded: %v\n", err)
			return degradedFeedback("", unavailableConcern, lit), nil
		}
		return types.ExpertFeedback{}, err
	}

	var wire feedbackWire
	if err := provider.ExtractInto(text, &wire); err != nil {
		r.progressf("warning: expert critique degraded: %v\n", err)
		return degradedFeedback(text, degradedConcern, lit), nil
	}

	fb := types.ExpertFeedback{
		ScientificValidity: types.CritiqueCategory{
			Strengths: provider.StringSlice(wire.ScientificValidity.Strengths),
			Concerns:  provider.StringSlice(wire.ScientificValidity.Concerns),
		},
		Methodology: types.CritiqueCategory{
			Strengths: provider.StringSlice(wire.Methodology.Strengths),
			Concerns:  provider.StringSlice(wire.Methodology.Concerns),
		},
		NoveltyAssessment:     wire.NoveltyAssessment,
		ImpactAssessment:      wire.ImpactAssessment,
		FeasibilityAssessment: wire.FeasibilityAssessment,
		Recommendations:       provider.StringSlice(wire.Recommendations),
		Summary:               wire.Summary,
		LiteratureInsights:    lit,
	}
	return fb, nil
}

// condenseLiterature trims literature feedback down to what the evaluation
// prompt needs: the top papers, the score, and the differentiation
// suggestions.
func condenseLiterature(lit *types.LiteratureFeedback) *literatureParams {
	if lit == nil {
		return nil
	}
	papers := lit.SimilarPapers
	if len(papers) > maxLiteraturePapers {
		papers = papers[:maxLiteraturePapers]
	}
	return &literatureParams{
		Papers:            papers,
		NoveltyScore:      lit.NoveltyScore,
		NoveltyAssessment: lit.NoveltyAssessment,
		Suggestions:       lit.DifferentiationSuggestions,
	}
}

// degradedFeedback wraps a failed critique so the pipeline can keep moving.
// Any raw model text becomes the summary and the failure is surfaced as a
// scientific validity concern.
func degradedFeedback(raw, concern string, lit *types.LiteratureFeedback) types.ExpertFeedback {
	summary := strings.TrimSpace(raw)
	if summary == "" {
		summary = concern
	}
	return types.ExpertFeedback{
		ScientificValidity: types.CritiqueCategory{
			Strengths: []string{},
			Concerns:  []string{concern},
		},
		Methodology: types.CritiqueCategory{
			Strengths: []string{},
			Concerns:  []string{},
		},
		Recommendations:    []string{},
		Summary:            summary,
		LiteratureInsights: lit,
	}
}

func (r *Reviewer) progressf(format string, args ...any) {
	if r.Progress != nil {
		fmt.Fprintf(r.Progress, format, args...)
	}
}
