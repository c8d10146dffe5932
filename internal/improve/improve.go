// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package improve revises proposals against feedback. Two entry points
// exist: revision against structured expert and literature feedback, and
// revision against free-text feedback from the researcher. Both produce a
// new proposal with a bumped version; the input proposal is never mutated.
package improve

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/proposal-engine/internal/provider"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// Improver runs the improvement stage.
type Improver struct {
	Provider    provider.Client
	Temperature float64

	// PreserveResearchQuestion pins the research question during user-driven
	// improvement. Feedback-driven improvement always preserves it.
	PreserveResearchQuestion bool
}

// New returns an Improver using the configured improvement policy.
func New(client provider.Client, cfg types.ImprovementConfig, temperature float64) *Improver {
	return &Improver{
		Provider:                 client,
		Temperature:              temperature,
		PreserveResearchQuestion: cfg.PreserveResearchQuestion,
	}
}

// revisionWire is the JSON shape the model is asked to produce.
type revisionWire struct {
	Title string            `json:"title"`
	Idea  map[string]string `json:"idea"`
}

// WithFeedback revises the proposal against expert feedback, including any
// literature insights riding on it. The research question is always carried
// over from the original, sections the model failed to regenerate keep
// their previous content, and the version is incremented.
func (im *Improver) WithFeedback(ctx context.Context, proposal types.Proposal, feedback types.ExpertFeedback) (types.Proposal, error) {
	params := promptParams{
		Title:               proposal.Title,
		ResearchQuestion:    proposal.Section("Research Question"),
		Sections:            otherSections(proposal),
		ValidityConcerns:    feedback.ScientificValidity.Concerns,
		MethodologyConcerns: feedback.Methodology.Concerns,
		Recommendations:     feedback.Recommendations,
		Summary:             orNA(feedback.Summary),
	}
	if lit := feedback.LiteratureInsights; lit != nil {
		params.HasLiterature = true
		params.NoveltyScore = lit.NoveltyScore
		params.NoveltyAssessment = lit.NoveltyAssessment
		params.Suggestions = lit.DifferentiationSuggestions
		params.EmergingTrends = lit.EmergingTrends
		params.LiteratureSummary = lit.Summary
	}

	prompt, err := renderPrompt(feedbackPromptTmpl, params)
	if err != nil {
		return types.Proposal{}, fmt.Errorf("rendering improvement prompt: %w", err)
	}
	return im.revise(ctx, proposal, prompt, true)
}

// WithUserFeedback revises the proposal against free-text feedback from the
// researcher. The research question is pinned only when the improver's
// PreserveResearchQuestion policy says so.
func (im *Improver) WithUserFeedback(ctx context.Context, proposal types.Proposal, userFeedback string) (types.Proposal, error) {
	if strings.TrimSpace(userFeedback) == "" {
		return types.Proposal{}, &types.ConfigurationError{Reason: "user feedback is empty"}
	}

	prompt, err := renderPrompt(userFeedbackPromptTmpl, promptParams{
		Title:            proposal.Title,
		ResearchQuestion: proposal.Section("Research Question"),
		Sections:         otherSections(proposal),
		UserFeedback:     userFeedback,
		PreserveQuestion: im.PreserveResearchQuestion,
	})
	if err != nil {
		return types.Proposal{}, fmt.Errorf("rendering improvement prompt: %w", err)
	}
	return im.revise(ctx, proposal, prompt, im.PreserveResearchQuestion)
}

func (im *Improver) revise(ctx context.Context, proposal types.Proposal, prompt string, preserveQuestion bool) (types.Proposal, error) {
	text, err := im.Provider.Complete(ctx, prompt, im.Temperature)
	if err != nil {
		return types.Proposal{}, err
	}

	var wire revisionWire
	if err := provider.ExtractInto(text, &wire); err != nil {
		return types.Proposal{}, err
	}

	sections := wire.Idea
	if preserveQuestion {
		if sections == nil {
			sections = make(map[string]string)
		}
		sections["Research Question"] = proposal.Section("Research Question")
	}

	improved := proposal
	improved.Title = improvedTitle(wire.Title, proposal.Title)
	improved.Idea = types.NormalizeSections(sections, proposal.Idea)
	improved.Version = proposal.Version + 1
	return improved, nil
}

// improvedTitle rejects empty or placeholder titles from the model.
func improvedTitle(generated, original string) string {
	generated = strings.TrimSpace(generated)
	if generated == "" || strings.HasPrefix(generated, "[") {
		return "Improved: " + original
	}
	return generated
}

// otherSections returns every populated section except the research
// question, which the prompts render separately.
func otherSections(proposal types.Proposal) map[string]string {
	out := make(map[string]string)
	for _, name := range types.SectionNames {
		if name == "Research Question" {
			continue
		}
		if v, ok := proposal.Idea[name]; ok && v != "" {
			out[name] = v
		}
	}
	return out
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
