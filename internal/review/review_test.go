// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) Name() string { return "fake" }

func (f *fakeClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

var testProposal = types.Proposal{
	Title:      "Probing Coronal Heating with Helioseismology",
	SkillLevel: "intermediate",
	TimeFrame:  "2 years",
	Idea: map[string]string{
		"Research Question": "What fraction of coronal heating is driven by Alfven waves?",
		"Background":        "Coronal heating remains unsolved.",
		"Methodology":       "Cross-correlate SDO wave observations with coronal temperatures.",
	},
}

const evaluationResponse = `{
  "scientific_validity": {
    "strengths": ["Clear, testable question"],
    "concerns": ["Wave energy flux estimates carry large systematic errors"]
  },
  "methodology": {
    "strengths": ["Uses public SDO data"],
    "concerns": ["No treatment of line-of-sight confusion"]
  },
  "novelty_assessment": "Moderately novel combination of datasets.",
  "impact_assessment": "Would constrain a long-standing open problem.",
  "feasibility_assessment": "Feasible for an intermediate researcher in two years.",
  "recommendations": ["Add an error budget", "Validate against MHD simulations"],
  "summary": "Promising proposal that needs tighter error analysis."
}`

func TestReviewParsesCritique(t *testing.T) {
	client := &fakeClient{response: evaluationResponse}
	r := New(client, 0.5)

	fb, err := r.Review(context.Background(), testProposal, nil)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	if len(fb.ScientificValidity.Concerns) != 1 {
		t.Errorf("validity concerns = %v", fb.ScientificValidity.Concerns)
	}
	if len(fb.Methodology.Strengths) != 1 {
		t.Errorf("methodology strengths = %v", fb.Methodology.Strengths)
	}
	if len(fb.Recommendations) != 2 {
		t.Errorf("recommendations = %v", fb.Recommendations)
	}
	if fb.Summary == "" || fb.FeasibilityAssessment == "" {
		t.Error("summary and feasibility should be populated")
	}
	if fb.LiteratureInsights != nil {
		t.Error("no literature insights expected without a literature review")
	}

	prompt := client.prompts[0]
	if !strings.Contains(prompt, testProposal.Title) {
		t.Error("prompt should carry the proposal title")
	}
	if !strings.Contains(prompt, "RESEARCHER SKILL LEVEL: intermediate") {
		t.Error("prompt should carry the skill level")
	}
	if strings.Contains(prompt, "LITERATURE REVIEW FINDINGS") {
		t.Error("prompt should omit the literature block without literature feedback")
	}
}

func TestReviewFoldsInLiterature(t *testing.T) {
	client := &fakeClient{response: evaluationResponse}
	r := New(client, 0.5)

	lit := &types.LiteratureFeedback{
		SimilarPapers: []types.LiteratureFinding{
			{Title: "Alfven Wave Heating Revisited", Authors: "M. Ito", Year: 2024},
			{Title: "Paper Two", Authors: "A", Year: 2023},
			{Title: "Paper Three", Authors: "B", Year: 2023},
			{Title: "Paper Four Should Be Trimmed", Authors: "C", Year: 2022},
		},
		NoveltyScore:               6.0,
		NoveltyAssessment:          "Partial overlap with wave heating surveys.",
		DifferentiationSuggestions: []string{"Use joint PSP in-situ constraints"},
	}

	fb, err := r.Review(context.Background(), testProposal, lit)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if fb.LiteratureInsights != lit {
		t.Error("literature insights should ride along on the feedback")
	}

	prompt := client.prompts[0]
	if !strings.Contains(prompt, "Alfven Wave Heating Revisited") {
		t.Error("prompt should list retrieved papers")
	}
	if strings.Contains(prompt, "Paper Four Should Be Trimmed") {
		t.Error("prompt should cap the paper list at three")
	}
	if !strings.Contains(prompt, "Score: 6/10") {
		t.Errorf("prompt should carry the novelty score: %s", prompt)
	}
	if !strings.Contains(prompt, "Use joint PSP in-situ constraints") {
		t.Error("prompt should carry differentiation suggestions")
	}
}

func TestReviewDegradesOnMalformedCritique(t *testing.T) {
	client := &fakeClient{response: "The proposal is fine I guess."}
	var buf strings.Builder
	r := &Reviewer{Provider: client, Progress: &buf}

	lit := &types.LiteratureFeedback{NoveltyScore: 7.0}
	fb, err := r.Review(context.Background(), testProposal, lit)
	if err != nil {
		t.Fatalf("Review should degrade, not fail: %v", err)
	}

	if len(fb.ScientificValidity.Concerns) != 1 || !strings.Contains(fb.ScientificValidity.Concerns[0], "parsing failed") {
		t.Errorf("degraded feedback should flag the parse failure: %v", fb.ScientificValidity.Concerns)
	}
	if fb.Summary != "The proposal is fine I guess." {
		t.Errorf("degraded summary should keep the raw text, got %q", fb.Summary)
	}
	if fb.LiteratureInsights != lit {
		t.Error("degraded feedback should keep literature insights")
	}
	if !strings.Contains(buf.String(), "degraded") {
		t.Error("degradation should be reported on the progress writer")
	}
}

func TestReviewDegradesOnUpstreamError(t *testing.T) {
	client := &fakeClient{err: &types.UpstreamServiceError{Service: "claude", Status: 502}}
	var buf strings.Builder
	r := New(client, 0.5)
	r.Progress = &buf

	lit := &types.LiteratureFeedback{NoveltyScore: 6.0}
	fb, err := r.Review(context.Background(), testProposal, lit)
	if err != nil {
		t.Fatalf("Review should degrade on upstream failure, not fail: %v", err)
	}
	if len(fb.ScientificValidity.Concerns) != 1 || !strings.Contains(fb.ScientificValidity.Concerns[0], "critique call failed") {
		t.Errorf("degraded feedback should flag the failed call: %v", fb.ScientificValidity.Concerns)
	}
	if fb.LiteratureInsights != lit {
		t.Error("degraded feedback should keep literature insights")
	}
	if !strings.Contains(buf.String(), "degraded") {
		t.Error("degradation should be reported on the progress writer")
	}
}

func TestReviewDegradesOnProviderTimeout(t *testing.T) {
	client := &fakeClient{err: &types.TimeoutError{Op: "claude completion", Err: errors.New("deadline")}}
	r := New(client, 0.5)

	fb, err := r.Review(context.Background(), testProposal, nil)
	if err != nil {
		t.Fatalf("Review should degrade on a provider timeout, not fail: %v", err)
	}
	if len(fb.ScientificValidity.Concerns) != 1 {
		t.Errorf("concerns = %v", fb.ScientificValidity.Concerns)
	}
	if fb.Summary == "" {
		t.Error("degraded feedback should carry a summary")
	}
}

func TestReviewUnexpectedErrorSurfaces(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	r := New(client, 0.5)

	if _, err := r.Review(context.Background(), testProposal, nil); err == nil {
		t.Fatal("untyped provider errors should surface")
	}
}

func TestReviewCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{err: ctx.Err()}
	r := New(client, 0.5)

	_, err := r.Review(ctx, testProposal, nil)
	var timeout *types.TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected TimeoutError on cancelled context, got %v", err)
	}
}
