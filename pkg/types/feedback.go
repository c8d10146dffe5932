// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LiteratureFinding is one paper returned by an academic search backend.
// Fields a backend could not supply carry explicit "unknown" sentinels
// rather than being absent: Year 0 and Authors "Unknown authors".
type LiteratureFinding struct {
	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors is a display string ("A. Author et al."), not a structured list.
	Authors string `json:"authors" yaml:"authors"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year" yaml:"year"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// URL points at the paper's landing page.
	URL string `json:"url" yaml:"url"`

	// Source identifies which backend produced the finding
	// (e.g. "arxiv", "semantic_scholar").
	Source string `json:"source" yaml:"source"`
}

// LiteratureFeedback is the literature review stage's output. It is created
// once per review invocation and never mutated afterwards; a new review
// produces a new object.
type LiteratureFeedback struct {
	// SimilarPapers lists retrieved papers related to the proposal.
	// Duplicates across backends are tolerated, not merged.
	SimilarPapers []LiteratureFinding `json:"similar_papers" yaml:"similar_papers"`

	// NoveltyScore rates the proposal's novelty, nominally 1-10, unclamped.
	NoveltyScore float64 `json:"novelty_score" yaml:"novelty_score"`

	// NoveltyAssessment analyzes the proposal against the retrieved literature.
	NoveltyAssessment string `json:"novelty_assessment" yaml:"novelty_assessment"`

	// DifferentiationSuggestions are concrete ways to make the proposal more novel.
	DifferentiationSuggestions []string `json:"differentiation_suggestions" yaml:"differentiation_suggestions"`

	// EmergingTrends describes developments in the area the proposal could adopt.
	EmergingTrends string `json:"emerging_trends" yaml:"emerging_trends"`

	// Summary is the overall assessment.
	Summary string `json:"summary" yaml:"summary"`
}

// CritiqueCategory groups strengths and concerns for one review dimension.
// Both slices are always non-nil so consumers never need a presence check.
type CritiqueCategory struct {
	Strengths []string `json:"strengths" yaml:"strengths"`
	Concerns  []string `json:"concerns" yaml:"concerns"`
}

// ExpertFeedback is the expert review stage's structured critique.
// Immutable once constructed.
type ExpertFeedback struct {
	ScientificValidity CritiqueCategory `json:"scientific_validity" yaml:"scientific_validity"`
	Methodology        CritiqueCategory `json:"methodology" yaml:"methodology"`

	NoveltyAssessment     string `json:"novelty_assessment" yaml:"novelty_assessment"`
	ImpactAssessment      string `json:"impact_assessment" yaml:"impact_assessment"`
	FeasibilityAssessment string `json:"feasibility_assessment" yaml:"feasibility_assessment"`

	// Recommendations is a bounded list of actionable improvement steps.
	Recommendations []string `json:"recommendations" yaml:"recommendations"`

	// Summary is the reviewer's final assessment paragraph.
	Summary string `json:"summary" yaml:"summary"`

	// LiteratureInsights carries a copy of the literature feedback when a
	// literature review preceded this one, so the improvement prompt can
	// reference findings without re-querying. Nil otherwise.
	LiteratureInsights *LiteratureFeedback `json:"literature_insights,omitempty" yaml:"literature_insights,omitempty"`
}
