// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the proposal stages: generation, literature
// review, expert review, and improvement. It owns the per-session state
// machine, is the only layer that decides what a failed transition means,
// and never lets a failed stage corrupt the session's last known good state.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/proposal-engine/internal/generate"
	"github.com/pdiddy/proposal-engine/internal/improve"
	"github.com/pdiddy/proposal-engine/internal/literature"
	"github.com/pdiddy/proposal-engine/internal/provider"
	"github.com/pdiddy/proposal-engine/internal/review"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// Pipeline wires the four stages to one provider client and configuration.
// Session state lives entirely on the Session values passed into each
// operation, never on the pipeline itself.
type Pipeline struct {
	cfg        types.PipelineConfig
	generator  *generate.Generator
	literature *literature.Reviewer
	expert     *review.Reviewer
	improver   *improve.Improver

	// Progress receives human-readable stage updates. May be nil.
	Progress io.Writer
}

// New builds a pipeline from configuration. Provider construction validates
// the backend selector and credential up front, so a misconfigured pipeline
// fails here before any network call.
func New(cfg types.PipelineConfig) (*Pipeline, error) {
	client, err := provider.New(cfg.Provider)
	if err != nil {
		return nil, err
	}
	return NewWithClient(cfg, client), nil
}

// NewWithClient builds a pipeline around an existing provider client. Tests
// use it to substitute a fake provider.
func NewWithClient(cfg types.PipelineConfig, client provider.Client) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		generator: generate.New(client, cfg.Generation, cfg.Provider.Temperature),
		expert:    review.New(client, cfg.Provider.Temperature),
		improver:  improve.New(client, cfg.Improvement, cfg.Provider.Temperature),
	}
	p.literature = literature.New(client, cfg)
	return p
}

// SetProgress routes stage progress lines to w for the pipeline and every
// stage that reports them.
func (p *Pipeline) SetProgress(w io.Writer) {
	p.Progress = w
	p.literature.Progress = w
	p.expert.Progress = w
}

// GenerateIdea generates a proposal from a researcher profile and moves the
// session from StateStart to StateGenerated.
func (p *Pipeline) GenerateIdea(ctx context.Context, s *Session, profile types.ResearcherProfile) (types.Proposal, error) {
	if err := s.require("generate idea", StateStart); err != nil {
		return types.Proposal{}, err
	}

	proposal, err := callBounded(ctx, p.completionBudget(), "idea generation", func(ctx context.Context) (types.Proposal, error) {
		return p.generator.FromProfile(ctx, profile)
	})
	if err != nil {
		return types.Proposal{}, err
	}

	s.Profile = &profile
	s.Original = &proposal
	s.Current = &proposal
	s.State = StateGenerated
	s.touch()
	p.progressf("generated proposal %q (version %d)\n", proposal.Title, proposal.Version)
	return proposal, nil
}

// StructureIdea formalizes free-text idea input and moves the session from
// StateStart to StateGenerated. The profile is optional; when given it is
// recorded on the session and informs the structuring prompt.
func (p *Pipeline) StructureIdea(ctx context.Context, s *Session, ideaText string, profile *types.ResearcherProfile) (types.Proposal, error) {
	if err := s.require("structure idea", StateStart); err != nil {
		return types.Proposal{}, err
	}

	proposal, err := callBounded(ctx, p.completionBudget(), "idea structuring", func(ctx context.Context) (types.Proposal, error) {
		return p.generator.FromFreeText(ctx, ideaText, profile)
	})
	if err != nil {
		return types.Proposal{}, err
	}

	s.Profile = profile
	s.Original = &proposal
	s.Current = &proposal
	s.State = StateGenerated
	s.touch()
	p.progressf("structured proposal %q\n", proposal.Title)
	return proposal, nil
}

// LiteratureReview evaluates the current proposal's novelty against
// published work and moves the session to StateLitReviewed. The stage is
// optional; ExpertReview accepts sessions that skipped it.
func (p *Pipeline) LiteratureReview(ctx context.Context, s *Session) (types.LiteratureFeedback, error) {
	if err := s.require("literature review", StateGenerated); err != nil {
		return types.LiteratureFeedback{}, err
	}

	budget := p.completionBudget() + p.cfg.Search.Timeout
	fb, err := callBounded(ctx, budget, "literature review", func(ctx context.Context) (types.LiteratureFeedback, error) {
		return p.literature.Review(ctx, *s.Current)
	})
	if err != nil {
		return types.LiteratureFeedback{}, err
	}

	s.Literature = &fb
	s.State = StateLitReviewed
	s.touch()
	p.progressf("literature review complete: %d similar papers, novelty %.1f\n", len(fb.SimilarPapers), fb.NoveltyScore)
	return fb, nil
}

// ExpertReview critiques the current proposal, folding in literature
// feedback when the session has it, and moves the session to
// StateFeedbackReceived.
func (p *Pipeline) ExpertReview(ctx context.Context, s *Session) (types.ExpertFeedback, error) {
	if err := s.require("expert review", StateGenerated, StateLitReviewed); err != nil {
		return types.ExpertFeedback{}, err
	}

	fb, err := callBounded(ctx, p.completionBudget(), "expert review", func(ctx context.Context) (types.ExpertFeedback, error) {
		return p.expert.Review(ctx, *s.Current, s.Literature)
	})
	if err != nil {
		return types.ExpertFeedback{}, err
	}

	s.Expert = &fb
	s.State = StateFeedbackReceived
	s.touch()
	p.progressf("expert review complete: %d recommendations\n", len(fb.Recommendations))
	return fb, nil
}

// Improve revises the current proposal against whatever feedback the
// session holds and moves it to StateImproved. Pending user feedback, when
// present, wins over the stored expert critique. The previous proposal is
// only replaced after the revision fully succeeds.
func (p *Pipeline) Improve(ctx context.Context, s *Session) (types.Proposal, error) {
	if err := s.require("improve proposal", StateFeedbackReceived); err != nil {
		return types.Proposal{}, err
	}

	improved, err := callBounded(ctx, p.completionBudget(), "proposal improvement", func(ctx context.Context) (types.Proposal, error) {
		if s.pendingUserFeedback != "" {
			return p.improver.WithUserFeedback(ctx, *s.Current, s.pendingUserFeedback)
		}
		var expert types.ExpertFeedback
		if s.Expert != nil {
			expert = *s.Expert
		}
		return p.improver.WithFeedback(ctx, *s.Current, expert)
	})
	if err != nil {
		return types.Proposal{}, err
	}

	s.pendingUserFeedback = ""
	s.Current = &improved
	s.State = StateImproved
	s.touch()
	p.progressf("improved proposal to version %d\n", improved.Version)
	return improved, nil
}

// SubmitUserFeedback records free-text feedback on an improved proposal and
// loops the session back to StateFeedbackReceived, where the next Improve
// call consumes it. No network call happens here.
func (p *Pipeline) SubmitUserFeedback(s *Session, feedback string) error {
	if err := s.require("submit user feedback", StateImproved); err != nil {
		return err
	}
	if feedback == "" {
		return &types.ConfigurationError{Reason: "user feedback is empty"}
	}

	s.UserFeedback = append(s.UserFeedback, feedback)
	s.pendingUserFeedback = feedback
	s.State = StateFeedbackReceived
	s.touch()
	return nil
}

// AdoptProposal seeds a fresh session with a proposal produced outside the
// pipeline, accepted in any of the forms decodeInto handles. The session
// lands in StateGenerated, or StateLitReviewed when literature feedback
// accompanies the proposal, so every later stage applies unchanged.
func (p *Pipeline) AdoptProposal(s *Session, proposal any, lit any) error {
	if err := s.require("adopt proposal", StateStart); err != nil {
		return err
	}
	prop, err := DecodeProposal(proposal)
	if err != nil {
		return err
	}
	litFB, err := DecodeLiteratureFeedback(lit)
	if err != nil {
		return err
	}

	s.Original = &prop
	s.Current = &prop
	s.State = StateGenerated
	if litFB != nil {
		s.Literature = litFB
		s.State = StateLitReviewed
	}
	s.touch()
	p.progressf("adopted external proposal %q\n", prop.Title)
	return nil
}

// AdoptForImprovement seeds a fresh session with a proposal and expert
// feedback produced outside the pipeline, leaving it in
// StateFeedbackReceived so Improve runs directly on the pair.
func (p *Pipeline) AdoptForImprovement(s *Session, proposal any, expert any) error {
	if err := s.require("adopt proposal", StateStart); err != nil {
		return err
	}
	prop, err := DecodeProposal(proposal)
	if err != nil {
		return err
	}
	fb, err := DecodeExpertFeedback(expert)
	if err != nil {
		return err
	}

	s.Original = &prop
	s.Current = &prop
	s.Expert = &fb
	s.State = StateFeedbackReceived
	s.touch()
	p.progressf("adopted external proposal %q with expert feedback\n", prop.Title)
	return nil
}

// Result is the composite output of a full pipeline run: every intermediate
// artifact plus the final improved proposal.
type Result struct {
	Original   types.Proposal           `json:"original" yaml:"original"`
	Literature types.LiteratureFeedback `json:"literature" yaml:"literature"`
	Expert     types.ExpertFeedback     `json:"expert" yaml:"expert"`
	Improved   types.Proposal           `json:"improved" yaml:"improved"`
}

// FullPipeline runs generate (or structure, when ideaText is non-empty),
// literature review, expert review, and improve in sequence on a fresh
// session. Stages run strictly sequentially; each consumes the previous
// stage's output.
func (p *Pipeline) FullPipeline(ctx context.Context, s *Session, profile types.ResearcherProfile, ideaText string) (Result, error) {
	var result Result
	var err error

	if ideaText != "" {
		result.Original, err = p.StructureIdea(ctx, s, ideaText, &profile)
	} else {
		result.Original, err = p.GenerateIdea(ctx, s, profile)
	}
	if err != nil {
		return Result{}, fmt.Errorf("generation stage: %w", err)
	}

	result.Literature, err = p.LiteratureReview(ctx, s)
	if err != nil {
		return Result{}, fmt.Errorf("literature stage: %w", err)
	}

	result.Expert, err = p.ExpertReview(ctx, s)
	if err != nil {
		return Result{}, fmt.Errorf("expert review stage: %w", err)
	}

	result.Improved, err = p.Improve(ctx, s)
	if err != nil {
		return Result{}, fmt.Errorf("improvement stage: %w", err)
	}

	return result, nil
}

func (p *Pipeline) completionBudget() time.Duration {
	return p.cfg.Provider.Timeout
}

func (p *Pipeline) progressf(format string, args ...any) {
	if p.Progress != nil {
		fmt.Fprintf(p.Progress, format, args...)
	}
}
