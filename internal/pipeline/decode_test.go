// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

func TestDecodeProposalFromJSONString(t *testing.T) {
	p, err := DecodeProposal(`{
		"title": "Galactic Archaeology with Gaia",
		"subfields": ["Galactic Astronomy"],
		"idea": {"Research Question": "Q", "Methodology": "M"},
		"version": 1
	}`)
	if err != nil {
		t.Fatalf("DecodeProposal failed: %v", err)
	}
	if p.Title != "Galactic Archaeology with Gaia" || p.Version != 1 {
		t.Errorf("decoded %+v", p)
	}
	if p.Section("Research Question") != "Q" {
		t.Errorf("section = %q", p.Section("Research Question"))
	}
	// Decoding restores section completeness.
	if got := p.Idea["Background"]; !strings.Contains(got, "Missing") {
		t.Errorf("missing section not filled: %q", got)
	}
	if len(p.Idea) != len(types.SectionNames) {
		t.Errorf("idea has %d sections", len(p.Idea))
	}
}

func TestDecodeProposalFromMap(t *testing.T) {
	p, err := DecodeProposal(map[string]any{
		"title": "Mapped Proposal",
		"idea":  map[string]any{"Methodology": "M"},
	})
	if err != nil {
		t.Fatalf("DecodeProposal failed: %v", err)
	}
	if p.Title != "Mapped Proposal" || p.Section("Methodology") != "M" {
		t.Errorf("decoded %+v", p)
	}
}

func TestDecodeProposalPassthrough(t *testing.T) {
	in := types.Proposal{Title: "Typed", Idea: map[string]string{"Methodology": "M"}}
	p, err := DecodeProposal(in)
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Typed" {
		t.Errorf("title = %q", p.Title)
	}
	if len(p.Idea) != len(types.SectionNames) {
		t.Error("passthrough should still normalize sections")
	}
}

func TestDecodeProposalMalformed(t *testing.T) {
	_, err := DecodeProposal("not json at all")
	var malformed *types.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %v", err)
	}
}

func TestDecodeProposalNil(t *testing.T) {
	if _, err := DecodeProposal(nil); err == nil {
		t.Fatal("expected error for nil input")
	}
}

func TestDecodeExpertFeedback(t *testing.T) {
	fb, err := DecodeExpertFeedback([]byte(`{
		"scientific_validity": {"strengths": ["s"], "concerns": ["c"]},
		"recommendations": ["r1", "r2"],
		"summary": "fine"
	}`))
	if err != nil {
		t.Fatalf("DecodeExpertFeedback failed: %v", err)
	}
	if len(fb.Recommendations) != 2 || fb.Summary != "fine" {
		t.Errorf("decoded %+v", fb)
	}
}

func TestDecodeLiteratureFeedback(t *testing.T) {
	fb, err := DecodeLiteratureFeedback(nil)
	if err != nil || fb != nil {
		t.Fatalf("nil input should stay nil, got %+v, %v", fb, err)
	}

	typed := &types.LiteratureFeedback{NoveltyScore: 7.5}
	fb, err = DecodeLiteratureFeedback(typed)
	if err != nil || fb != typed {
		t.Fatalf("pointer passthrough failed: %v", err)
	}

	fb, err = DecodeLiteratureFeedback(`{"novelty_score": 6.5, "summary": "s"}`)
	if err != nil {
		t.Fatalf("DecodeLiteratureFeedback failed: %v", err)
	}
	if fb.NoveltyScore != 6.5 {
		t.Errorf("score = %v", fb.NoveltyScore)
	}
}
