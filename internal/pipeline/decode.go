// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// decodeInto accepts the value forms front ends hand the orchestrator: an
// already-typed value, a decoded JSON map, a JSON-encoded string, or raw
// bytes. Callers should not need to know which form they hold.
func decodeInto(v any, out any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("nil input")
	case string:
		if err := json.Unmarshal([]byte(val), out); err != nil {
			return &types.MalformedOutputError{Raw: val, Err: err}
		}
		return nil
	case []byte:
		if err := json.Unmarshal(val, out); err != nil {
			return &types.MalformedOutputError{Raw: string(val), Err: err}
		}
		return nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("re-encoding input: %w", err)
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &types.MalformedOutputError{Raw: string(data), Err: err}
		}
		return nil
	}
}

// DecodeProposal converts a front end's proposal input into a typed
// Proposal. Section completeness is restored on the way in.
func DecodeProposal(v any) (types.Proposal, error) {
	if p, ok := v.(types.Proposal); ok {
		p.Idea = types.NormalizeSections(p.Idea, nil)
		return p, nil
	}
	var p types.Proposal
	if err := decodeInto(v, &p); err != nil {
		return types.Proposal{}, fmt.Errorf("decoding proposal: %w", err)
	}
	p.Idea = types.NormalizeSections(p.Idea, nil)
	return p, nil
}

// DecodeExpertFeedback converts a front end's expert feedback input into a
// typed ExpertFeedback.
func DecodeExpertFeedback(v any) (types.ExpertFeedback, error) {
	if fb, ok := v.(types.ExpertFeedback); ok {
		return fb, nil
	}
	var fb types.ExpertFeedback
	if err := decodeInto(v, &fb); err != nil {
		return types.ExpertFeedback{}, fmt.Errorf("decoding expert feedback: %w", err)
	}
	return fb, nil
}

// DecodeLiteratureFeedback converts a front end's literature feedback input
// into a typed LiteratureFeedback. Nil input stays nil: literature feedback
// is optional everywhere it is accepted.
func DecodeLiteratureFeedback(v any) (*types.LiteratureFeedback, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case *types.LiteratureFeedback:
		return val, nil
	case types.LiteratureFeedback:
		return &val, nil
	}
	var fb types.LiteratureFeedback
	if err := decodeInto(v, &fb); err != nil {
		return nil, fmt.Errorf("decoding literature feedback: %w", err)
	}
	return &fb, nil
}
