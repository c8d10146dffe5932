// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider exposes a uniform text-completion interface over
// interchangeable LLM backends. The backends differ only in authentication
// scheme and wire format; behavior is identical. Retry policy lives with the
// calling stage, not here, because stages differ in what they can degrade to.
package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// Client issues a single text completion. Implementations are safe for
// concurrent use.
type Client interface {
	Name() string
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// New constructs the client for the configured backend. It returns a
// *types.ConfigurationError when the backend selector is unrecognized or the
// credential is absent, before any network call is attempted.
func New(cfg types.ProviderConfig) (Client, error) {
	switch cfg.Backend {
	case types.ProviderClaude, types.ProviderOpenAI, types.ProviderGemini:
	default:
		return nil, &types.ConfigurationError{Reason: fmt.Sprintf("unknown completion backend %q", cfg.Backend)}
	}

	if cfg.APIKey == "" {
		return nil, &types.ConfigurationError{Reason: fmt.Sprintf("missing credential for backend %q", cfg.Backend)}
	}

	switch cfg.Backend {
	case types.ProviderClaude:
		return newClaude(cfg), nil
	case types.ProviderOpenAI:
		return newOpenAI(cfg), nil
	default:
		return newGemini(cfg), nil
	}
}

// classify converts a transport error into the taxonomy the stages branch
// on: deadline overruns become TimeoutError, everything else an
// UpstreamServiceError.
func classify(service string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &types.TimeoutError{Op: service + " completion", Err: err}
	}
	return &types.UpstreamServiceError{Service: service, Err: err}
}
