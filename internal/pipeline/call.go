// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"time"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// callBounded runs fn with a wall-clock budget. When the budget expires the
// call is abandoned: the goroutine's eventual result is discarded, not
// awaited, so a hung backend cannot wedge the orchestrator. A budget of zero
// means no bound beyond the caller's context.
func callBounded[T any](ctx context.Context, budget time.Duration, op string, fn func(context.Context) (T, error)) (T, error) {
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		value, err := fn(ctx)
		ch <- result{value: value, err: err}
	}()

	select {
	case res := <-ch:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		return zero, &types.TimeoutError{Op: op, Err: ctx.Err()}
	}
}
