package compose

import (
	"context"
	"fmt"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Options configures a parallel composition.
type Options struct {
	// Concurrency caps the number of actions in flight at once.
	// Zero or negative means unlimited.
	Concurrency int
	// Rate limits action starts per second. Zero means unlimited.
	Rate float64
}

// Parallel composes actions into a single Func that runs them all
// concurrently with no limits. See ParallelWith.
func Parallel(actions ...*action.Action) Func {
	return ParallelWith(Options{}, actions...)
}

// ParallelWith composes actions into a single Func that runs them
// concurrently. Every action receives the starting context, captured once;
// results are not threaded between siblings. Once all actions settle,
// fragments are merged left to right in list order (last listed wins on
// key collision) and layered on top of the starting context. If any
// action fails, the group waits for the remaining actions to settle and
// the first-observed error is returned; no context is returned.
func ParallelWith(opts Options, actions ...*action.Action) Func {
	return func(ctx context.Context, c action.Context) (action.Context, error) {
		start := c.Clone()
		fragments := make([]action.Context, len(actions))

		g, gctx := errgroup.WithContext(ctx)
		if opts.Concurrency > 0 {
			g.SetLimit(opts.Concurrency)
		}

		var limiter *rate.Limiter
		if opts.Rate > 0 {
			limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
		}

		for i, a := range actions {
			i, a := i, a
			g.Go(func() error {
				if limiter != nil {
					if err := limiter.Wait(gctx); err != nil {
						return err
					}
				}
				result, err := a.Run(gctx, start)
				if err != nil {
					return fmt.Errorf("action %q: %w", a.Name, err)
				}
				fragments[i] = action.Fragment(result)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		merged := start
		for _, fragment := range fragments {
			merged = merged.Merge(fragment)
		}
		return merged, nil
	}
}
