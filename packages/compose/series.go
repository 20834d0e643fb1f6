package compose

import (
	"context"
	"fmt"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
)

// Func is a composed action chain. It consumes a starting context and
// returns the accumulated context, or the first error encountered.
type Func func(ctx context.Context, c action.Context) (action.Context, error)

// Series composes actions into a single Func that runs them in listed
// order. Action i receives the context produced by action i-1; the first
// action receives the starting context (empty if nil). Each result is
// unwrapped via action.Fragment before merging, so request actions
// contribute only their Resource's snapshot. Later steps win on key
// collision. If any action fails the chain aborts immediately: no later
// action runs and no partial context is returned.
func Series(actions ...*action.Action) Func {
	return func(ctx context.Context, c action.Context) (action.Context, error) {
		acc := c.Clone()
		for _, a := range actions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result, err := a.Run(ctx, acc)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", a.Name, err)
			}
			acc = acc.Merge(action.Fragment(result))
		}
		return acc, nil
	}
}
