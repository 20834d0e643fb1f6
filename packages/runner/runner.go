package runner

import (
	"context"
	"fmt"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
	"github.com/abdul-hamid-achik/flowspec/packages/classify"
	"github.com/abdul-hamid-achik/flowspec/packages/compose"
	"github.com/abdul-hamid-achik/flowspec/packages/template"
	"golang.org/x/sync/errgroup"
)

// SuiteKey is the binding name a suite variant is rendered and merged
// under.
const SuiteKey = "suite"

// Assertion pairs an assertion-kind name with its expected value.
type Assertion struct {
	Kind     string
	Expected any
}

// Assertions is an ordered assertion list; assertions are applied in
// insertion order, nothing more is guaranteed.
type Assertions []Assertion

// Builder registers flowspec cases with a host runner. The case context
// lives behind a shared handle: the one-time setup hook writes it, test
// bodies built by Suite and Suites read it at run time.
type Builder struct {
	host        Host
	handle      *action.Handle
	concurrency int
}

// Option configures a Builder.
type Option func(*Builder)

// WithConcurrency caps how many parallel suite requests are in flight at
// once. Zero or negative means unlimited.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		b.concurrency = n
	}
}

// New returns a builder registering against host.
func New(host Host, opts ...Option) *Builder {
	b := &Builder{host: host, handle: action.NewHandle()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Context returns the builder's shared context handle.
func (b *Builder) Context() *action.Handle {
	return b.handle
}

// Case registers a named test case. Actions are classified into lifecycle
// groups; the pre-test scalar group becomes a one-time setup hook that
// replaces the shared context with the result of running it as a series.
// Each test action is then invoked once to register its test bodies.
// A case with no test actions registers nothing at all.
//
// BeforeEach, AfterEach and After groups are classified but not yet
// registered with the host; callers must not assume per-test hooks run.
func (b *Builder) Case(title string, actions ...*action.Action) {
	b.handle.Reset()
	groups := classify.Split(actions)
	if len(groups.Tests) == 0 {
		return
	}

	b.host.Describe(title, func() {
		if len(groups.Before) > 0 {
			before := compose.Series(groups.Before...)
			b.host.BeforeAll(func(ctx context.Context) error {
				next, err := before(ctx, b.handle.Get())
				if err != nil {
					return fmt.Errorf("case %q setup: %w", title, err)
				}
				b.handle.Set(next)
				return nil
			})
		}

		for _, t := range groups.Tests {
			t.Register()
		}
	})
}

// Suite builds a test action that, at run time, issues the request against
// the current context and applies every assertion to the resulting
// resource in insertion order. Assertion failures surface through the
// host's own failure channel.
func (b *Builder) Suite(title string, request *action.Action, asserts Assertions) *action.Action {
	return action.Test(title, func() {
		b.host.It(title, func(ctx context.Context) error {
			current := b.handle.Get()
			res, err := b.performRequest(ctx, request, current)
			if err != nil {
				return err
			}
			return applyAssertions(res, asserts, current, nil)
		})
	})
}

// Suites builds a test action that repeats one suite over a list of
// variants. Titles and string-valued expected values are rendered with
// the variant bound under SuiteKey. Sequential mode issues the request
// inside each test; parallel mode issues all requests concurrently from a
// one-time setup hook and each test asserts against its cached resource.
func (b *Builder) Suites(title string, variants []any, request *action.Action, asserts Assertions, parallel bool) *action.Action {
	if parallel {
		return b.parallelSuites(title, variants, request, asserts)
	}

	return action.Test(title, func() {
		for _, v := range variants {
			v := v
			bindings := map[string]any{SuiteKey: v}
			b.host.It(template.Render(title, bindings), func(ctx context.Context) error {
				seed := b.handle.Get().Merge(action.Context{SuiteKey: v})
				res, err := b.performRequest(ctx, request, seed)
				if err != nil {
					return err
				}
				return applyAssertions(res, asserts, seed, bindings)
			})
		}
	})
}

func (b *Builder) parallelSuites(title string, variants []any, request *action.Action, asserts Assertions) *action.Action {
	return action.Test(title, func() {
		resources := make([]action.Resource, len(variants))

		b.host.BeforeAll(func(ctx context.Context) error {
			g, gctx := errgroup.WithContext(ctx)
			if b.concurrency > 0 {
				g.SetLimit(b.concurrency)
			}
			for i, v := range variants {
				i, v := i, v
				g.Go(func() error {
					seed := b.handle.Get().Merge(action.Context{SuiteKey: v})
					res, err := b.performRequest(gctx, request, seed)
					if err != nil {
						return err
					}
					resources[i] = res
					return nil
				})
			}
			return g.Wait()
		})

		for i, v := range variants {
			i, v := i, v
			bindings := map[string]any{SuiteKey: v}
			b.host.It(template.Render(title, bindings), func(ctx context.Context) error {
				res := resources[i]
				if res == nil {
					return fmt.Errorf("no cached resource for variant %v", v)
				}
				seed := b.handle.Get().Merge(action.Context{SuiteKey: v})
				return applyAssertions(res, asserts, seed, bindings)
			})
		}
	})
}

func (b *Builder) performRequest(ctx context.Context, request *action.Action, c action.Context) (action.Resource, error) {
	result, err := request.Run(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("request %q: %w", request.Name, err)
	}
	res, ok := result.(action.Resource)
	if !ok {
		return nil, fmt.Errorf("action %q did not produce a resource", request.Name)
	}
	return res, nil
}

// applyAssertions invokes each assertion capability in insertion order.
// The expected value is always the first capability argument; when
// bindings are present, string-valued expectations are rendered first.
func applyAssertions(res action.Resource, asserts Assertions, c action.Context, bindings map[string]any) error {
	for _, a := range asserts {
		expected := a.Expected
		if s, ok := expected.(string); ok && bindings != nil {
			expected = template.Render(s, bindings)
		}
		if err := res.Assert(a.Kind, expected, c); err != nil {
			return err
		}
	}
	return nil
}
