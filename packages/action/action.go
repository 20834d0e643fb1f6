package action

import (
	"context"
	"fmt"
)

// Kind identifies what an action produces and how it is classified.
type Kind int

const (
	// KindStep is a plain step returning a context fragment.
	KindStep Kind = iota
	// KindRequest is a step returning a Resource; only the Resource's
	// snapshot participates in context merging.
	KindRequest
	// KindTest marks an action whose invocation registers test bodies
	// with the host runner. It is invoked once, at registration time.
	KindTest
	// KindGroup bundles actions intended to run around each test.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindStep:
		return "step"
	case KindRequest:
		return "request"
	case KindTest:
		return "test"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// StepFunc produces a context fragment from the current context.
type StepFunc func(ctx context.Context, c Context) (Context, error)

// RequestFunc performs a request against the current context and returns
// the Resource it produced.
type RequestFunc func(ctx context.Context, c Context) (Resource, error)

// Resource is the result of a request action. Snapshot is the context
// fragment merged into the chain; Assert invokes the capability named by
// kind with the expected value and the current context, returning an error
// on mismatch or unknown kind.
type Resource interface {
	Snapshot() Context
	Assert(kind string, expected any, c Context) error
}

// Action is one step of a test pipeline. The Kind field drives both
// classification and result unwrapping; Name is a title, nothing more.
type Action struct {
	Name string
	Kind Kind

	step     StepFunc
	request  RequestFunc
	register func()
	group    []*Action
}

// Step builds a context-producing action.
func Step(name string, fn StepFunc) *Action {
	return &Action{Name: name, Kind: KindStep, step: fn}
}

// Request builds a resource-producing action.
func Request(name string, fn RequestFunc) *Action {
	return &Action{Name: name, Kind: KindRequest, request: fn}
}

// Test builds an action that registers test bodies when invoked. The
// register function runs once, synchronously, at case-registration time.
func Test(name string, register func()) *Action {
	return &Action{Name: name, Kind: KindTest, register: register}
}

// Group bundles actions meant to run before or after each test.
func Group(name string, actions ...*Action) *Action {
	return &Action{Name: name, Kind: KindGroup, group: actions}
}

// Run executes a step or request action against c. For requests the
// returned value is the Resource; callers that only need the context
// fragment should use Snapshot. Test and group actions are not runnable.
func (a *Action) Run(ctx context.Context, c Context) (any, error) {
	switch a.Kind {
	case KindStep:
		return a.step(ctx, c)
	case KindRequest:
		return a.request(ctx, c)
	default:
		return nil, fmt.Errorf("action %q: kind %s is not runnable", a.Name, a.Kind)
	}
}

// Register invokes a test action's registration function.
func (a *Action) Register() {
	if a.Kind == KindTest && a.register != nil {
		a.register()
	}
}

// Actions returns the members of a group action.
func (a *Action) Actions() []*Action {
	return a.group
}

// Fragment unwraps an action result into the context fragment to merge:
// the snapshot for a Resource, the value itself for a Context. Anything
// else merges nothing.
func Fragment(result any) Context {
	switch v := result.(type) {
	case Resource:
		if v == nil {
			return nil
		}
		return v.Snapshot()
	case Context:
		return v
	case map[string]any:
		return Context(v)
	default:
		return nil
	}
}
