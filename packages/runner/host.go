package runner

import "context"

// Host is the registration surface of a BDD-style test runner. The
// contract flowspec relies on: BeforeAll hooks fully settle (including
// failures surfacing as group failure) before any test in the same group
// executes, and tests run in registration order.
type Host interface {
	// Describe opens a named group; register runs synchronously and
	// performs all hook and test registration for the group.
	Describe(title string, register func())

	// BeforeAll registers a one-time hook that runs before every test
	// of the current group.
	BeforeAll(hook func(ctx context.Context) error)

	// BeforeEach registers a hook that runs before each test of the
	// current group. Declared for hosts that support per-test hooks;
	// the case builder does not call it yet.
	BeforeEach(hook func(ctx context.Context) error)

	// It registers a test with a title and body. A body error is a
	// test failure.
	It(title string, body func(ctx context.Context) error)
}
