package runner

import (
	"context"
	"testing"
)

type goTestEntry struct {
	title string
	body  func(ctx context.Context) error
}

// GoTest adapts a *testing.T to the Host contract. Describe maps to a
// subtest that first runs every BeforeAll hook, then runs the registered
// tests as nested subtests in registration order, so setup always settles
// before the first test body.
type GoTest struct {
	t     *testing.T
	hooks []func(ctx context.Context) error
	each  []func(ctx context.Context) error
	tests []goTestEntry
}

// NewGoTest returns a Host backed by t.
func NewGoTest(t *testing.T) *GoTest {
	return &GoTest{t: t}
}

func (h *GoTest) Describe(title string, register func()) {
	outer := h.t
	outer.Run(title, func(t *testing.T) {
		h.t = t
		h.hooks, h.each, h.tests = nil, nil, nil

		register()

		ctx := context.Background()
		for _, hook := range h.hooks {
			if err := hook(ctx); err != nil {
				t.Fatalf("setup: %v", err)
			}
		}

		for _, entry := range h.tests {
			entry := entry
			t.Run(entry.title, func(t *testing.T) {
				for _, each := range h.each {
					if err := each(ctx); err != nil {
						t.Fatalf("before each: %v", err)
					}
				}
				if err := entry.body(ctx); err != nil {
					t.Fatal(err)
				}
			})
		}
	})
	h.t = outer
}

func (h *GoTest) BeforeAll(hook func(ctx context.Context) error) {
	h.hooks = append(h.hooks, hook)
}

func (h *GoTest) BeforeEach(hook func(ctx context.Context) error) {
	h.each = append(h.each, hook)
}

func (h *GoTest) It(title string, body func(ctx context.Context) error) {
	h.tests = append(h.tests, goTestEntry{title: title, body: body})
}
