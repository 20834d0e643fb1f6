package action

import "sync"

// Handle is a shared reference to a test case's context. The case builder
// writes it once from the one-time setup hook; test bodies read it at run
// time. The host runner's hook ordering guarantees the write settles
// before any read, the mutex covers callers that run tests concurrently.
type Handle struct {
	mu sync.RWMutex
	c  Context
}

// NewHandle returns a handle holding an empty context.
func NewHandle() *Handle {
	return &Handle{c: Context{}}
}

// Get returns the current context.
func (h *Handle) Get() Context {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.c
}

// Set replaces the current context as a single assignment.
func (h *Handle) Set(c Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c == nil {
		c = Context{}
	}
	h.c = c
}

// Reset replaces the current context with an empty one.
func (h *Handle) Reset() {
	h.Set(Context{})
}
