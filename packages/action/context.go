package action

// Context is the accumulated test state threaded through an action chain.
// Values are arbitrary; keys from later steps override earlier ones.
type Context map[string]any

// Merge returns a new Context containing c's entries with fragment's
// entries layered on top. Neither input is mutated. A nil receiver or a
// nil fragment is treated as empty.
func (c Context) Merge(fragment Context) Context {
	merged := make(Context, len(c)+len(fragment))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range fragment {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of the context.
func (c Context) Clone() Context {
	clone := make(Context, len(c))
	for k, v := range c {
		clone[k] = v
	}
	return clone
}

// Get returns the value for key, or nil if absent.
func (c Context) Get(key string) any {
	return c[key]
}

// GetString returns the value for key as a string, or "" if absent or not
// a string.
func (c Context) GetString(key string) string {
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}
