package template

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// WarnFunc receives a message for each placeholder that fails to resolve.
type WarnFunc func(format string, args ...any)

// Renderer substitutes {{...}} placeholders with values from bindings,
// environment variables and builtin functions. Safe for concurrent use.
type Renderer struct {
	mu       sync.RWMutex
	funcs    *Registry
	warnFunc WarnFunc
}

// NewRenderer returns a renderer with the default builtin functions.
func NewRenderer() *Renderer {
	return &Renderer{funcs: NewRegistry()}
}

// SetWarnFunc sets a callback invoked for unresolved placeholders.
func (r *Renderer) SetWarnFunc(fn WarnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnFunc = fn
}

func (r *Renderer) warn(format string, args ...any) {
	r.mu.RLock()
	fn := r.warnFunc
	r.mu.RUnlock()
	if fn != nil {
		fn(format, args...)
	}
}

// Funcs returns the builtin function registry for extension.
func (r *Renderer) Funcs() *Registry {
	return r.funcs
}

// Render substitutes every placeholder in input. Lookup order per
// placeholder: bindings, $ENV variables, builtin function calls.
// Unresolved placeholders stay verbatim.
func (r *Renderer) Render(input string, bindings map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(input, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])

		if val, ok := bindings[expr]; ok {
			return fmt.Sprintf("%v", val)
		}

		if strings.HasPrefix(expr, "$") {
			if val := os.Getenv(expr[1:]); val != "" {
				return val
			}
			r.warn("unresolved environment variable: %s", expr)
			return match
		}

		if strings.Contains(expr, "(") {
			if result, ok := r.funcs.Call(expr); ok {
				return fmt.Sprintf("%v", result)
			}
			r.warn("unresolved function call: %s", expr)
			return match
		}

		r.warn("unresolved binding: %s", expr)
		return match
	})
}

var defaultRenderer = NewRenderer()

// Render substitutes placeholders using the package-level renderer.
func Render(input string, bindings map[string]any) string {
	return defaultRenderer.Render(input, bindings)
}
