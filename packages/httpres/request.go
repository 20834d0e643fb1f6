package httpres

import (
	"context"
	"strings"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
	"github.com/abdul-hamid-achik/flowspec/packages/template"
)

// Spec describes an HTTP request action. URL, header values and body are
// templates rendered against the current context at run time.
type Spec struct {
	Method   string
	URL      string
	Headers  map[string]string
	Body     string
	Captures map[string]string
	client   *Client
}

// Option configures a request spec.
type Option func(*Spec)

// WithBody sets the request body template.
func WithBody(body string) Option {
	return func(s *Spec) {
		s.Body = body
	}
}

// WithHeader adds a header; the value is a template.
func WithHeader(key, value string) Option {
	return func(s *Spec) {
		if s.Headers == nil {
			s.Headers = make(map[string]string)
		}
		s.Headers[key] = value
	}
}

// WithCapture extracts a value from the response into the resource
// snapshot under name. Sources: "status", "duration", "header.<Name>",
// or a body path like "body.token" (a bare path is a body path).
func WithCapture(name, source string) Option {
	return func(s *Spec) {
		if s.Captures == nil {
			s.Captures = make(map[string]string)
		}
		s.Captures[name] = source
	}
}

// WithClient overrides the default client.
func WithClient(c *Client) Option {
	return func(s *Spec) {
		s.client = c
	}
}

var defaultClient = NewClient()

// NewRequest builds a request action from a spec. At run time the spec's
// templates are rendered with the current context as bindings, the call
// is made and the response wrapped in a Resource whose snapshot holds the
// captured values.
func NewRequest(name, method, url string, opts ...Option) *action.Action {
	spec := &Spec{Method: method, URL: url, client: defaultClient}
	for _, opt := range opts {
		opt(spec)
	}

	return action.Request(name, func(ctx context.Context, c action.Context) (action.Resource, error) {
		bindings := map[string]any(c)

		headers := make(map[string]string, len(spec.Headers))
		for k, v := range spec.Headers {
			headers[k] = template.Render(v, bindings)
		}

		resp, err := spec.client.Do(ctx,
			spec.Method,
			template.Render(spec.URL, bindings),
			headers,
			template.Render(spec.Body, bindings),
		)
		if err != nil {
			return nil, err
		}

		return NewResource(resp, extractCaptures(resp, spec.Captures)), nil
	})
}

// extractCaptures pulls capture sources out of a response. Missing
// sources are simply absent from the snapshot.
func extractCaptures(resp *Response, captures map[string]string) action.Context {
	snapshot := action.Context{}
	for name, source := range captures {
		if value, ok := extract(resp, source); ok {
			snapshot[name] = value
		}
	}
	return snapshot
}

func extract(resp *Response, source string) (any, bool) {
	switch {
	case source == "status":
		return resp.StatusCode, true
	case source == "duration":
		return resp.DurationMs(), true
	case strings.HasPrefix(source, "header."):
		value := resp.Header(strings.TrimPrefix(source, "header."))
		return value, value != ""
	default:
		path := strings.TrimPrefix(source, "body.")
		result := resp.JSON().Get(convertBracketNotation(path))
		if !result.Exists() {
			return nil, false
		}
		return result.Value(), true
	}
}
