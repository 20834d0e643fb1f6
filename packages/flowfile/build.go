package flowfile

import (
	"context"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
	"github.com/abdul-hamid-achik/flowspec/packages/httpres"
	"github.com/abdul-hamid-achik/flowspec/packages/runner"
	"github.com/abdul-hamid-achik/flowspec/packages/template"
)

// Register compiles every case in file into actions and registers them
// with b. Requests go through client; a nil client uses the package
// default.
func Register(b *runner.Builder, file *File, client *httpres.Client) {
	for _, c := range file.Cases {
		actions := make([]*action.Action, 0, len(c.Setup)+len(c.Tests))
		for _, s := range c.Setup {
			actions = append(actions, buildStep(s, client))
		}
		for _, t := range c.Tests {
			actions = append(actions, buildTest(b, t, client))
		}
		b.Case(c.Name, actions...)
	}
}

func buildStep(s *Step, client *httpres.Client) *action.Action {
	if s.Set != nil {
		values := s.Set
		return action.Step(s.Name, func(ctx context.Context, c action.Context) (action.Context, error) {
			bindings := map[string]any(c)
			fragment := action.Context{}
			for k, v := range values {
				if str, ok := v.(string); ok {
					fragment[k] = template.Render(str, bindings)
				} else {
					fragment[k] = v
				}
			}
			return fragment, nil
		})
	}
	return buildRequest(s.Name, s.Request, s.Capture, client)
}

func buildRequest(name string, spec *RequestSpec, captures map[string]string, client *httpres.Client) *action.Action {
	var opts []httpres.Option
	if client != nil {
		opts = append(opts, httpres.WithClient(client))
	}
	if spec.Body != "" {
		opts = append(opts, httpres.WithBody(spec.Body))
	}
	for k, v := range spec.Headers {
		opts = append(opts, httpres.WithHeader(k, v))
	}
	for n, src := range captures {
		opts = append(opts, httpres.WithCapture(n, src))
	}
	return httpres.NewRequest(name, spec.method(), spec.URL, opts...)
}

func buildTest(b *runner.Builder, t *Test, client *httpres.Client) *action.Action {
	request := buildRequest(t.Name, t.Request, t.Capture, client)

	asserts := make(runner.Assertions, 0, len(t.Expect))
	for _, e := range t.Expect {
		for kind, expected := range e {
			asserts = append(asserts, runner.Assertion{Kind: kind, Expected: expected})
		}
	}

	if len(t.Variants) > 0 {
		return b.Suites(t.Name, t.Variants, request, asserts, t.Parallel)
	}
	return b.Suite(t.Name, request, asserts)
}
