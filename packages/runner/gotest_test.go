package runner

import (
	"context"
	"testing"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
	"github.com/stretchr/testify/assert"
)

func TestGoTest_CaseRegistration(t *testing.T) {
	host := NewGoTest(t)
	b := New(host)

	var observed string
	b.Case("token case",
		action.Step("seed", func(ctx context.Context, c action.Context) (action.Context, error) {
			return action.Context{"token": "abc"}, nil
		}),
		action.Test("tests", func() {
			host.It("reads token", func(ctx context.Context) error {
				observed = b.Context().Get().GetString("token")
				return nil
			})
		}),
	)

	// Subtests above have completed by the time Describe returns.
	assert.Equal(t, "abc", observed)
}

func TestGoTest_SuitesSequential(t *testing.T) {
	host := NewGoTest(t)
	b := New(host)

	variantsSeen := []any{}
	request := action.Request("req", func(ctx context.Context, c action.Context) (action.Resource, error) {
		variantsSeen = append(variantsSeen, c.Get(SuiteKey))
		return &fakeResource{}, nil
	})

	b.Case("variants",
		b.Suites("variant {{suite}}", []any{1, 2}, request, nil, false),
	)

	assert.Equal(t, []any{1, 2}, variantsSeen)
}
