package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResource struct {
	snapshot Context
}

func (r *fakeResource) Snapshot() Context { return r.snapshot }

func (r *fakeResource) Assert(kind string, expected any, c Context) error { return nil }

func TestContext_Merge(t *testing.T) {
	t.Run("later keys win", func(t *testing.T) {
		base := Context{"a": 1, "b": 1}
		merged := base.Merge(Context{"b": 2, "c": 3})

		assert.Equal(t, Context{"a": 1, "b": 2, "c": 3}, merged)
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		base := Context{"a": 1}
		fragment := Context{"a": 2}
		_ = base.Merge(fragment)

		assert.Equal(t, 1, base["a"])
		assert.Equal(t, 2, fragment["a"])
	})

	t.Run("nil receiver and fragment", func(t *testing.T) {
		var base Context
		merged := base.Merge(nil)
		assert.NotNil(t, merged)
		assert.Empty(t, merged)
	})
}

func TestAction_Run(t *testing.T) {
	t.Run("step returns fragment", func(t *testing.T) {
		a := Step("seed", func(ctx context.Context, c Context) (Context, error) {
			return Context{"token": "abc"}, nil
		})

		out, err := a.Run(context.Background(), Context{})
		require.NoError(t, err)
		assert.Equal(t, Context{"token": "abc"}, Fragment(out))
	})

	t.Run("request returns resource", func(t *testing.T) {
		res := &fakeResource{snapshot: Context{"x": 1}}
		a := Request("fetch", func(ctx context.Context, c Context) (Resource, error) {
			return res, nil
		})

		out, err := a.Run(context.Background(), Context{})
		require.NoError(t, err)
		assert.Equal(t, Context{"x": 1}, Fragment(out))
	})

	t.Run("test action is not runnable", func(t *testing.T) {
		a := Test("tests", func() {})
		_, err := a.Run(context.Background(), Context{})
		assert.Error(t, err)
	})
}

func TestFragment(t *testing.T) {
	assert.Nil(t, Fragment(nil))
	assert.Nil(t, Fragment(42))
	assert.Equal(t, Context{"k": 1}, Fragment(map[string]any{"k": 1}))
}

func TestHandle(t *testing.T) {
	h := NewHandle()
	assert.Empty(t, h.Get())

	h.Set(Context{"token": "abc"})
	assert.Equal(t, "abc", h.Get().GetString("token"))

	h.Set(nil)
	assert.NotNil(t, h.Get())

	h.Set(Context{"a": 1})
	h.Reset()
	assert.Empty(t, h.Get())
}
