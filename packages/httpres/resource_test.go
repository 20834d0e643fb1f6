package httpres

import (
	"testing"
	"time"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
	"github.com/stretchr/testify/assert"
)

func jsonResponse(body string) *Response {
	return &Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json", "X-Request-Id": "r1"},
		Body:       []byte(body),
		Duration:   15 * time.Millisecond,
	}
}

func TestResource_Assert(t *testing.T) {
	res := NewResource(jsonResponse(`{"status":"ok","items":[{"id":1},{"id":2}],"count":2}`), nil)

	tests := []struct {
		name     string
		kind     string
		expected any
		wantErr  bool
	}{
		{"status match", "status", 200, false},
		{"status mismatch", "status", 404, true},
		{"status numeric string", "status", "200", false},
		{"body path equals", "body.status", "ok", false},
		{"body path mismatch", "body.status", "nope", true},
		{"body path numeric coercion", "body.count", "2", false},
		{"bracket notation", "body.items[1].id", 2, false},
		{"missing body path", "body.missing", "x", true},
		{"exists", "exists", "items.0.id", false},
		{"exists missing", "exists", "items.9", true},
		{"contains", "contains", `"status":"ok"`, false},
		{"contains missing", "contains", "absent", true},
		{"matches", "matches", `"count":\d+`, false},
		{"matches invalid pattern", "matches", `(`, true},
		{"header equals", "header.X-Request-Id", "r1", false},
		{"header mismatch", "header.X-Request-Id", "r2", true},
		{"duration under limit", "duration", 1000, false},
		{"duration over limit", "duration", 1, true},
		{"unknown kind", "nope", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := res.Assert(tc.kind, tc.expected, action.Context{})
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResource_AssertEquals(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		res := NewResource(jsonResponse(`{"a":1}`), nil)
		assert.NoError(t, res.Assert("equals", map[string]any{"a": float64(1)}, nil))
		assert.Error(t, res.Assert("equals", map[string]any{"a": float64(2)}, nil))
	})

	t.Run("plain text body", func(t *testing.T) {
		res := NewResource(&Response{
			StatusCode: 200,
			Headers:    map[string]string{"Content-Type": "text/plain"},
			Body:       []byte("pong"),
		}, nil)
		assert.NoError(t, res.Assert("equals", "pong", nil))
	})
}

func TestResource_AssertSchema(t *testing.T) {
	res := NewResource(jsonResponse(`{"name":"flow","count":2}`), nil)

	schema := `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"},
			"count": {"type": "number"}
		}
	}`
	assert.NoError(t, res.Assert("schema", schema, nil))

	strict := `{"type": "object", "required": ["missing"]}`
	assert.Error(t, res.Assert("schema", strict, nil))
}

func TestResource_Snapshot(t *testing.T) {
	res := NewResource(jsonResponse(`{}`), action.Context{"token": "abc"})
	assert.Equal(t, action.Context{"token": "abc"}, res.Snapshot())

	empty := NewResource(jsonResponse(`{}`), nil)
	assert.NotNil(t, empty.Snapshot())
}
