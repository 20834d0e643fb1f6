package httpres

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_RendersTemplatesAndCaptures(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc","user":{"id":42}}`))
	}))
	defer server.Close()

	req := NewRequest("login", "GET", server.URL+"/users/{{id}}",
		WithHeader("Authorization", "Bearer {{key}}"),
		WithCapture("token", "body.token"),
		WithCapture("userID", "body.user.id"),
		WithCapture("code", "status"),
	)

	result, err := req.Run(context.Background(), action.Context{"id": 42, "key": "k1"})
	require.NoError(t, err)

	assert.Equal(t, "/users/42", gotPath)
	assert.Equal(t, "Bearer k1", gotAuth)

	res, ok := result.(action.Resource)
	require.True(t, ok)
	snapshot := res.Snapshot()
	assert.Equal(t, "abc", snapshot["token"])
	assert.Equal(t, float64(42), snapshot["userID"])
	assert.Equal(t, 200, snapshot["code"])
}

func TestNewRequest_BodyAndMethod(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	req := NewRequest("create", "POST", server.URL+"/things",
		WithBody(`{"name": "{{name}}"}`),
	)

	result, err := req.Run(context.Background(), action.Context{"name": "widget"})
	require.NoError(t, err)

	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "widget", gotBody["name"])

	res := result.(*Resource)
	assert.NoError(t, res.Assert("status", 201, nil))
}

func TestNewRequest_MissingCaptureOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"present":1}`))
	}))
	defer server.Close()

	req := NewRequest("get", "GET", server.URL,
		WithCapture("present", "body.present"),
		WithCapture("absent", "body.nothing"),
	)

	result, err := req.Run(context.Background(), nil)
	require.NoError(t, err)

	snapshot := result.(action.Resource).Snapshot()
	assert.Contains(t, snapshot, "present")
	assert.NotContains(t, snapshot, "absent")
}

func TestNewRequest_ConnectionError(t *testing.T) {
	req := NewRequest("down", "GET", "http://127.0.0.1:1/never")
	_, err := req.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestClient_ValidateURL(t *testing.T) {
	c := NewClient()
	_, err := c.Do(context.Background(), "GET", "ftp://example.com", nil, "")
	assert.Error(t, err)

	_, err = c.Do(context.Background(), "GET", "http://", nil, "")
	assert.Error(t, err)
}
