package flowfile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abdul-hamid-achik/flowspec/packages/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		file, err := Parse([]byte(`
cases:
  - name: user flows
    setup:
      - name: fixtures
        set: {base: "https://api.test"}
      - name: login
        request: {method: POST, url: "{{base}}/login"}
        capture: {token: body.token}
    tests:
      - name: profile
        request: {method: GET, url: "{{base}}/me"}
        expect:
          - status: 200
          - body.email: "u@example.com"
`))
		require.NoError(t, err)
		require.Len(t, file.Cases, 1)

		c := file.Cases[0]
		assert.Len(t, c.Setup, 2)
		require.Len(t, c.Tests, 1)
		assert.Equal(t, "GET", c.Tests[0].Request.method())
		assert.Len(t, c.Tests[0].Expect, 2)
	})

	t.Run("method defaults to GET", func(t *testing.T) {
		file, err := Parse([]byte(`
cases:
  - name: c
    tests:
      - name: t
        request: {url: "http://x"}
`))
		require.NoError(t, err)
		assert.Equal(t, "GET", file.Cases[0].Tests[0].Request.method())
	})

	tests := []struct {
		name string
		yaml string
	}{
		{"no cases", `cases: []`},
		{"case without name", "cases:\n  - tests: []"},
		{"test without request", "cases:\n  - name: c\n    tests:\n      - name: t"},
		{"setup without set or request", "cases:\n  - name: c\n    setup:\n      - name: s"},
		{"multi-key expect entry", `
cases:
  - name: c
    tests:
      - name: t
        request: {url: "http://x"}
        expect:
          - {status: 200, equals: ok}
`},
		{"bad yaml", `cases: [`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRegister_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/login":
			_, _ = w.Write([]byte(`{"token":"tok-1"}`))
		case "/me":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{}`))
				return
			}
			_, _ = w.Write([]byte(`{"email":"u@example.com"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	file, err := Parse([]byte(`
cases:
  - name: user flows
    setup:
      - name: fixtures
        set: {base: "` + server.URL + `"}
      - name: login
        request: {method: POST, url: "{{base}}/login"}
        capture: {token: body.token}
    tests:
      - name: profile
        request:
          method: GET
          url: "{{base}}/me"
          headers: {Authorization: "Bearer {{token}}"}
        expect:
          - status: 200
          - body.email: "u@example.com"
`))
	require.NoError(t, err)

	host := runner.NewLocal()
	Register(runner.New(host), file, nil)

	result := host.Run(context.Background())
	require.Len(t, result.Cases, 1)
	assert.Equal(t, 1, result.Passed)
	assert.Zero(t, result.Failed)
	require.NoError(t, result.Cases[0].SetupErr)
}

func TestRegister_Variants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + r.URL.Query().Get("v") + `"}`))
	}))
	defer server.Close()

	file, err := Parse([]byte(`
cases:
  - name: variants
    tests:
      - name: "variant {{suite}}"
        variants: [1, 2]
        request: {url: "` + server.URL + `/?v={{suite}}"}
        expect:
          - body.id: "{{suite}}"
`))
	require.NoError(t, err)

	host := runner.NewLocal()
	Register(runner.New(host), file, nil)

	result := host.Run(context.Background())
	require.Len(t, result.Cases, 1)
	require.Len(t, result.Cases[0].Tests, 2)
	assert.Equal(t, "variant 1", result.Cases[0].Tests[0].Title)
	assert.Equal(t, "variant 2", result.Cases[0].Tests[1].Title)
	assert.Equal(t, 2, result.Passed)
}
