package httpres

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/flowspec/packages/action"
	"github.com/xeipuuv/gojsonschema"
)

// Resource wraps a response as an assertable resource. Snapshot returns
// the values extracted by the request's capture specs.
type Resource struct {
	response *Response
	snapshot action.Context
}

// NewResource wraps resp with the given snapshot.
func NewResource(resp *Response, snapshot action.Context) *Resource {
	if snapshot == nil {
		snapshot = action.Context{}
	}
	return &Resource{response: resp, snapshot: snapshot}
}

// Response exposes the underlying response.
func (r *Resource) Response() *Response {
	return r.response
}

func (r *Resource) Snapshot() action.Context {
	return r.snapshot
}

// Assert dispatches on the assertion-kind name.
//
// Kinds: status, equals (whole body), contains, matches, exists (body
// path), schema (JSON Schema over the body), duration (max milliseconds),
// plus path forms header.<Name> and body.<path> which compare the value
// at that location against expected.
func (r *Resource) Assert(kind string, expected any, c action.Context) error {
	switch {
	case kind == "status":
		return r.assertStatus(expected)
	case kind == "equals":
		return r.assertEquals(expected)
	case kind == "contains":
		return r.assertContains(expected)
	case kind == "matches":
		return r.assertMatches(expected)
	case kind == "exists":
		return r.assertExists(expected)
	case kind == "schema":
		return r.assertSchema(expected)
	case kind == "duration":
		return r.assertDuration(expected)
	case strings.HasPrefix(kind, "header."):
		return r.assertHeader(strings.TrimPrefix(kind, "header."), expected)
	case strings.HasPrefix(kind, "body."):
		return r.assertBodyPath(strings.TrimPrefix(kind, "body."), expected)
	default:
		return fmt.Errorf("unknown assertion kind %q", kind)
	}
}

func (r *Resource) assertStatus(expected any) error {
	want, ok := toFloat64(expected)
	if !ok {
		return fmt.Errorf("status: expected value %v is not numeric", expected)
	}
	if float64(r.response.StatusCode) != want {
		return fmt.Errorf("status: expected %v, got %d", expected, r.response.StatusCode)
	}
	return nil
}

func (r *Resource) assertEquals(expected any) error {
	var actual any = r.response.BodyString()
	if r.response.IsJSON() {
		actual = r.response.JSON().Value()
	}
	if !looseEqual(actual, expected) {
		return fmt.Errorf("equals: expected %v, got %v", expected, actual)
	}
	return nil
}

func (r *Resource) assertContains(expected any) error {
	needle := fmt.Sprintf("%v", expected)
	if !strings.Contains(r.response.BodyString(), needle) {
		return fmt.Errorf("contains: body does not contain %q", needle)
	}
	return nil
}

func (r *Resource) assertMatches(expected any) error {
	pattern, ok := expected.(string)
	if !ok {
		return fmt.Errorf("matches: expected value must be a pattern string")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("matches: invalid pattern %q: %w", pattern, err)
	}
	if !re.MatchString(r.response.BodyString()) {
		return fmt.Errorf("matches: body does not match %q", pattern)
	}
	return nil
}

func (r *Resource) assertExists(expected any) error {
	path, ok := expected.(string)
	if !ok {
		return fmt.Errorf("exists: expected value must be a body path")
	}
	if !r.response.JSON().Get(path).Exists() {
		return fmt.Errorf("exists: body path %q not found", path)
	}
	return nil
}

func (r *Resource) assertSchema(expected any) error {
	var schemaLoader gojsonschema.JSONLoader
	switch v := expected.(type) {
	case string:
		schemaLoader = gojsonschema.NewStringLoader(v)
	default:
		schemaLoader = gojsonschema.NewGoLoader(v)
	}

	docLoader := gojsonschema.NewBytesLoader(r.response.Body)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("schema: body does not validate: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func (r *Resource) assertDuration(expected any) error {
	maxMs, ok := toFloat64(expected)
	if !ok {
		return fmt.Errorf("duration: expected value %v is not numeric", expected)
	}
	if float64(r.response.DurationMs()) > maxMs {
		return fmt.Errorf("duration: took %dms, limit %vms", r.response.DurationMs(), expected)
	}
	return nil
}

func (r *Resource) assertHeader(name string, expected any) error {
	actual := r.response.Header(name)
	if !looseEqual(actual, expected) {
		return fmt.Errorf("header %s: expected %v, got %q", name, expected, actual)
	}
	return nil
}

func (r *Resource) assertBodyPath(path string, expected any) error {
	result := r.response.JSON().Get(convertBracketNotation(path))
	if !result.Exists() {
		return fmt.Errorf("body.%s: path not found", path)
	}
	if !looseEqual(result.Value(), expected) {
		return fmt.Errorf("body.%s: expected %v, got %v", path, expected, result.Value())
	}
	return nil
}

// convertBracketNotation converts array bracket notation to gjson dot
// notation, e.g. "items[0].tags[1]" -> "items.0.tags.1".
func convertBracketNotation(path string) string {
	result := regexp.MustCompile(`\[(\d+)\]`).ReplaceAllString(path, ".$1")
	return strings.TrimPrefix(result, ".")
}

// looseEqual compares values with numeric coercion and, as a last resort,
// string formatting, so template-rendered expectations compare sensibly
// against typed JSON values.
func looseEqual(actual, expected any) bool {
	if reflect.DeepEqual(actual, expected) {
		return true
	}

	actualNum, aOk := toFloat64(actual)
	expectedNum, eOk := toFloat64(expected)
	if aOk && eOk {
		return actualNum == expectedNum
	}

	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
