package flowfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed flow file.
type File struct {
	Path  string  `yaml:"-"`
	Cases []*Case `yaml:"cases"`
}

// Case is one named test case.
type Case struct {
	Name  string  `yaml:"name"`
	Setup []*Step `yaml:"setup"`
	Tests []*Test `yaml:"tests"`
}

// Step is a setup action: either static values merged into the context,
// or a request whose captures are merged.
type Step struct {
	Name    string            `yaml:"name"`
	Set     map[string]any    `yaml:"set"`
	Request *RequestSpec      `yaml:"request"`
	Capture map[string]string `yaml:"capture"`
}

// RequestSpec describes an HTTP request. All string fields are templates.
type RequestSpec struct {
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
	Body    string            `yaml:"body"`
}

// Test is a suite: one request plus ordered expectations, optionally
// repeated over variants.
type Test struct {
	Name     string            `yaml:"name"`
	Request  *RequestSpec      `yaml:"request"`
	Capture  map[string]string `yaml:"capture"`
	Variants []any             `yaml:"variants"`
	Parallel bool              `yaml:"parallel"`
	Expect   []map[string]any  `yaml:"expect"`
}

// ParseFile reads and validates a flow file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.Path = path
	return file, nil
}

// Parse parses and validates flow file content.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing flow file: %w", err)
	}
	if err := file.validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

func (f *File) validate() error {
	if len(f.Cases) == 0 {
		return fmt.Errorf("flow file has no cases")
	}

	for i, c := range f.Cases {
		if c.Name == "" {
			return fmt.Errorf("case %d: missing name", i)
		}
		for j, s := range c.Setup {
			if s.Set == nil && s.Request == nil {
				return fmt.Errorf("case %q setup %d: needs set or request", c.Name, j)
			}
			if s.Request != nil && s.Request.URL == "" {
				return fmt.Errorf("case %q setup %d: request needs a url", c.Name, j)
			}
		}
		for j, t := range c.Tests {
			if t.Name == "" {
				return fmt.Errorf("case %q test %d: missing name", c.Name, j)
			}
			if t.Request == nil || t.Request.URL == "" {
				return fmt.Errorf("case %q test %q: request needs a url", c.Name, t.Name)
			}
			for k, e := range t.Expect {
				if len(e) != 1 {
					return fmt.Errorf("case %q test %q: expect entry %d must have exactly one key", c.Name, t.Name, k)
				}
			}
		}
	}
	return nil
}

// method returns the request method, defaulting to GET.
func (r *RequestSpec) method() string {
	if r.Method == "" {
		return "GET"
	}
	return r.Method
}
