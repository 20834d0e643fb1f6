package runner

import (
	"context"
	"time"

	"github.com/abdul-hamid-achik/flowspec/packages/metrics"
)

// RunResult aggregates the outcome of executing every registered case.
type RunResult struct {
	Cases    []*CaseResult
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Title    string
	SetupErr error
	Tests    []*TestResult
	Duration time.Duration
}

// TestResult is the outcome of one test body.
type TestResult struct {
	Title    string
	Passed   bool
	Skipped  bool
	Err      error
	Duration time.Duration
}

type localCase struct {
	title string
	hooks []func(ctx context.Context) error
	each  []func(ctx context.Context) error
	tests []localTest
}

type localTest struct {
	title string
	body  func(ctx context.Context) error
}

// Local is an in-process Host. Registration collects cases; Run executes
// them: hooks first, then tests in registration order, honoring the
// setup-settles-before-tests contract. A failed setup hook fails the
// whole group and its tests are skipped.
type Local struct {
	cases    []*localCase
	current  *localCase
	bail     bool
	recorder *metrics.Recorder
}

// LocalOption configures a Local host.
type LocalOption func(*Local)

// WithBail stops the run at the first failing case.
func WithBail(bail bool) LocalOption {
	return func(l *Local) {
		l.bail = bail
	}
}

// WithRecorder records per-test latencies into rec.
func WithRecorder(rec *metrics.Recorder) LocalOption {
	return func(l *Local) {
		l.recorder = rec
	}
}

// NewLocal returns an empty in-process host.
func NewLocal(opts ...LocalOption) *Local {
	l := &Local{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) Describe(title string, register func()) {
	c := &localCase{title: title}
	l.cases = append(l.cases, c)
	l.current = c
	register()
	l.current = nil
}

func (l *Local) BeforeAll(hook func(ctx context.Context) error) {
	if l.current != nil {
		l.current.hooks = append(l.current.hooks, hook)
	}
}

func (l *Local) BeforeEach(hook func(ctx context.Context) error) {
	if l.current != nil {
		l.current.each = append(l.current.each, hook)
	}
}

func (l *Local) It(title string, body func(ctx context.Context) error) {
	if l.current != nil {
		l.current.tests = append(l.current.tests, localTest{title: title, body: body})
	}
}

// Run executes all registered cases and returns the aggregated result.
func (l *Local) Run(ctx context.Context) *RunResult {
	start := time.Now()
	result := &RunResult{}

	for _, c := range l.cases {
		cr := l.runCase(ctx, c)
		result.Cases = append(result.Cases, cr)

		failed := cr.SetupErr != nil
		for _, t := range cr.Tests {
			switch {
			case t.Skipped:
				result.Skipped++
			case t.Passed:
				result.Passed++
			default:
				result.Failed++
				failed = true
			}
		}
		if cr.SetupErr != nil {
			result.Failed++
		}

		if failed && l.bail {
			break
		}
	}

	result.Duration = time.Since(start)
	return result
}

func (l *Local) runCase(ctx context.Context, c *localCase) *CaseResult {
	start := time.Now()
	cr := &CaseResult{Title: c.title}

	for _, hook := range c.hooks {
		if err := hook(ctx); err != nil {
			cr.SetupErr = err
			for _, t := range c.tests {
				cr.Tests = append(cr.Tests, &TestResult{Title: t.title, Skipped: true})
			}
			cr.Duration = time.Since(start)
			return cr
		}
	}

	for _, t := range c.tests {
		cr.Tests = append(cr.Tests, l.runTest(ctx, c, t))
	}

	cr.Duration = time.Since(start)
	return cr
}

func (l *Local) runTest(ctx context.Context, c *localCase, t localTest) *TestResult {
	tr := &TestResult{Title: t.title}
	start := time.Now()

	err := func() error {
		for _, each := range c.each {
			if err := each(ctx); err != nil {
				return err
			}
		}
		return t.body(ctx)
	}()

	tr.Duration = time.Since(start)
	tr.Passed = err == nil
	tr.Err = err

	if l.recorder != nil {
		l.recorder.Record(c.title, tr.Duration)
	}
	return tr
}
