// Package runner registers flowspec cases with a host test runner.
//
// The Builder classifies a case's actions into lifecycle groups, wires the
// one-time setup group into the host's BeforeAll hook via series
// composition, and invokes each test action to register its test bodies.
// Suite builds a single request-plus-assertions test body; Suites repeats
// one over a list of variants, sequentially or with all requests issued
// concurrently up front.
//
// Host is the consumed runner contract. Two implementations ship with the
// package: GoTest adapts a *testing.T, and Local executes registered cases
// in process and reports results (used by the CLI).
package runner
