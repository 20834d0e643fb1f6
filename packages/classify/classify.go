// Package classify partitions an ordered action list into lifecycle groups.
package classify

import "github.com/abdul-hamid-achik/flowspec/packages/action"

// Groups is the five-way partition of a case's actions. Before runs once
// ahead of all tests; BeforeEach/AfterEach hold group actions intended to
// run around each test; Tests holds the test-body registrars; After runs
// once at the end. BeforeEach, AfterEach and After are computed here but
// the case builder does not yet wire them to the host runner.
type Groups struct {
	Before     []*action.Action
	BeforeEach []*action.Action
	Tests      []*action.Action
	AfterEach  []*action.Action
	After      []*action.Action
}

// Len returns the total number of classified actions.
func (g *Groups) Len() int {
	return len(g.Before) + len(g.BeforeEach) + len(g.Tests) + len(g.AfterEach) + len(g.After)
}

// Split classifies actions left to right. A test action lands in Tests and
// flips the state from pre-test to post-test; group actions land in
// BeforeEach or AfterEach depending on that state, everything else in
// Before or After. No action is dropped or reordered within its bucket.
// An empty input yields empty groups.
func Split(actions []*action.Action) *Groups {
	groups := &Groups{}
	seenTest := false

	for _, a := range actions {
		switch {
		case a.Kind == action.KindTest:
			groups.Tests = append(groups.Tests, a)
			seenTest = true
		case a.Kind == action.KindGroup && !seenTest:
			groups.BeforeEach = append(groups.BeforeEach, a)
		case a.Kind == action.KindGroup:
			groups.AfterEach = append(groups.AfterEach, a)
		case !seenTest:
			groups.Before = append(groups.Before, a)
		default:
			groups.After = append(groups.After, a)
		}
	}

	return groups
}
