// Package action defines the building blocks of a flowspec test case.
//
// An Action is an asynchronous step in a test pipeline. Steps produce
// context fragments, requests produce a Resource (a context snapshot plus
// named assertion capabilities), test actions register test bodies with a
// host runner, and groups bundle actions meant to run around each test.
//
// Context is the accumulated key/value state threaded through a pipeline.
// Merging never mutates: every step produces a new Context, and later
// steps win on key collision.
package action
