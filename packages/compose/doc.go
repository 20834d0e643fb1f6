// Package compose provides the series and parallel composition operators.
//
// Both operators reduce a list of actions to a single Func that threads a
// context through the chain. Series runs actions strictly in order, each
// seeing the context produced by its predecessor. Parallel runs actions
// concurrently against the starting context and merges their fragments in
// list order once all have settled, so merge results are deterministic
// regardless of completion order.
package compose
