// Package httpres provides HTTP-backed request actions and resources.
//
// NewRequest builds a request action: at run time it renders the URL,
// headers and body against the current context, performs the call and
// wraps the response in a Resource. The Resource's snapshot holds the
// values extracted by capture specs; its assertion capabilities cover
// status, body equality and path lookups, headers, regular expressions,
// JSON Schema validation and response time.
package httpres
