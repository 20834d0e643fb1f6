// Package template renders {{...}} placeholder strings against a set of
// bindings.
//
// Placeholders resolve in order: bindings, $ENVIRONMENT variables, builtin
// function calls. Unresolved placeholders are left in place so failures
// are visible in output rather than silently blanked.
//
// Builtin functions:
//   - uuid(): random UUID v4
//   - now(): current time in RFC 3339
//   - timestamp(): current Unix timestamp
//   - random(min, max): random integer in range
//   - randomString(length): random alphanumeric string
//   - base64(value): base64 encode a string
package template
