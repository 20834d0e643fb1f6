// Package output formats run results for display.
package output
