// Package config loads flowspec project configuration.
package config
