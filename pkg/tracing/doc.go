// Package tracing provides lightweight spans for timing operations.
package tracing
