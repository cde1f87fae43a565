// Package pkmerrors provides error definitions for version resolution and
// manifest handling.
//
// This package defines standardized sentinel errors so callers can classify
// failures with [errors.Is], regardless of how much context was wrapped around
// them on the way up.
package pkmerrors
