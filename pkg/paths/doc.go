// Package paths locates files relative to source files, working directories
// and repository roots.
package paths
