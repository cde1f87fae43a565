// Package log builds [slog.Handler] values from user-facing level and format
// strings.
package log
