package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format is a log output format.
type Format string

const (
	JSONFormat   Format = "json"
	TextFormat   Format = "text"
	LogfmtFormat Format = "logfmt"
)

var (
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// CreateHandlerWithStrings creates a [slog.Handler] writing to w, by strings.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	format, err := GetFormat(logFormat)
	if err != nil {
		return nil, err
	}

	return CreateHandler(w, level, format), nil
}

// CreateHandler creates a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	var formatter charmlog.Formatter

	switch format {
	case JSONFormat:
		formatter = charmlog.JSONFormatter
	case LogfmtFormat:
		formatter = charmlog.LogfmtFormatter
	default:
		formatter = charmlog.TextFormatter
	}

	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		Formatter:       formatter,
		ReportTimestamp: true,
	})
	l.SetColorProfile(colorProfile(w))

	return l
}

// GetLevel parses a log level. Levels slog has no equivalent for are mapped
// to the nearest one.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
	}
}

// GetFormat parses a log format.
func GetFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(format)); f {
	case JSONFormat, LogfmtFormat, TextFormat:
		return f, nil
	case "":
		return TextFormat, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
	}
}

func colorProfile(w io.Writer) termenv.Profile {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return termenv.Ascii
	}

	return termenv.EnvColorProfile()
}
