// Package logging builds the slog handler used by the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
	JSONFormat   = "json"
)

// CreateHandler returns a charmbracelet/log backed [slog.Handler] writing to w.
func CreateHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	formatter, err := ParseFormatter(format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:     lvl,
		Formatter: formatter,
		Prefix:    "ideconfig",
	}), nil
}

// ParseLevel maps a level name to a charmbracelet/log level; "" means info.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return log.InfoLevel, nil
	case "warning":
		return log.WarnLevel, nil
	}

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// ParseFormatter maps text, logfmt or json to a charmbracelet/log formatter.
func ParseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", TextFormat:
		return log.TextFormatter, nil
	case LogfmtFormat:
		return log.LogfmtFormatter, nil
	case JSONFormat:
		return log.JSONFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q", format)
	}
}
