// Package logging builds the structured loggers used across the suite.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	// Level is the minimum level (debug, info, warn, error)
	Level string
	// Format is text, json or logfmt
	Format string
	// Output defaults to os.Stderr
	Output io.Writer
	// Prefix names the component
	Prefix string
	// ReportTimestamp adds timestamps to entries
	ReportTimestamp bool
}

// DefaultOptions returns info-level text logging to stderr.
func DefaultOptions() Options {
	return Options{
		Level:           "info",
		Format:          "text",
		Output:          os.Stderr,
		ReportTimestamp: true,
	}
}

// ParseLevel converts a level name, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

func parseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// New creates a logger from opts.
func New(opts Options) *log.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return log.NewWithOptions(opts.Output, log.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          opts.Prefix,
		TimeFormat:      time.RFC3339,
		ReportTimestamp: opts.ReportTimestamp,
		Formatter:       parseFormatter(opts.Format),
	})
}

// Discard returns a logger that drops everything. Tests use it.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Printf adapts a logger to printf-style hooks such as the chromedp logf.
func Printf(l *log.Logger) func(string, ...interface{}) {
	return func(format string, args ...interface{}) {
		l.Debugf(format, args...)
	}
}
