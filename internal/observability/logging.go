// Package observability provides the structured logger used across lapwatch
// and forwards errors to Sentry when error reporting is configured.
package observability

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

type Tags map[string]string

// NewTags builds Tags from slog.Attr values and string/value pairs.
// Incomplete pairs and values of other types are skipped.
func NewTags(args ...any) Tags {
	tags := Tags{}
	for len(args) > 0 {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				return tags
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

type CoreLoggerParams struct {
	Reporter *Reporter
	Tags     Tags
}

// CoreLogger is an slog.Logger that also reports captured errors.
type CoreLogger struct {
	*slog.Logger
	baseTags Tags
	reporter *Reporter
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	tags := Tags{}
	var args []any
	for key, value := range params.Tags {
		args = append(args, slog.String(key, value))
		tags[key] = value
	}

	return &CoreLogger{
		Logger:   logger.With(args...),
		baseTags: tags,
		reporter: params.Reporter,
	}
}

// NewHandler returns an slog handler that writes logfmt lines to w.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
		Prefix:          "lapwatch",
	})
}

// tagsFor merges args with the base tags. Base tags win.
func (cl *CoreLogger) tagsFor(args ...any) Tags {
	tags := NewTags(args...)
	for key, value := range cl.baseTags {
		tags[key] = value
	}
	return tags
}

// With returns a derived logger that includes the given attributes.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	return &CoreLogger{
		Logger:   cl.Logger.With(args...),
		baseTags: cl.baseTags,
		reporter: cl.reporter,
	}
}

// CaptureError logs an error and reports it.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	cl.Error(err.Error(), args...)

	if cl.reporter != nil {
		cl.reporter.CaptureException(err, cl.tagsFor(args...))
	}
}

// CaptureWarn logs a warning and reports it.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)

	if cl.reporter != nil {
		cl.reporter.CaptureMessage(msg, cl.tagsFor(args...))
	}
}

// Reraise reports a recovered panic and panics again.
//
// Must be deferred directly.
func (cl *CoreLogger) Reraise(args ...any) {
	if r := recover(); r != nil {
		cl.Error("panic", "value", r)
		if cl.reporter != nil {
			cl.reporter.Reraise(r, cl.tagsFor(args...))
		}
		panic(r)
	}
}

// Tags returns the tags attached to every report.
func (cl *CoreLogger) Tags() Tags {
	return cl.baseTags
}

// NewNoOpLogger returns a logger that discards all messages.
//
// Used for testing.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}
