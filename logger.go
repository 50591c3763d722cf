package definitions

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"strings"
)

type LogFields map[string]any

type loggerWithFields interface {
	WithFields(LogFields) Logger
}

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// NewLogger returns the default Logger writing `[LEVEL] message {k=v}` lines to out.
// A nil writer falls back to stdout.
func NewLogger(out io.Writer) Logger {
	if out == nil {
		out = os.Stdout
	}
	return &defaultLogger{out: out}
}

type defaultLogger struct {
	out    io.Writer
	fields LogFields
}

func (d *defaultLogger) Debug(format string, args ...any) {
	d.log("DEBUG", format, args...)
}

func (d *defaultLogger) Info(format string, args ...any) {
	d.log("INFO", format, args...)
}

func (d *defaultLogger) Error(format string, args ...any) {
	d.log("ERROR", format, args...)
}

func (d *defaultLogger) WithFields(fields LogFields) Logger {
	if len(fields) == 0 {
		return d
	}

	merged := make(LogFields, len(d.fields)+len(fields))
	maps.Copy(merged, d.fields)
	maps.Copy(merged, fields)

	return &defaultLogger{out: d.out, fields: merged}
}

func (d *defaultLogger) log(level string, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if len(d.fields) == 0 {
		fmt.Fprintf(d.out, "[%s] %s\n", level, message)
		return
	}

	fmt.Fprintf(d.out, "[%s] %s %s\n", level, message, d.formatFields())
}

func (d *defaultLogger) formatFields() string {
	if len(d.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(d.fields))
	for k := range d.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, d.fields[key]))
	}

	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func withLogFields(logger Logger, fields LogFields) Logger {
	if lf, ok := logger.(loggerWithFields); ok {
		return lf.WithFields(fields)
	}
	return logger
}
