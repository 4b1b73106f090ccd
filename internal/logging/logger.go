package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used across the kernel's ambient
// components (configuration loading, metrics registration).
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, args ...any)
	Println(args ...any)
}

// Field is a structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates a field under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ─────────────────────────────────────────────────────────────────────────────
// Zerolog backend
// ─────────────────────────────────────────────────────────────────────────────

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger returns a zerolog logger writing to stderr with
// timestamps, tagged with the "bignum" component.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "bignum")
}

// NewLogger returns a zerolog logger writing JSON lines to w, tagged with
// the given component.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// Info logs at info level.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

// Error logs at error level with err attached.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs at debug level.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

// Println logs its arguments at info level, space separated.
func (z *ZerologAdapter) Println(args ...any) {
	z.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// ─────────────────────────────────────────────────────────────────────────────
// Standard library backend
// ─────────────────────────────────────────────────────────────────────────────

// StdLoggerAdapter implements Logger on a *log.Logger, for embedding the
// kernel in programs that already use the standard logger.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a standard logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

// Info logs with an [INFO] prefix.
func (s *StdLoggerAdapter) Info(msg string, fields ...Field) {
	s.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error logs with an [ERROR] prefix and the error text.
func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
}

// Debug logs with a [DEBUG] prefix.
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	s.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Printf forwards to the standard logger.
func (s *StdLoggerAdapter) Printf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

// Println forwards to the standard logger.
func (s *StdLoggerAdapter) Println(args ...any) {
	s.logger.Println(args...)
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return NewZerologAdapter(zerolog.Nop()) }
