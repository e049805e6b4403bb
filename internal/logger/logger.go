// Package logger provides structured logging for huntstore
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with huntstore-specific functionality
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Pretty     bool   // pretty-print for development
	Output     io.Writer
	WithCaller bool
}

// NewLogger creates a new structured logger
func NewLogger(cfg Config) *Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	// Pretty printing for development
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", "huntstore").
		Logger()

	if cfg.WithCaller {
		zlog = zlog.With().Caller().Logger()
	}

	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything, for tests and library
// callers that bring no logging of their own.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// GetZerolog returns the underlying zerolog logger
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zlog
}

// Info logs an info message
func (l *Logger) Info(msg string) *zerolog.Event {
	return l.zlog.Info().Str("msg", msg)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) *zerolog.Event {
	return l.zlog.Debug().Str("msg", msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) *zerolog.Event {
	return l.zlog.Warn().Str("msg", msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) *zerolog.Event {
	return l.zlog.Error().Str("msg", msg)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string) *zerolog.Event {
	return l.zlog.Fatal().Str("msg", msg)
}

// StoreLogger returns a logger for backend store operations
func (l *Logger) StoreLogger(operation string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "backend").
			Str("operation", operation).
			Logger(),
	}
}

// ValidationLogger returns a logger for validation of one document kind
func (l *Logger) ValidationLogger(kind string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "validation").
			Str("kind", kind).
			Logger(),
	}
}

// LogBackendOp logs a backend store operation with structured fields
func (l *Logger) LogBackendOp(operation, key string, duration time.Duration, err error) {
	event := l.zlog.Debug().
		Str("component", "backend").
		Str("operation", operation).
		Str("key", key).
		Dur("duration_ms", duration)

	if err != nil {
		event = l.zlog.Error().
			Str("component", "backend").
			Str("operation", operation).
			Str("key", key).
			Dur("duration_ms", duration).
			Err(err)
	}

	event.Msg("Backend operation completed")
}

// LogMigration logs an applied or failed document migration
func (l *Logger) LogMigration(kind, from, to string, applied []string, err error) {
	event := l.zlog.Info().
		Str("component", "migration").
		Str("kind", kind).
		Str("from", from).
		Str("to", to).
		Strs("applied", applied)

	if err != nil {
		event = l.zlog.Error().
			Str("component", "migration").
			Str("kind", kind).
			Str("from", from).
			Str("to", to).
			Strs("applied", applied).
			Err(err)
	}

	event.Msg("Document migration completed")
}

// LogWriteBack logs the outcome of a best-effort post-migration write-back
func (l *Logger) LogWriteBack(key string, err error) {
	if err != nil {
		l.zlog.Warn().
			Str("component", "registry").
			Str("key", key).
			Err(err).
			Msg("Write-back of migrated document failed")
		return
	}

	l.zlog.Info().
		Str("component", "registry").
		Str("key", key).
		Msg("Migrated document written back")
}
