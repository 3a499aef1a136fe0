package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Logger is a thin chained wrapper over slog. Context (package, file,
// function) accumulates as the logger is passed down, so call sites stay
// one-liners.
type Logger struct {
	log *slog.Logger
}

func New(pkg string) Logger {
	return Logger{log: slog.Default().With("package", pkg)}
}

func (l Logger) File(name string) Logger {
	return Logger{log: l.log.With("file", name)}
}

func (l Logger) Function(name string) Logger {
	return Logger{log: l.log.With("function", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{log: l.log.With(args...)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

// Er logs an error without returning one, for paths that continue anyway.
func (l Logger) Er(msg string, err error, args ...any) {
	l.log.Error(msg, append(args, "error", err)...)
}

// ErMsg logs an error-level message without an underlying error value.
func (l Logger) ErMsg(msg string, args ...any) {
	l.log.Error(msg, args...)
}

// Err logs and returns the wrapped error so callers can
// `return log.Err(...)` in one statement.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from msg.
func (l Logger) Error(msg string, args ...any) error {
	l.log.Error(msg, args...)
	return errors.New(msg)
}

func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}

// Init installs the process-wide handler. Development gets human-readable
// text, everything else JSON.
func Init(environment string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if environment == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
