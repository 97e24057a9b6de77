package logger

import (
	"fmt"
	"log/slog"
)

// Logger wraps slog with the scope/function chaining used throughout the
// server. The Err/Error/ErrMsg helpers log and return an error so call sites
// can do `return log.Err("failed to ...", err)` in one statement.
type Logger struct {
	l *slog.Logger
}

func New(scope string) Logger {
	return Logger{l: slog.Default().With("scope", scope)}
}

func (l Logger) Function(name string) Logger {
	return Logger{l: l.l.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{l: l.l.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{l: l.l.With(args...)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.l.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.l.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.l.Warn(msg, args...)
}

// Er logs an error without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.l.Error(msg, append([]any{"error", err}, args...)...)
}

// ErMsg logs an error-level message without an underlying error.
func (l Logger) ErMsg(msg string, args ...any) {
	l.l.Error(msg, args...)
}

// Err logs and returns the error wrapped with the message.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.l.Error(msg, append([]any{"error", err}, args...)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// ErrMsg logs and returns a new error built from the message.
func (l Logger) ErrMsg(msg string, args ...any) error {
	l.l.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

// Error logs and returns a new error built from the message.
func (l Logger) Error(msg string, args ...any) error {
	l.l.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}
