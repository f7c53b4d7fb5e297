// Package logger provides a thin wrapper around zerolog.Logger with the
// constructors and context helpers used throughout mailmirror.
//
// The Logger type embeds zerolog.Logger so the full zerolog API is available
// directly. Code that runs inside a sync pass should obtain its logger via
// FromContext so that pass-scoped fields (pass_id, account) are carried
// through.
package logger

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a JSON logger writing to os.Stderr with a "role"
// field and a "func" caller field carrying the fully-qualified function
// name. Stderr is used rather than stdout because the terminal UI owns
// stdout.
func NewLogger(role string) *Logger {
	return newLogger(role, os.Stderr)
}

// NewFileLogger constructs the same logger as [NewLogger] but appends to
// the file at path. If the file cannot be opened the logger falls back to
// os.Stderr.
func NewFileLogger(role, path string) *Logger {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(role, os.Stderr)
	}
	return newLogger(role, f)
}

func newLogger(role string, w io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithContext stores the logger in ctx so downstream code can recover it
// with [FromContext].
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the zerolog.Logger stored in ctx. If none has been
// attached zerolog returns its global logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
