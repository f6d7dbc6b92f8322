// Package logger is the kit's logging facade over zap. Call sites pass
// plain maps so packages never import zap themselves.
package logger

import (
	"os"
	"sort"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Fields are structured key/values attached to one entry.
type Fields = map[string]interface{}

// Logger is what every package in the kit logs through.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	Sync() error
}

// ParseLevel maps a config level name to a zap level. Unknown names log at
// info.
func ParseLevel(name string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// New builds the zap core for the CLI: JSON lines on stderr for "json",
// a console layout otherwise.
func New(level, format string) *zap.Logger {
	var enc zapcore.Encoder
	if format == "json" {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		enc = zapcore.NewConsoleEncoder(ec)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
}

type kitLogger struct {
	z *zap.Logger
}

// NewStructured is the Logger the CLI runs with.
func NewStructured(level, format string) Logger {
	return &kitLogger{z: New(level, format)}
}

// FromZap wraps an existing zap logger, e.g. one built on an observer core.
func FromZap(z *zap.Logger) Logger {
	return &kitLogger{z: z}
}

// NewTestLogger routes entries to t.Log.
func NewTestLogger(t testing.TB) Logger {
	return &kitLogger{z: zaptest.NewLogger(t)}
}

// NewNoOpLogger discards everything.
func NewNoOpLogger() Logger {
	return &kitLogger{z: zap.NewNop()}
}

func (l *kitLogger) Debug(msg string, fields Fields) { l.write(zapcore.DebugLevel, msg, fields) }
func (l *kitLogger) Info(msg string, fields Fields)  { l.write(zapcore.InfoLevel, msg, fields) }
func (l *kitLogger) Warn(msg string, fields Fields)  { l.write(zapcore.WarnLevel, msg, fields) }
func (l *kitLogger) Error(msg string, fields Fields) { l.write(zapcore.ErrorLevel, msg, fields) }

func (l *kitLogger) WithFields(fields Fields) Logger {
	return &kitLogger{z: l.z.With(toZap(fields)...)}
}

func (l *kitLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return &kitLogger{z: l.z.With(zap.Error(err))}
}

func (l *kitLogger) Sync() error {
	return l.z.Sync()
}

// write skips field conversion when the level is disabled.
func (l *kitLogger) write(lvl zapcore.Level, msg string, fields Fields) {
	if ce := l.z.Check(lvl, msg); ce != nil {
		ce.Write(toZap(fields)...)
	}
}

// toZap orders fields by key so console lines read the same run to run.
func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, len(keys))
	for i, k := range keys {
		out[i] = zap.Any(k, fields[k])
	}
	return out
}
