package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.name))
		})
	}
}

func TestNew_EnablesConfiguredLevel(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l := New("warn", format)
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel), format)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel), format)
	}
}

func TestFromZap_FieldsAndError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.WithFields(Fields{"run_id": "abc"}).
		WithError(errors.New("boom")).
		Warn("download failed", Fields{"name": "cat.mp4"})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "download failed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "abc", ctx["run_id"])
	assert.Equal(t, "cat.mp4", ctx["name"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestFromZap_SortsFieldsAndHonoursLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := FromZap(zap.New(core))

	l.Debug("hidden", Fields{"a": 1})
	l.Error("shown", Fields{"zeta": 1, "alpha": 2, "mid": 3})
	l.WithError(nil).Info("no error", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	var keys []string
	for _, f := range entries[0].Context {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, keys)
	assert.Empty(t, entries[1].Context)
}

func TestNoOpLogger(t *testing.T) {
	l := NewNoOpLogger()
	l.Info("ignored", nil)
	assert.NoError(t, l.Sync())
}
