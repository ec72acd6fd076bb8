package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := (&Logger{SugaredLogger: zap.New(core).Sugar()}).With("component", "test")

	l.Info("item graded", "id", "abc", "interval_days", 6)
	l.Debug("detail")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "item graded", entry.Message)
	assert.Equal(t, map[string]interface{}{
		"component":     "test",
		"id":            "abc",
		"interval_days": int64(6),
	}, entry.ContextMap())
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PROD", "unknown"} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, l.SugaredLogger)
	}
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		mode      string
		wantDebug bool
	}{
		{"dev", false},
		{"prod", false},
		{"debug", true},
		{"", false},
	}
	for _, tt := range tests {
		l, err := New(tt.mode)
		require.NoError(t, err, tt.mode)
		got := l.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel)
		if got != tt.wantDebug {
			t.Errorf("New(%q) debug enabled = %v, want %v", tt.mode, got, tt.wantDebug)
		}
		assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(zapcore.InfoLevel), tt.mode)
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := Nop()
	assert.Same(t, l, OrNop(l))
	OrNop(nil).Error("discarded")
}
