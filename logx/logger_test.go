package logx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, "": LevelInfo, "warning": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).With(String("component", "engine"))
	l.Info("frame", Int("actors", 13), Float64("t", 1.5))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "frame", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "engine", ctx["component"])
	assert.EqualValues(t, 13, ctx["actors"])
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classroom.log")
	l, err := New(path, LevelInfo)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Warn("visible", Bool("paused", true))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.NotContains(t, string(data), "hidden")
}

func TestEmptyPathIsNop(t *testing.T) {
	l, err := New("", LevelDebug)
	require.NoError(t, err)
	l.Error("dropped")
}
