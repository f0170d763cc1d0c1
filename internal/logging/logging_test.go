package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRouterSplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(newLevelRouter(&stdout, &stderr, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("checked out", "item", "MIC-1", "quantity", 2)
	logger.Warn("low stock", "item", "GLV-M")
	logger.Error("import failed")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "item=MIC-1 quantity=2")
	assert.Contains(t, stdout.String(), "low stock")
	assert.NotContains(t, stdout.String(), "import failed")
	assert.Contains(t, stderr.String(), "import failed")
}

func TestLevelRouterKeepsAttrs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(newLevelRouter(&stdout, &stderr, slog.LevelDebug)).
		With("component", "alerts").WithGroup("item")

	logger.Debug("tick", "sku", "A-1")
	logger.Error("boom", "sku", "B-2")

	assert.Contains(t, stdout.String(), "component=alerts item.sku=A-1")
	assert.Contains(t, stderr.String(), "component=alerts item.sku=B-2")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetupWritesLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "stockroom.log")
	cleanup, err := Setup("warn", path)
	require.NoError(t, err)

	slog.Info("not written")
	slog.Warn("written", "item", "X-1")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written item=X-1")
	assert.NotContains(t, string(data), "not written")
}
