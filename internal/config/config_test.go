package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stockroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
db: /var/lib/stockroom/lab.sqlite3
addr: 127.0.0.1:9000
log_level: debug
low_stock_interval: 15m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/stockroom/lab.sqlite3", cfg.DB)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.LowStockInterval)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestLoadZeroIntervalDisablesSweep(t *testing.T) {
	cfg, err := Load(writeConfig(t, "low_stock_interval: 0s\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.LowStockInterval)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":          "db: [unterminated\n",
		"unknown level":     "log_level: loud\n",
		"negative interval": "low_stock_interval: -1m\n",
		"empty addr":        "addr: \"\"\n",
		"zero upload limit": "max_upload_bytes: 0\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
