package config

import (
	"path/filepath"
	"testing"
	"time"

	"edadash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_PORT", "GIN_MODE", "LOG_LEVEL", "DATA_PATH", "DATA_ROOT", "MAX_UPLOAD_MB", "UPLOAD_TTL", "DATE_COLUMN", "COUNT_COLUMN", "SESSION_COLUMN", "LABEL_COLUMN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "8081", cfg.API.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, "INFO", cfg.Server.LogLevel)
	assert.Equal(t, 50, cfg.Data.MaxUploadMB)
	assert.Equal(t, int64(50*1024*1024), cfg.Data.MaxUploadBytes())
	assert.Equal(t, 30*time.Minute, cfg.Data.UploadTTL)
	assert.Empty(t, cfg.Data.Root)
	assert.Equal(t, "Workshop Date", cfg.Columns.Date)
	assert.Equal(t, "Entry Count", cfg.Columns.Count)
	assert.Equal(t, "Time in Session", cfg.Columns.Session)
	assert.Equal(t, "OTO/Non OTO", cfg.Columns.Label)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("UPLOAD_TTL", "5m")
	t.Setenv("DATE_COLUMN", "Date")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Data.UploadTTL)
	assert.Equal(t, "Date", cfg.Columns.Date)
	assert.Equal(t, 50, cfg.Data.MaxUploadMB, "unparseable ints fall back to the default")
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("GIN_MODE", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDataRoot(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_ROOT", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Data.Root)

	t.Setenv("DATA_ROOT", filepath.Join(dir, "missing"))
	_, err = Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
