package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags, out := log.Flags(), log.Writer()
	log.SetFlags(0)
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetFlags(flags)
		log.SetOutput(out)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, level)

	level, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerFiltersByLevel(t *testing.T) {
	buf := captureLog(t)
	l := New("Loader", LevelInfo)

	l.Debug("hidden %d", 1)
	l.Info("loaded %d rows", 4)
	l.Warn("bad dates")

	assert.Equal(t, "[Loader] loaded 4 rows\n[Loader] WARN bad dates\n", buf.String())

	l.SetLevel(LevelError)
	buf.Reset()
	l.Info("hidden")
	l.Error("failed")
	assert.Equal(t, "[Loader] ERROR failed\n", buf.String())
}

func TestSetDefaultLevel(t *testing.T) {
	l := For("Test")
	t.Cleanup(func() { SetDefaultLevel(LevelInfo) })

	SetDefaultLevel(LevelDebug)
	assert.True(t, l.Enabled(LevelDebug))
	assert.True(t, For("Other").Enabled(LevelDebug))

	SetDefaultLevel(LevelWarn)
	assert.False(t, l.Enabled(LevelInfo))
}
