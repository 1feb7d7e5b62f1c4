package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-contacts/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	return cfg
}

func restoreLog(t *testing.T) {
	out, flags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	})
}

func TestSetupLoggingWithoutFileDiscards(t *testing.T) {
	restoreLog(t)
	cfg := testConfig(t)
	cfg.Log.File = ""

	closeLog, err := setupLogging(cfg)
	require.NoError(t, err)
	defer closeLog()
	assert.Equal(t, io.Discard, log.Writer())
}

func TestSetupLoggingAppendsToFile(t *testing.T) {
	restoreLog(t)
	path := filepath.Join(t.TempDir(), "contacts.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0o644))
	cfg := testConfig(t)
	cfg.Log.File = path

	closeLog, err := setupLogging(cfg)
	require.NoError(t, err)
	log.Print("started")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "earlier\n")
	assert.Contains(t, string(data), "started")
}
