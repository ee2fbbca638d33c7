package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gkfreq/internal/config"
	"gkfreq/internal/logger"
)

func TestOpenFileBackend(t *testing.T) {
	cfg := &config.Config{
		SettingsBackend: config.SettingsBackendFile,
		SettingsPath:    filepath.Join(t.TempDir(), "settings"),
	}

	store, err := Open(cfg, logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	fs, ok := store.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, cfg.SettingsPath, fs.Path())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(&config.Config{SettingsBackend: "etcd"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestParseBool(t *testing.T) {
	for _, raw := range []string{"1", "true", "YES", " on "} {
		v, ok := parseBool(raw)
		assert.True(t, ok, raw)
		assert.True(t, v, raw)
	}
	for _, raw := range []string{"0", "false", "no", "off"} {
		v, ok := parseBool(raw)
		assert.True(t, ok, raw)
		assert.False(t, v, raw)
	}
	_, ok := parseBool("2")
	assert.False(t, ok)
}
