package config

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihatemodels/kittyfont/internal/fonts"
)

func TestLoadFromPath_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kittyfont", "config.yaml")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "config file should have been created")

	assert.Equal(t, "kitty", cfg.Kitty.ProcessName)
	assert.Equal(t, "SIGUSR1", cfg.Kitty.ReloadSignal)
	assert.Equal(t, "kitty", cfg.Kitty.Binary)
	assert.Equal(t, "normalized", cfg.Fonts.Strategy)
	assert.Equal(t, 10*time.Second, cfg.Fonts.CommandTimeout)
	assert.Equal(t, "rounded", cfg.UI.Border)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Contains(t, cfg.Kitty.ConfPath, "kitty.conf")
}

func TestLoadFromPath_ReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
kitty:
  conf_path: /tmp/kitty.conf
  process_name: kitty-panel
  reload_signal: USR2
fonts:
  strategy: exact
  command_timeout: 3s
logging:
  level: debug
`), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/kitty.conf", cfg.Kitty.ConfPath)
	assert.Equal(t, "kitty-panel", cfg.Kitty.ProcessName)
	assert.Equal(t, 3*time.Second, cfg.Fonts.CommandTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)

	strategy, err := cfg.Strategy()
	require.NoError(t, err)
	assert.Equal(t, fonts.MatchExact, strategy)

	sig, err := cfg.Signal()
	require.NoError(t, err)
	assert.Equal(t, syscall.SIGUSR2, sig)
}

func TestLoadFromPath_RejectsBadStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fonts:\n  strategy: fuzzy\n"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestSignal(t *testing.T) {
	cfg := Default()

	cfg.Kitty.ReloadSignal = "SIGUSR1"
	sig, err := cfg.Signal()
	require.NoError(t, err)
	assert.Equal(t, syscall.SIGUSR1, sig)

	cfg.Kitty.ReloadSignal = "usr1"
	sig, err = cfg.Signal()
	require.NoError(t, err)
	assert.Equal(t, syscall.SIGUSR1, sig)

	cfg.Kitty.ReloadSignal = "SIGNOPE"
	_, err = cfg.Signal()
	assert.Error(t, err)

	cfg.Kitty.ReloadSignal = ""
	_, err = cfg.Signal()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Kitty.ConfPath = ""
	assert.Error(t, cfg.Validate())
}
