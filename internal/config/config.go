// Package config loads kittyfont's own configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sys/unix"

	"github.com/ihatemodels/kittyfont/internal/embedded"
	"github.com/ihatemodels/kittyfont/internal/fonts"
)

// Config holds all kittyfont settings. It is loaded from
// $XDG_CONFIG_HOME/kittyfont/config.yaml and can be overridden with
// KITTYFONT_* environment variables.
type Config struct {
	Kitty   KittyConfig   `mapstructure:"kitty" yaml:"kitty"`
	Fonts   FontsConfig   `mapstructure:"fonts" yaml:"fonts"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// KittyConfig points at the kitty installation being managed.
type KittyConfig struct {
	// ConfPath is the kitty.conf to read and patch.
	ConfPath string `mapstructure:"conf_path" yaml:"conf_path"`

	// ProcessName is matched against running processes when sending the
	// reload signal.
	ProcessName string `mapstructure:"process_name" yaml:"process_name"`

	// ReloadSignal is the signal delivered after a write. Kitty
	// re-reads its config on SIGUSR1.
	ReloadSignal string `mapstructure:"reload_signal" yaml:"reload_signal"`

	// Binary is the kitty executable used for font introspection.
	Binary string `mapstructure:"binary" yaml:"binary"`
}

// FontsConfig controls enumeration and matching.
type FontsConfig struct {
	// Strategy is the matching policy: "normalized", "exact" or
	// "substring".
	Strategy string `mapstructure:"strategy" yaml:"strategy"`

	// CommandTimeout bounds each external font-listing command.
	CommandTimeout time.Duration `mapstructure:"command_timeout" yaml:"command_timeout"`
}

// UIConfig controls the interactive picker.
type UIConfig struct {
	// Border is the picker border style: "rounded", "normal", "double"
	// or "none".
	Border string `mapstructure:"border" yaml:"border"`
}

// LoggingConfig controls diagnostics on stderr.
type LoggingConfig struct {
	// Level is the log level ("debug", "info", "warn", "error").
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns a Config with the shipped default values.
func Default() *Config {
	return &Config{
		Kitty: KittyConfig{
			ConfPath:     "~/.config/kitty/kitty.conf",
			ProcessName:  "kitty",
			ReloadSignal: "SIGUSR1",
			Binary:       "kitty",
		},
		Fonts: FontsConfig{
			Strategy:       "normalized",
			CommandTimeout: 10 * time.Second,
		},
		UI: UIConfig{
			Border: "rounded",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config from the default location, creating it from the
// embedded template on first run.
func Load() (*Config, error) {
	return LoadFromPath(DefaultPath())
}

// DefaultPath returns $XDG_CONFIG_HOME/kittyfont/config.yaml, falling
// back to ~/.config/kittyfont/config.yaml.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "kittyfont", "config.yaml")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "kittyfont", "config.yaml")
}

// LoadFromPath reads the config from a specific file, creating it from
// the embedded template when it does not exist, and merges KITTYFONT_*
// environment overrides.
func LoadFromPath(path string) (*Config, error) {
	path = expandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, embedded.DefaultConfig(), 0644); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Example: KITTYFONT_KITTY_CONF_PATH overrides kitty.conf_path.
	v.SetEnvPrefix("KITTYFONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Kitty.ConfPath = expandPath(cfg.Kitty.ConfPath)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values nothing downstream could
// make sense of.
func (c *Config) Validate() error {
	if c.Kitty.ConfPath == "" {
		return fmt.Errorf("kitty.conf_path cannot be empty")
	}
	if c.Kitty.ProcessName == "" {
		return fmt.Errorf("kitty.process_name cannot be empty")
	}
	if _, err := c.Strategy(); err != nil {
		return err
	}
	if _, err := c.Signal(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// Strategy parses fonts.strategy into a matching policy.
func (c *Config) Strategy() (fonts.Strategy, error) {
	return fonts.ParseStrategy(c.Fonts.Strategy)
}

// Signal parses kitty.reload_signal. Both "SIGUSR1" and "USR1" are
// accepted.
func (c *Config) Signal() (syscall.Signal, error) {
	name := strings.ToUpper(strings.TrimSpace(c.Kitty.ReloadSignal))
	if name == "" {
		return 0, fmt.Errorf("kitty.reload_signal cannot be empty")
	}
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	sig := unix.SignalNum(name)
	if sig == 0 {
		return 0, fmt.Errorf("unknown reload signal %q", c.Kitty.ReloadSignal)
	}
	return sig, nil
}

// expandPath expands ~ to the user's home directory in a path string.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
