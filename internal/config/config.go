// Package config resolves runtime configuration for hubscan from defaults,
// an optional TOML file, and the environment. The core hubcache package
// never reads the environment itself; everything it needs arrives as a
// resolved path from here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config captures all runtime configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Listen string `toml:"listen"`
}

// CacheConfig controls where the model cache is looked for.
type CacheConfig struct {
	// Dir overrides the Hugging Face home directory. When empty the
	// HF_HOME environment variable applies, then ~/.cache/huggingface.
	Dir string `toml:"dir"`
}

// HistoryConfig controls the scan history log.
type HistoryConfig struct {
	Path string `toml:"path"`
	Keep int    `toml:"keep"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen: ":8466",
		},
		History: HistoryConfig{
			Path: filepath.Join(hubscanHome(), "history.db"),
			Keep: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path, falling back to defaults for every
// value the file omits. An empty path means the default location
// ($HUBSCAN_HOME or ~/.hubscan)/config.toml; a missing file there is not
// an error, but an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(hubscanHome(), "config.toml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// HubCacheDir resolves the directory Scan should walk: the configured
// override, else HF_HOME, else ~/.cache/huggingface, always with the
// fixed "hub" subdirectory appended. The hub keeps model snapshots under
// that subdirectory; the parent holds unrelated caches.
func (c Config) HubCacheDir() string {
	dir := c.Cache.Dir
	if dir == "" {
		dir = os.Getenv("HF_HOME")
	}
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".cache", "huggingface")
	}
	return filepath.Join(dir, "hub")
}

// hubscanHome returns the directory hubscan keeps its own state in.
func hubscanHome() string {
	if env := os.Getenv("HUBSCAN_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hubscan")
}
