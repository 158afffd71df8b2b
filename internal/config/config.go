// Package config loads runtime settings for the Daybook CLI and library
// wiring. Sources are layered: built-in defaults, then a config file and
// environment variables, then command-line flags; later sources win.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the persistence core.
//
// Fields:
//   - StoragePath: directory the durable key-value medium lives in.
//   - KeyPrefix: namespace prefix for every persisted key.
//   - ServerEndpointAddr: base URL of the sync backend.
//   - SecretKey: application secret the at-rest encryption key derives from.
//   - HTTPTimeout: per-request timeout for the sync client.
type Config struct {
	StoragePath        string
	KeyPrefix          string
	ServerEndpointAddr string
	SecretKey          string
	HTTPTimeout        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.StoragePath = filepath.Join(home, ".daybook", "storage")
	c.KeyPrefix = "daybook:"
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.SecretKey = "daybook-local"
	c.HTTPTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file / environment (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
