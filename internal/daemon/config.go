// Package daemon holds the long-running server's configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full daemon configuration, loaded from TOML.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Settle  SettleConfig  `toml:"settle"`
	Metrics MetricsConfig `toml:"metrics"`
}

// APIConfig configures the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (c APIConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// StorageConfig configures the SQLite database.
type StorageConfig struct {
	Path string `toml:"path"`
}

// SettleConfig configures alias resolution for ledger imports.
type SettleConfig struct {
	// Scorer selects the similarity function: "dice" or "levenshtein".
	Scorer string `toml:"scorer"`
	// Threshold is the score at or above which two nicknames group.
	Threshold float64 `toml:"threshold"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Home returns the bankroll data directory. BANKROLL_HOME overrides the
// default ~/.bankroll.
func Home() string {
	if home := os.Getenv("BANKROLL_HOME"); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".bankroll"
	}
	return filepath.Join(userHome, ".bankroll")
}

// ConfigPath returns the path of the TOML config file.
func ConfigPath() string { return filepath.Join(Home(), "config.toml") }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
		Storage: StorageConfig{
			Path: filepath.Join(Home(), "bankroll.db"),
		},
		Settle: SettleConfig{
			Scorer:    "dice",
			Threshold: 0.7,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// LoadConfig reads the config file, falling back to defaults when it does
// not exist. Fields absent from the file keep their default values.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Settle.Threshold <= 0 || cfg.Settle.Threshold > 1 {
		cfg.Settle.Threshold = DefaultConfig().Settle.Threshold
	}
	return cfg, nil
}
