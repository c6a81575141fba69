package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8090 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8090)
	}
	if cfg.Settle.Scorer != "dice" {
		t.Errorf("Settle.Scorer = %q, want %q", cfg.Settle.Scorer, "dice")
	}
	if cfg.Settle.Threshold != 0.7 {
		t.Errorf("Settle.Threshold = %v, want 0.7", cfg.Settle.Threshold)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true by default")
	}
	if filepath.Base(cfg.Storage.Path) != "bankroll.db" {
		t.Errorf("Storage.Path = %q, want a bankroll.db path", cfg.Storage.Path)
	}
}

func TestAPIConfig_Addr(t *testing.T) {
	cfg := APIConfig{Host: "0.0.0.0", Port: 9000}
	if got := cfg.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:9000")
	}
}

func TestHome_EnvOverride(t *testing.T) {
	t.Setenv("BANKROLL_HOME", "/tmp/bankroll-test-home")
	if got := Home(); got != "/tmp/bankroll-test-home" {
		t.Errorf("Home() = %q, want env override", got)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("BANKROLL_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 8090 {
		t.Errorf("missing file should fall back to defaults, got port %d", cfg.API.Port)
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BANKROLL_HOME", home)

	data := []byte("[api]\nport = 9999\n\n[settle]\nscorer = \"levenshtein\"\n")
	if err := os.WriteFile(filepath.Join(home, "config.toml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("API.Port = %d, want 9999 from file", cfg.API.Port)
	}
	if cfg.Settle.Scorer != "levenshtein" {
		t.Errorf("Settle.Scorer = %q, want levenshtein from file", cfg.Settle.Scorer)
	}
	// Unset fields keep defaults.
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want default", cfg.API.Host)
	}
	if cfg.Settle.Threshold != 0.7 {
		t.Errorf("Settle.Threshold = %v, want default 0.7", cfg.Settle.Threshold)
	}
}

func TestLoadConfig_BadThresholdClamped(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BANKROLL_HOME", home)

	data := []byte("[settle]\nthreshold = 7.0\n")
	if err := os.WriteFile(filepath.Join(home, "config.toml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settle.Threshold != 0.7 {
		t.Errorf("out-of-range threshold = %v, want reset to 0.7", cfg.Settle.Threshold)
	}
}
