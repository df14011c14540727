// ABOUTME: Application configuration loaded from config.toml
// ABOUTME: Missing files fall back to defaults; env vars override paths
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfigPath = "QUIETWINS_CONFIG"
	EnvDBPath     = "QUIETWINS_DB_PATH"
)

// Duration is a time.Duration that reads and writes TOML strings like "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type EnrichmentConfig struct {
	Enabled bool     `toml:"enabled"`
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

type JournalConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr          string   `toml:"addr"`
	PurgeInterval Duration `toml:"purge_interval"`
}

type Config struct {
	DatabasePath   string           `toml:"database_path"`
	RulesPath      string           `toml:"rules_path"`
	AutoTag        bool             `toml:"auto_tag"`
	RetentionHours int              `toml:"retention_hours"`
	LogLevel       string           `toml:"log_level"`
	SeedWelcome    bool             `toml:"seed_welcome"`
	Enrichment     EnrichmentConfig `toml:"enrichment"`
	Journal        JournalConfig    `toml:"journal"`
	Server         ServerConfig     `toml:"server"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DatabasePath:   DefaultDatabasePath(),
		RulesPath:      DefaultRulesPath(),
		AutoTag:        true,
		RetentionHours: 48,
		LogLevel:       "info",
		SeedWelcome:    true,
		Enrichment: EnrichmentConfig{
			URL:     "http://127.0.0.1:8000",
			Timeout: Duration{2 * time.Second},
		},
		Journal: JournalConfig{
			Format: "markdown",
		},
		Server: ServerConfig{
			Addr:          "127.0.0.1:7420",
			PurgeInterval: Duration{time.Hour},
		},
	}
}

// ResolvePath picks the config file: explicit flag, then QUIETWINS_CONFIG,
// then the XDG default.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultConfigPath()
}

// Load reads config from path over the defaults. A missing file is not an
// error. QUIETWINS_DB_PATH overrides database_path.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if env := os.Getenv(EnvDBPath); env != "" {
		cfg.DatabasePath = env
	}

	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // Standard directory permissions for user config
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
