// Package config resolves runtime settings from an optional YAML file and
// SAFEND_* environment variables. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID schemes for new work order codes.
const (
	IDSchemeSequence = "sequence"
	IDSchemeRandom   = "random"
)

type Config struct {
	DBPath      string `yaml:"db_path"`
	Currency    string `yaml:"currency"`
	LogUseCases bool   `yaml:"log_use_cases"`
	LogLevel    string `yaml:"log_level"`
	MetricsFile string `yaml:"metrics_file"`
	IDScheme    string `yaml:"id_scheme"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DBPath:   defaultDBPath(),
		Currency: "₹",
		LogLevel: "info",
		IDScheme: IDSchemeSequence,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "safend.db"
	}
	return filepath.Join(home, ".safend", "safend.db")
}

// Load reads the file named by SAFEND_CONFIG, if any, then applies
// environment overrides.
func Load() (Config, error) {
	return LoadWith(os.Getenv)
}

// LoadWith is Load with an injectable environment lookup.
func LoadWith(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if path := getenv("SAFEND_CONFIG"); path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		if err := fileCfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.merge(fileCfg)
	}

	applyEnv(&cfg, getenv)
	return cfg, nil
}

// LoadFromFile parses a YAML config file. Unset keys stay zero.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values a file may not set. Empty fields are allowed and
// mean "keep the default".
func (c Config) Validate() error {
	var errs []error
	if c.IDScheme != "" && c.IDScheme != IDSchemeSequence && c.IDScheme != IDSchemeRandom {
		errs = append(errs, fmt.Errorf("id_scheme must be %q or %q, got %q", IDSchemeSequence, IDSchemeRandom, c.IDScheme))
	}
	if c.LogLevel != "" {
		if _, ok := parseLevel(c.LogLevel); !ok {
			errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) merge(other Config) {
	if other.DBPath != "" {
		c.DBPath = expandHome(other.DBPath)
	}
	if other.Currency != "" {
		c.Currency = other.Currency
	}
	if other.LogUseCases {
		c.LogUseCases = true
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.MetricsFile != "" {
		c.MetricsFile = expandHome(other.MetricsFile)
	}
	if other.IDScheme != "" {
		c.IDScheme = other.IDScheme
	}
}

// applyEnv overrides cfg from the environment. Unparsable values are
// ignored.
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("SAFEND_DB"); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := getenv("SAFEND_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := getenv("SAFEND_LOG_USECASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := getenv("SAFEND_LOG_LEVEL"); v != "" {
		if _, ok := parseLevel(v); ok {
			cfg.LogLevel = v
		}
	}
	if v := getenv("SAFEND_METRICS_FILE"); v != "" {
		cfg.MetricsFile = expandHome(v)
	}
	if v := getenv("SAFEND_ID_SCHEME"); v == IDSchemeSequence || v == IDSchemeRandom {
		cfg.IDScheme = v
	}
}

// SlogLevel returns the configured level, info when unset.
func (c Config) SlogLevel() slog.Level {
	if l, ok := parseLevel(c.LogLevel); ok {
		return l
	}
	return slog.LevelInfo
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
