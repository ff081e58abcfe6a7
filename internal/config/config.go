package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig selects where progress is kept.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReflectionConfig configures the encouragement model.
type ReflectionConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the local development server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config holds all runtime configuration.
// Values are populated from .steps.yaml, STEPS_* env vars, and CLI flags.
type Config struct {
	Storage       StorageConfig    `mapstructure:"storage"`
	CatalogFile   string           `mapstructure:"catalog_file"`
	MaxVerses     int              `mapstructure:"max_verses"`
	TelemetryFile string           `mapstructure:"telemetry_file"`
	Log           LogConfig        `mapstructure:"log"`
	Reflection    ReflectionConfig `mapstructure:"reflection"`
	Server        ServerConfig     `mapstructure:"server"`
	Verbose       bool             `mapstructure:"verbose"`
}

// DataDir is the default home for progress data.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scripturesteps"
	}
	return filepath.Join(home, ".scripturesteps")
}

// DefaultPath returns the default storage path for a backend.
func DefaultPath(backend string) string {
	switch backend {
	case "sqlite":
		return filepath.Join(DataDir(), "progress.db")
	case "badger":
		return filepath.Join(DataDir(), "badger")
	default:
		return filepath.Join(DataDir(), "progress.json")
	}
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.path", "")
	viper.SetDefault("storage.key", "scripture_steps_progress")
	viper.SetDefault("catalog_file", "")
	viper.SetDefault("max_verses", 176)
	viper.SetDefault("telemetry_file", "")
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("reflection.api_key", "")
	viper.SetDefault("reflection.base_url", "")
	viper.SetDefault("reflection.model", "gpt-4o-mini")
	viper.SetDefault("reflection.timeout", 30*time.Second)
	viper.SetDefault("server.addr", "127.0.0.1:8650")
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultPath(cfg.Storage.Backend)
	}
	if cfg.Verbose && cfg.Log.Level == "warn" {
		cfg.Log.Level = "debug"
	}
	return cfg
}
