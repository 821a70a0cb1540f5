package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, e.g. AUSSIE_STORE_PATH.
const EnvPrefix = "AUSSIE"

// Config holds all configuration for our application
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
	Practice PracticeConfig `mapstructure:"practice"`
}

// StoreConfig selects and tunes the progress document store
type StoreConfig struct {
	Driver        string `mapstructure:"driver"`
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PracticeConfig tunes practice-time behaviour
type PracticeConfig struct {
	// Seed drives phrase and feedback selection. Zero picks a random seed.
	Seed           uint64 `mapstructure:"seed"`
	WeekWindowDays int    `mapstructure:"week_window_days"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("aussieprogress")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("store.driver", "sqlite3")
	viper.SetDefault("store.path", "data/progress.db")
	viper.SetDefault("store.busy_timeout_ms", 5000)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	viper.SetDefault("practice.seed", 0)
	viper.SetDefault("practice.week_window_days", 7)
}

// Validate rejects settings the store or scheduler cannot honour.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite3", "memory":
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == "sqlite3" && strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path is required for sqlite3")
	}
	if c.Practice.WeekWindowDays <= 0 {
		return fmt.Errorf("practice.week_window_days must be positive, got %d", c.Practice.WeekWindowDays)
	}
	return nil
}

// StoreDSN returns the sqlite DSN for the configured path.
func (c *Config) StoreDSN() string {
	timeout := c.Store.BusyTimeoutMS
	if timeout <= 0 {
		timeout = 5000
	}
	return fmt.Sprintf("file:%s?cache=shared&_busy_timeout=%d&_foreign_keys=on", c.Store.Path, timeout)
}
