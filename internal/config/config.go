package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/username/weekend-checker/internal/calendar"
	"github.com/username/weekend-checker/internal/history"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	History  HistoryConfig  `mapstructure:"history"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig represents the classifier policy and holiday source
type CalendarConfig struct {
	ReferenceYear      int    `mapstructure:"reference_year"`
	FutureYearIsDayOff bool   `mapstructure:"future_year_is_day_off"`
	HolidaysFile       string `mapstructure:"holidays_file"` // empty = built-in table
}

// HistoryConfig represents history storage configuration
type HistoryConfig struct {
	Backend string `mapstructure:"backend"` // "bitcask", "file" or "memory"
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.reference_year", calendar.DefaultReferenceYear)
	v.SetDefault("calendar.future_year_is_day_off", true)
	v.SetDefault("calendar.holidays_file", "")
	v.SetDefault("history.backend", history.BackendBitcask)
	v.SetDefault("history.path", "$HOME/.weekend-checker/history")
	v.SetDefault("history.key", history.DefaultKey)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "warn")
}

// Load loads configuration from file. A missing default config file is not an
// error; an explicitly given path must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.weekend-checker")
		v.AddConfigPath("/etc/weekend-checker")
	}

	// WEEKEND_CHECKER_HISTORY_BACKEND=file overrides history.backend
	v.SetEnvPrefix("weekend_checker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Calendar.ReferenceYear < 1 || c.Calendar.ReferenceYear > 9999 {
		return fmt.Errorf("calendar.reference_year must be a four digit year, got %d", c.Calendar.ReferenceYear)
	}

	switch c.History.Backend {
	case history.BackendBitcask, history.BackendFile:
		if c.History.Path == "" {
			return fmt.Errorf("history.path is required for %s backend", c.History.Backend)
		}
	case history.BackendMemory:
	default:
		return fmt.Errorf("history.backend must be 'bitcask', 'file' or 'memory', got '%s'", c.History.Backend)
	}

	if c.History.Key == "" {
		return fmt.Errorf("history.key is required")
	}

	return nil
}

// Policy returns the calendar policy described by the config
func (c *CalendarConfig) Policy() calendar.Policy {
	return calendar.Policy{
		ReferenceYear:      c.ReferenceYear,
		FutureYearIsDayOff: c.FutureYearIsDayOff,
	}
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.HolidaysFile = expandPath(c.Calendar.HolidaysFile)
	c.History.Path = expandPath(c.History.Path)
	c.Log.File = expandPath(c.Log.File)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}
