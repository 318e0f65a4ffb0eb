// Package config loads beach-terminal settings from an optional YAML file,
// a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/beach-terminal/internal/database"
)

// DefaultPath is where the config file is looked for when none is given
const DefaultPath = "beach-terminal.yaml"

// Config is the top-level configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	TTL      TTLConfig      `yaml:"ttl"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Tides    TideConfig     `yaml:"tides"`
	API      APIConfig      `yaml:"api"`
	Log      LogConfig      `yaml:"log"`

	Timezone    string        `yaml:"timezone" validate:"required"`
	HTTPTimeout time.Duration `yaml:"http_timeout" validate:"gt=0"`
}

// DatabaseConfig locates the SQLite file
type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// CacheConfig selects the cache backend
type CacheConfig struct {
	Backend    string `yaml:"backend" validate:"oneof=sqlite valkey"`
	ValkeyAddr string `yaml:"valkey_addr" validate:"required_if=Backend valkey"`
	Prefix     string `yaml:"prefix"`
}

// TTLConfig holds per-source freshness windows
type TTLConfig struct {
	Weather      time.Duration `yaml:"weather" validate:"gt=0"`
	WaterQuality time.Duration `yaml:"water_quality" validate:"gt=0"`
	Tides        time.Duration `yaml:"tides" validate:"gt=0"`
}

// RefreshConfig holds background refresh intervals
type RefreshConfig struct {
	Weather      time.Duration `yaml:"weather" validate:"gte=1m"`
	WaterQuality time.Duration `yaml:"water_quality" validate:"gte=1m"`
}

// TideConfig picks where tide predictions come from
type TideConfig struct {
	Provider string `yaml:"provider" validate:"oneof=static noaa"`
	Station  string `yaml:"station" validate:"required_if=Provider noaa"`
}

// APIConfig configures the HTTP server
type APIConfig struct {
	Listen string `yaml:"listen" validate:"required"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"` // empty logs to stderr
}

var validate = validator.New()

// Default returns the built-in configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path (skipped when empty or, for the default path, missing),
// applies defaults and environment overrides, then validates. envFiles are
// passed to godotenv; with none it reads ./.env if present.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	cfg.applyDefaults()

	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("loading env file: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the timezone exists
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	// Local names the host zone, which upstream APIs cannot resolve
	if c.Timezone == "Local" {
		return fmt.Errorf("invalid config: timezone must be an IANA name such as America/Vancouver, not Local")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone, falling back to local time
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = database.DBPath()
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "sqlite"
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "beach"
	}
	if c.TTL.Weather <= 0 {
		c.TTL.Weather = time.Hour
	}
	if c.TTL.WaterQuality <= 0 {
		c.TTL.WaterQuality = 24 * time.Hour
	}
	if c.TTL.Tides <= 0 {
		c.TTL.Tides = 24 * time.Hour
	}
	if c.Refresh.Weather <= 0 {
		c.Refresh.Weather = 5 * time.Minute
	}
	if c.Refresh.WaterQuality <= 0 {
		c.Refresh.WaterQuality = 30 * time.Minute
	}
	if c.Tides.Provider == "" {
		c.Tides.Provider = "static"
	}
	if c.API.Listen == "" {
		c.API.Listen = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "data/beach-terminal.log"
	}
	if c.Timezone == "" {
		c.Timezone = "America/Vancouver"
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
		return nil
	}

	setString("BEACH_DB_PATH", &c.Database.Path)
	setString("BEACH_CACHE_BACKEND", &c.Cache.Backend)
	setString("VALKEY_ADDR", &c.Cache.ValkeyAddr)
	setString("BEACH_TIDE_PROVIDER", &c.Tides.Provider)
	setString("BEACH_API_ADDR", &c.API.Listen)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("BEACH_LOG_FILE", &c.Log.File)
	setString("BEACH_TIMEZONE", &c.Timezone)

	for key, dst := range map[string]*time.Duration{
		"BEACH_WEATHER_REFRESH": &c.Refresh.Weather,
		"BEACH_WATER_REFRESH":   &c.Refresh.WaterQuality,
		"BEACH_WEATHER_TTL":     &c.TTL.Weather,
		"BEACH_HTTP_TIMEOUT":    &c.HTTPTimeout,
	} {
		if err := setDuration(key, dst); err != nil {
			return err
		}
	}
	return nil
}
