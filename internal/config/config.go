// Package config manages mpp configuration using Viper and XDG base directories.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values.
const (
	DefaultBaseURL = "http://127.0.0.1:5409"
	DefaultTimeout = 30 * time.Second
	DefaultPrefix  = "mpp:"
)

// APIConfig holds publish backend access configuration.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// SQLiteConfig configures the sqlite storage backend.
type SQLiteConfig struct {
	Path string `mapstructure:"path"` // empty means storage.db in the cache dir
}

// RedisConfig configures the redis storage backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Prefix   string `mapstructure:"prefix"`
}

// MemoryConfig configures the in-process storage backend.
type MemoryConfig struct {
	Size int           `mapstructure:"size" validate:"gte=1"`
	TTL  time.Duration `mapstructure:"ttl" validate:"gte=0"` // 0 disables expiry
}

// StorageConfig picks a backend for each storage scope.
type StorageConfig struct {
	Local   string       `mapstructure:"local" validate:"oneof=file sqlite redis memory"`
	Session string       `mapstructure:"session" validate:"oneof=file sqlite redis memory"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Memory  MemoryConfig `mapstructure:"memory"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// AliasConfig holds user-defined names for publish platforms.
type AliasConfig struct {
	Platforms map[string]string `mapstructure:"platforms"`
}

// Config holds the complete mpp configuration.
type Config struct {
	API      APIConfig     `mapstructure:"api"`
	Timezone string        `mapstructure:"timezone"`
	Template string        `mapstructure:"template"`
	Storage  StorageConfig `mapstructure:"storage"`
	Log      LogConfig     `mapstructure:"log"`
	Aliases  AliasConfig   `mapstructure:"aliases"`
}

var v *viper.Viper

// Load reads the configuration from the config file and environment variables.
// Environment variables take precedence over config file values.
func Load() (*Config, error) {
	v = viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())

	_ = v.BindEnv("api.base_url", "MPP_API_URL")
	_ = v.BindEnv("api.token", "MPP_API_TOKEN")
	_ = v.BindEnv("api.timeout", "MPP_API_TIMEOUT")
	_ = v.BindEnv("timezone", "MPP_TIMEZONE")
	_ = v.BindEnv("template", "MPP_TEMPLATE")
	_ = v.BindEnv("storage.local", "MPP_STORAGE_LOCAL")
	_ = v.BindEnv("storage.session", "MPP_STORAGE_SESSION")
	_ = v.BindEnv("storage.redis.addr", "MPP_REDIS_ADDR")
	_ = v.BindEnv("storage.redis.password", "MPP_REDIS_PASSWORD")
	_ = v.BindEnv("log.level", "MPP_LOG_LEVEL")
	_ = v.BindEnv("log.format", "MPP_LOG_FORMAT")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Missing config file is fine; values come from env or defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("template", "YYYY-mm-dd HH:MM:SS")
	v.SetDefault("storage.local", "file")
	v.SetDefault("storage.session", "memory")
	v.SetDefault("storage.redis.prefix", DefaultPrefix)
	v.SetDefault("storage.memory.size", 256)
	v.SetDefault("storage.memory.ttl", time.Duration(0))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("aliases.platforms", map[string]string{})
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if (c.Storage.Local == "redis" || c.Storage.Session == "redis") && c.Storage.Redis.Addr == "" {
		return fmt.Errorf("invalid config: storage.redis.addr is required when a scope uses redis")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves the configured timezone, defaulting to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Write persists the given config to the config file.
func Write(cfg *Config) error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("api.base_url", cfg.API.BaseURL)
	if cfg.API.Token != "" {
		v.Set("api.token", cfg.API.Token)
	}
	v.Set("api.timeout", cfg.API.Timeout.String())
	if cfg.Timezone != "" {
		v.Set("timezone", cfg.Timezone)
	}
	v.Set("template", cfg.Template)
	v.Set("storage.local", cfg.Storage.Local)
	v.Set("storage.session", cfg.Storage.Session)
	if cfg.Storage.SQLite.Path != "" {
		v.Set("storage.sqlite.path", cfg.Storage.SQLite.Path)
	}
	if cfg.Storage.Redis.Addr != "" {
		v.Set("storage.redis.addr", cfg.Storage.Redis.Addr)
		v.Set("storage.redis.db", cfg.Storage.Redis.DB)
	}
	v.Set("storage.redis.prefix", cfg.Storage.Redis.Prefix)
	v.Set("storage.memory.size", cfg.Storage.Memory.Size)
	v.Set("storage.memory.ttl", cfg.Storage.Memory.TTL.String())
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("aliases.platforms", cfg.Aliases.Platforms)

	return v.WriteConfigAs(Path())
}

// configDir returns the XDG-compliant config directory for mpp.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mpp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mpp")
}

// Dir returns the config directory path (for use by other packages).
func Dir() string {
	return configDir()
}

// Path returns the config file path that Write creates.
func Path() string {
	return filepath.Join(configDir(), "config.yml")
}
