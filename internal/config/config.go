// Package config loads process settings from defaults, an optional
// config.yaml, a .env file and the environment, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Paging    PagingConfig    `mapstructure:"paging"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
	Gzip            bool          `mapstructure:"gzip"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	Fallback       bool          `mapstructure:"fallback"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type RateLimitConfig struct {
	WindowMS    int64 `mapstructure:"window_ms"`
	MaxRequests int64 `mapstructure:"max_requests"`
}

type PagingConfig struct {
	DefaultSize int `mapstructure:"default_size"`
	MaxSize     int `mapstructure:"max_size"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load builds the configuration. A missing .env or config.yaml is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_origin", "http://localhost:3000,http://localhost:3001,http://localhost:5173")
	v.SetDefault("server.gzip", true)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.fallback", true)
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("redis.url", "")

	v.SetDefault("rate_limit.window_ms", 900000)
	v.SetDefault("rate_limit.max_requests", 100)

	v.SetDefault("paging.default_size", 10)
	v.SetDefault("paging.max_size", 100)

	v.SetDefault("log.level", "info")
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.env", "APP_ENV")
	v.BindEnv("server.cors_origin", "CORS_ORIGIN")
	v.BindEnv("server.gzip", "GZIP_ENABLED")

	// Database
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.fallback", "STORAGE_FALLBACK")
	v.BindEnv("database.connect_timeout", "DB_CONNECT_TIMEOUT")
	v.BindEnv("database.max_conns", "DB_MAX_CONNS")

	// Redis
	v.BindEnv("redis.url", "REDIS_URL")

	// Rate limiting
	v.BindEnv("rate_limit.window_ms", "RATE_LIMIT_WINDOW_MS")
	v.BindEnv("rate_limit.max_requests", "RATE_LIMIT_MAX_REQUESTS")

	// Paging
	v.BindEnv("paging.default_size", "DEFAULT_PAGE_SIZE")
	v.BindEnv("paging.max_size", "MAX_PAGE_SIZE")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port <= 0 {
		problems = append(problems, "PORT must be positive")
	}
	if c.Paging.DefaultSize <= 0 || c.Paging.MaxSize <= 0 {
		problems = append(problems, "page sizes must be positive")
	}
	if c.Paging.DefaultSize > c.Paging.MaxSize {
		problems = append(problems, "DEFAULT_PAGE_SIZE must not exceed MAX_PAGE_SIZE")
	}
	if c.RateLimit.WindowMS <= 0 || c.RateLimit.MaxRequests <= 0 {
		problems = append(problems, "rate limit window and maximum must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// CORSOrigins splits the comma separated CORS_ORIGIN list.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.Server.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// RateLimitWindow is RATE_LIMIT_WINDOW_MS as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowMS) * time.Millisecond
}
