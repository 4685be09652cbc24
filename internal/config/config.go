// Package config loads service settings from the environment (prefix LESORIA_)
// and an optional config file named by LESORIA_CONFIG.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr       string        `mapstructure:"http_addr"`
	Env            string        `mapstructure:"env"`
	LogLevel       string        `mapstructure:"log_level"`
	StorageBackend string        `mapstructure:"storage_backend"`
	StorageKey     string        `mapstructure:"storage_key"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisTTL       time.Duration `mapstructure:"redis_ttl"`
	DatabaseURL    string        `mapstructure:"database_url"`
	SessionSecret  string        `mapstructure:"session_secret"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst"`
	Locale         string        `mapstructure:"locale"`
	CurrencySymbol string        `mapstructure:"currency_symbol"`
	StoreIdleTTL   time.Duration `mapstructure:"store_idle_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("storage_backend", BackendMemory)
	v.SetDefault("storage_key", "lesoria-cart")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_ttl", 0)
	v.SetDefault("database_url", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("rate_limit", 5)
	v.SetDefault("rate_burst", 10)
	v.SetDefault("locale", "ru")
	v.SetDefault("currency_symbol", "₽")
	v.SetDefault("store_idle_ttl", 30*time.Minute)
}

// Load reads configuration. A config file is optional; environment variables win over it.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LESORIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: database_url is required for the %s backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.StorageBackend)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("config: storage_key must not be empty")
	}
	if c.IsProd() && c.SessionSecret == "" {
		return fmt.Errorf("config: session_secret is required in prod")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("config: rate_limit and rate_burst must be positive")
	}
	return nil
}

func (c Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod")
}
