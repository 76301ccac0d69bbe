package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	OpenAI    OpenAIConfig
	Estimate  EstimateConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Addr string
}

// DatabaseConfig points at the postgres account store. Empty URL means the
// in-memory stores.
type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	URL string
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string
	URL     string
	Timeout time.Duration
}

type EstimateConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

// Load reads configuration from file and env. Env var overrides use prefix DEBTPLANNER_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.url", "")
	v.SetDefault("openai.timeout", 10*time.Second)
	v.SetDefault("estimate.cache_ttl", 24*time.Hour)
	v.SetDefault("ratelimit.capacity", 5)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("DEBTPLANNER_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DEBTPLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return c, nil
}
