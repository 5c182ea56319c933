package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the lotus service. Values come from
// Default, then the optional TOML file, then the environment.
type Config struct {
	HTTPAddr        string        `toml:"HTTPAddr" env:"LOTUS_HTTP_ADDR"`
	Env             string        `toml:"Env" env:"LOTUS_ENV"`
	LogLevel        string        `toml:"LogLevel" env:"LOTUS_LOG_LEVEL"`
	LogFile         string        `toml:"LogFile" env:"LOTUS_LOG_FILE"`
	LogMaxSizeMB    int           `toml:"LogMaxSizeMB" env:"LOTUS_LOG_MAX_SIZE_MB"`
	ReadTimeout     time.Duration `toml:"ReadTimeout" env:"LOTUS_READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"WriteTimeout" env:"LOTUS_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `toml:"IdleTimeout" env:"LOTUS_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"ShutdownTimeout" env:"LOTUS_SHUTDOWN_TIMEOUT"`

	RedisAddr     string        `toml:"RedisAddr" env:"LOTUS_REDIS_ADDR"`
	RedisPassword string        `toml:"RedisPassword" env:"LOTUS_REDIS_PASSWORD"`
	RedisDB       int           `toml:"RedisDB" env:"LOTUS_REDIS_DB"`
	CacheTTL      time.Duration `toml:"CacheTTL" env:"LOTUS_CACHE_TTL"`

	SQLitePath string `toml:"SQLitePath" env:"LOTUS_SQLITE_PATH"`

	RateLimitPerMinute int `toml:"RateLimitPerMinute" env:"LOTUS_RATE_LIMIT_PER_MINUTE"`
	RateLimitBurst     int `toml:"RateLimitBurst" env:"LOTUS_RATE_LIMIT_BURST"`

	PresetsFile string `toml:"PresetsFile" env:"LOTUS_PRESETS_FILE"`

	OpenAIKey   string `toml:"OpenAIKey" env:"OPENAI_API_KEY"`
	OpenAIModel string `toml:"OpenAIModel" env:"LOTUS_OPENAI_MODEL"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		HTTPAddr:           ":8080",
		Env:                "development",
		LogLevel:           "info",
		LogMaxSizeMB:       50,
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       15 * time.Second,
		IdleTimeout:        60 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		CacheTTL:           10 * time.Minute,
		RateLimitPerMinute: 60,
		RateLimitBurst:     10,
		OpenAIModel:        "gpt-4o-mini",
	}
}

// Load reads .env (if present), the TOML file at path (if non-empty) and the
// process environment, in that order of increasing precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if path = strings.TrimSpace(path); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("config: HTTPAddr must not be empty")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("config: RateLimitPerMinute must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("config: RateLimitBurst must be positive, got %d", c.RateLimitBurst)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config: CacheTTL must not be negative, got %s", c.CacheTTL)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: ShutdownTimeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
