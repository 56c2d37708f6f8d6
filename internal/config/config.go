package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	SteamKey       string        `env:"STEAM_KEY" env-required:"true"`
	SteamID        string        `env:"STEAM_ID" env-required:"true"`
	APIOrigin      string        `env:"STEAM_API_ORIGIN" env-default:"https://api.steampowered.com"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
	OutputDir      string        `env:"OUTPUT_DIR" env-default:"WWW"`
	LogLevel       string        `env:"LOG_LEVEL" env-default:"info"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	PushgatewayURL string `env:"PUSHGATEWAY_URL"`
	Port           int    `env:"PORT" env-default:"8000"`
}

// Load reads an optional .env file from envFile, then the process environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	return cfg, nil
}

// RedisEnabled reports whether a Redis address was configured.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
