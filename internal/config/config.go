package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/ellavondegurechaff/packengine/internal/gateways/database"
)

const envPrefix = "PACKS_"

type Config struct {
	Log    LogConfig       `toml:"log" envPrefix:"LOG_"`
	DB     database.Config `toml:"db" envPrefix:"DB_"`
	Engine EngineConfig    `toml:"engine" envPrefix:"ENGINE_"`
}

type LogConfig struct {
	Level  slog.Level `toml:"level" env:"LEVEL"`
	Format string     `toml:"format" env:"FORMAT"`
	Color  bool       `toml:"color" env:"COLOR"`
}

type EngineConfig struct {
	MaxConflictRetries int      `toml:"max_conflict_retries" env:"MAX_CONFLICT_RETRIES"`
	RankingCacheSize   int      `toml:"ranking_cache_size" env:"RANKING_CACHE_SIZE"`
	BatchConcurrency   int      `toml:"batch_concurrency" env:"BATCH_CONCURRENCY"`
	TxTimeout          Duration `toml:"tx_timeout" env:"TX_TIMEOUT"`
}

// Duration decodes "10s"-style strings from TOML and the environment.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() Config {
	return Config{
		Log: LogConfig{Level: slog.LevelInfo, Format: "text", Color: true},
		DB: database.Config{
			Host:     "localhost",
			Port:     5432,
			User:     "packs",
			Database: "packs",
			SSLMode:  "disable",
			PoolSize: 10,
		},
		Engine: EngineConfig{
			MaxConflictRetries: 3,
			RankingCacheSize:   64,
			BatchConcurrency:   1,
			TxTimeout:          Duration{10 * time.Second},
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults, then applies
// PACKS_* environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Warn("Config file not found, using defaults",
				slog.String("type", "sys"),
				slog.String("path", path))
		case err != nil:
			return nil, fmt.Errorf("failed to open config: %w", err)
		default:
			defer file.Close()
			if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Engine.MaxConflictRetries < 0 {
		return fmt.Errorf("engine.max_conflict_retries must not be negative")
	}
	if c.Engine.BatchConcurrency < 1 {
		return fmt.Errorf("engine.batch_concurrency must be at least 1")
	}
	if c.Engine.RankingCacheSize < 1 {
		return fmt.Errorf("engine.ranking_cache_size must be at least 1")
	}
	if c.Engine.TxTimeout.Duration <= 0 {
		return fmt.Errorf("engine.tx_timeout must be positive")
	}
	return nil
}
