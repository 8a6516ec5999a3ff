// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/dicebits/internal/models"
)

// Config holds the process configuration
type Config struct {
	Mode   models.Mode   `env:"DICEBITS_MODE" envDefault:"single"`
	Policy models.Policy `env:"DICEBITS_POLICY" envDefault:"discard"`

	// Output is a file path, or "-" for stdout
	Output string `env:"DICEBITS_OUTPUT" envDefault:"-"`

	WordWidth     uint `env:"DICEBITS_WORD_WIDTH" envDefault:"32"`
	CapacityWords int  `env:"DICEBITS_CAPACITY_WORDS" envDefault:"32"`

	// Simulate replaces stdin with this many simulated rolls
	Simulate int   `env:"DICEBITS_SIMULATE" envDefault:"0"`
	Seed     int64 `env:"DICEBITS_SEED"`

	// ListRuns prints this many recent run summaries instead of extracting
	ListRuns int `env:"DICEBITS_LIST_RUNS" envDefault:"0"`

	// Run ledger; disabled when RedisAddr is empty
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads the given dotenv files, or .env when none are given, and then
// parses the environment. A missing default .env is not an error. Variables
// already set in the environment win over dotenv values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values the environment parser cannot
func (c *Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("DICEBITS_MODE %q: must be single or orientation", c.Mode)
	}
	if !c.Policy.Valid() {
		return fmt.Errorf("DICEBITS_POLICY %q: must be discard or greedy", c.Policy)
	}
	switch c.WordWidth {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("DICEBITS_WORD_WIDTH %d: must be 8, 16, 32 or 64", c.WordWidth)
	}
	if c.CapacityWords < 1 {
		return fmt.Errorf("DICEBITS_CAPACITY_WORDS %d: must be positive", c.CapacityWords)
	}
	if c.Simulate < 0 {
		return fmt.Errorf("DICEBITS_SIMULATE %d: cannot be negative", c.Simulate)
	}
	if c.Output == "" {
		return errors.New("DICEBITS_OUTPUT cannot be empty")
	}
	return nil
}
