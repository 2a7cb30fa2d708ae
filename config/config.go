// Package config builds a [money.Policy] from environment variables.
//
// Variables are read with the MONEY_ prefix:
//
//	MONEY_PRECISION       digits after the decimal point (default 2)
//	MONEY_ROUNDING_MODE   half_up, half_down, half_even, half_odd, up, down,
//	                      ceiling or floor (default half_up)
//	MONEY_ALLOW_NEGATIVE  permit negative amounts (default false)
//
// Errors are returned to the caller; nothing is logged.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/exactmoney/money"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "MONEY_"

// Config holds the monetary settings of an application.
type Config struct {
	Precision     int                `env:"PRECISION" envDefault:"2"`
	Rounding      money.RoundingMode `env:"ROUNDING_MODE" envDefault:"half_up"`
	AllowNegative bool               `env:"ALLOW_NEGATIVE" envDefault:"false"`
}

// Load loads configuration from environment variables.
// It first attempts to load from .env file if present; variables already
// set in the environment take precedence over the file.
func Load() (*Config, error) {
	if err := loadEnvFileIfExists(".env"); err != nil {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}
	return parse(env.Options{Prefix: Prefix})
}

// LoadFile is like [Load] but reads the given dotenv file, which must exist.
// The process environment is not modified.
func LoadFile(path string) (*Config, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %v: %w", path, err)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return LoadFromMap(vars)
}

// LoadFromMap loads configuration from the given variables instead of the
// process environment.
// A nil map is treated as empty, so every setting takes its default.
func LoadFromMap(vars map[string]string) (*Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFileIfExists loads a .env file if it exists, otherwise does nothing.
// Side effects: writes to the process environment if the file is present.
func loadEnvFileIfExists(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Policy returns the policy described by the configuration.
// It returns an error wrapping [money.ErrInvalidPolicy] if the precision is
// out of range or the rounding mode is unknown.
func (c *Config) Policy() (money.Policy, error) {
	p := money.Policy{
		Precision:     c.Precision,
		Rounding:      c.Rounding,
		AllowNegative: c.AllowNegative,
	}
	if err := p.Validate(); err != nil {
		return money.Policy{}, fmt.Errorf("validating config: %w", err)
	}
	return p, nil
}
