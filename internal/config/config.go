// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every field can also be overridden by its env:"..." variable.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backends understood by main.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true" validate:"oneof=dev staging prod"`

	// Storage is embedded (not a pointer) so cfg.Storage.Backend and the
	// promoted cfg.Backend both work.
	Storage `yaml:"storage"`
}

// Storage selects where the registry state lives. Both backends keep
// state in memory only; nothing survives the process.
type Storage struct {
	// Backend is "memory" (Go maps) or "sqlite" (in-memory SQLite).
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"memory" validate:"oneof=memory sqlite"`

	// Name names the in-memory SQLite database. Empty means random.
	Name string `yaml:"name" env:"STORAGE_NAME" validate:"omitempty,alphanum|uuid"`
}

// Load reads path, applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path, loads it, and exits the process on
// any failure. If this returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
