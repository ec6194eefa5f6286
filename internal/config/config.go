// Package config loads operational settings from an optional YAML file with
// environment-variable overrides. Engine tuning constants are code, not
// config; only knobs an operator legitimately turns live here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	DatabaseDSN   string `yaml:"database_dsn"`
	MigrationsDir string `yaml:"migrations_dir"`

	GroupSize     int    `yaml:"group_size"`
	TimeoutMS     int    `yaml:"timeout_ms"`
	GlobalSeed    string `yaml:"global_seed"`
	TickIntervalS int    `yaml:"tick_interval_s"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		ListenAddr:    ":8080",
		MigrationsDir: "./migrations",
		GroupSize:     10,
		TimeoutMS:     4000,
		GlobalSeed:    "volition",
		LogLevel:      "info",
	}
}

// Load reads the YAML file at path (skipped when path is empty or missing)
// and then applies VOLITION_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.ListenAddr = strEnv("VOLITION_LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatabaseDSN = strEnv("VOLITION_DB_DSN", cfg.DatabaseDSN)
	cfg.MigrationsDir = strEnv("VOLITION_MIGRATIONS_DIR", cfg.MigrationsDir)
	cfg.GroupSize = intEnv("VOLITION_GROUP_SIZE", cfg.GroupSize)
	cfg.TimeoutMS = intEnv("VOLITION_TIMEOUT_MS", cfg.TimeoutMS)
	cfg.GlobalSeed = strEnv("VOLITION_GLOBAL_SEED", cfg.GlobalSeed)
	cfg.TickIntervalS = intEnv("VOLITION_TICK_INTERVAL_S", cfg.TickIntervalS)
	cfg.LogLevel = strEnv("VOLITION_LOG_LEVEL", cfg.LogLevel)

	if cfg.GroupSize <= 0 {
		return Config{}, fmt.Errorf("group_size must be positive, got %d", cfg.GroupSize)
	}
	if cfg.TimeoutMS <= 0 {
		return Config{}, fmt.Errorf("timeout_ms must be positive, got %d", cfg.TimeoutMS)
	}
	return cfg, nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalS) * time.Second
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
