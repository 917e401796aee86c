package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all soulgatchi configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Simulation SimulationConfig `yaml:"simulation"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Bind string `yaml:"bind" env:"SOULGATCHI_BIND"`
	Port int    `yaml:"port" env:"SOULGATCHI_PORT"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"SOULGATCHI_DB"`
}

type SimulationConfig struct {
	Baseline           float64       `yaml:"baseline" env:"SOULGATCHI_BASELINE"`
	DecayCheckInterval time.Duration `yaml:"decay_check_interval" env:"SOULGATCHI_DECAY_CHECK_INTERVAL"`
	DecayWindow        time.Duration `yaml:"decay_window" env:"SOULGATCHI_DECAY_WINDOW"`
	AgeInterval        time.Duration `yaml:"age_interval" env:"SOULGATCHI_AGE_INTERVAL"`
	DailyRollover      bool          `yaml:"daily_rollover" env:"SOULGATCHI_DAILY_ROLLOVER"`
	DefaultName        string        `yaml:"default_name" env:"SOULGATCHI_DEFAULT_NAME"`
	DefaultEmoji       string        `yaml:"default_emoji" env:"SOULGATCHI_DEFAULT_EMOJI"`
}

type LogConfig struct {
	Debug bool `yaml:"debug" env:"SOULGATCHI_DEBUG"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37778,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Simulation: SimulationConfig{
			Baseline:           20,
			DecayCheckInterval: 5 * time.Second,
			DecayWindow:        10 * time.Second,
			AgeInterval:        time.Hour,
			DailyRollover:      true,
			DefaultName:        "SoulGatchi",
			DefaultEmoji:       "🥺",
		},
	}
}

// DefaultPath returns ~/.soulgatchi/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".soulgatchi", "config.yaml"), nil
}

// Load builds a Config from defaults, then the YAML file at path (a missing
// file is not an error), then SOULGATCHI_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Baseline <= 0 || s.Baseline > 100 {
		return fmt.Errorf("simulation.baseline must be in (0, 100], got %v", s.Baseline)
	}
	if s.DecayCheckInterval <= 0 {
		return fmt.Errorf("simulation.decay_check_interval must be positive")
	}
	if s.DecayWindow <= 0 {
		return fmt.Errorf("simulation.decay_window must be positive")
	}
	if s.AgeInterval <= 0 {
		return fmt.Errorf("simulation.age_interval must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
