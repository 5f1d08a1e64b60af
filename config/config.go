// Package config reads service settings from the environment, after loading
// any .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/aguxez/carnitarget/targets"
)

type Config struct {
	Port        string   `env:"CARNI_PORT"         envDefault:"8080"`
	DataDir     string   `env:"CARNI_DATA_DIR"     envDefault:"data"`
	LogLevel    string   `env:"CARNI_LOG_LEVEL"    envDefault:"info"`
	CORSOrigins []string `env:"CARNI_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// SaltGramsPerTeaspoon is the weight of one teaspoon of the user's salt.
	SaltGramsPerTeaspoon float64 `env:"CARNI_SALT_GRAMS_PER_TSP" envDefault:"6"`

	LLM LLMConfig
}

// LLMConfig configures the meal plan agent. An empty APIKey disables it.
type LLMConfig struct {
	APIKey     string `env:"OPENROUTER_API_KEY"`
	BaseURL    string `env:"CARNI_LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	Model      string `env:"CARNI_LLM_MODEL"    envDefault:"deepseek/deepseek-r1-distill-llama-70b"`
	MemorySize int    `env:"CARNI_LLM_MEMORY"   envDefault:"5"`
}

// Load reads envFiles (or ./.env when none are given) and then the process
// environment. Variables already set win over file values. A missing default
// .env is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data dir must be set")
	}
	if c.SaltGramsPerTeaspoon <= 0 {
		return fmt.Errorf("salt grams per teaspoon must be positive, got %v", c.SaltGramsPerTeaspoon)
	}
	if c.LLM.MemorySize <= 0 {
		return fmt.Errorf("llm memory size must be positive, got %d", c.LLM.MemorySize)
	}
	return nil
}

func (c Config) Units() targets.UnitOptions {
	return targets.UnitOptions{SaltGramsPerTeaspoon: c.SaltGramsPerTeaspoon}
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// ProfileDir holds the profile YAML.
func (c Config) ProfileDir() string {
	return filepath.Join(c.DataDir, "profile")
}

// DailyDir holds the daily log CSVs.
func (c Config) DailyDir() string {
	return filepath.Join(c.DataDir, "daily")
}
