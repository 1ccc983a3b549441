package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken  string
	VocabFile string
	Database  DatabaseConfig
	Game      GameConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// GameConfig holds game tuning read from the TOML file named by GAME_CONFIG
type GameConfig struct {
	AutofillDelayMs    int    `toml:"autofill_delay_ms"`
	AutoClearMs        int    `toml:"auto_clear_ms"`
	AutoCommit         bool   `toml:"auto_commit"`
	DefaultLanguage    string `toml:"default_language"`
	IdleTimeoutMinutes int    `toml:"idle_timeout_minutes"`
}

// DefaultGameConfig returns the built-in game tuning
func DefaultGameConfig() GameConfig {
	return GameConfig{
		AutofillDelayMs:    100,
		AutoClearMs:        3000,
		AutoCommit:         true,
		DefaultLanguage:    "en",
		IdleTimeoutMinutes: 30,
	}
}

// AutofillDelay returns the inter-letter autofill delay
func (g GameConfig) AutofillDelay() time.Duration {
	return time.Duration(g.AutofillDelayMs) * time.Millisecond
}

// AutoClearDelay returns how long a completed word stays on screen in single-word mode
func (g GameConfig) AutoClearDelay() time.Duration {
	return time.Duration(g.AutoClearMs) * time.Millisecond
}

// IdleTimeout returns how long an untouched game lives
func (g GameConfig) IdleTimeout() time.Duration {
	return time.Duration(g.IdleTimeoutMinutes) * time.Minute
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	game, err := LoadGameConfig(os.Getenv("GAME_CONFIG"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:  os.Getenv("BOT_TOKEN"),
		VocabFile: os.Getenv("VOCAB_FILE"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordballs"),
			User:     getEnv("DB_USER", "wordballs"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Game: game,
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// LoadGameConfig decodes path over the defaults. An empty path or a missing
// file yields the defaults.
func LoadGameConfig(path string) (GameConfig, error) {
	game := DefaultGameConfig()
	if path == "" {
		return game, nil
	}

	if _, err := toml.DecodeFile(path, &game); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultGameConfig(), nil
		}
		return GameConfig{}, fmt.Errorf("failed to parse game config %s: %w", path, err)
	}

	if err := game.validate(); err != nil {
		return GameConfig{}, fmt.Errorf("invalid game config %s: %w", path, err)
	}
	return game, nil
}

func (g GameConfig) validate() error {
	if g.AutofillDelayMs <= 0 {
		return fmt.Errorf("autofill_delay_ms must be positive")
	}
	if g.AutoClearMs < 0 {
		return fmt.Errorf("auto_clear_ms must not be negative")
	}
	if g.IdleTimeoutMinutes <= 0 {
		return fmt.Errorf("idle_timeout_minutes must be positive")
	}
	if g.DefaultLanguage == "" {
		return fmt.Errorf("default_language is required")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
