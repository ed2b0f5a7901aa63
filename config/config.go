package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken  string `env:"DISCORD_TOKEN"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:">"`

	// Storage configuration
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseName  string `env:"DATABASE_NAME"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"botdata.sqlite"`

	// Enrichment endpoints
	ImageAPIURL       string        `env:"IMAGE_API_URL" envDefault:"https://api.waifu.pics/sfw/waifu"`
	WordAPIURL        string        `env:"WORD_API_URL" envDefault:"https://random-word-form.herokuapp.com"`
	EnrichmentTimeout time.Duration `env:"ENRICHMENT_TIMEOUT" envDefault:"5s"`

	// Bot behaviour
	CommandTimeout   time.Duration `env:"COMMAND_TIMEOUT" envDefault:"15s"`
	ScopeRollListing bool          `env:"SCOPE_ROLL_LISTING" envDefault:"false"`

	// Debug API listen address, disabled when empty
	DebugAPIAddr string `env:"DEBUG_API_ADDR"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		if instance != nil {
			return
		}
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// SetTestConfig replaces the global configuration. Only meant for tests.
func SetTestConfig(cfg *Config) {
	once.Do(func() {})
	instance = cfg
}

// NewTestConfig returns a configuration with defaults suitable for tests
func NewTestConfig() *Config {
	return &Config{
		CommandPrefix:     ">",
		StorageDriver:     DriverSQLite,
		SQLitePath:        "test.sqlite",
		EnrichmentTimeout: time.Second,
		CommandTimeout:    5 * time.Second,
		LogLevel:          "debug",
		Environment:       "test",
	}
}

// Load parses configuration from the environment without touching the singleton
func Load() (*Config, error) {
	return load()
}

// load loads an optional .env file and then parses environment variables
func load() (*Config, error) {
	// A missing .env file is fine, real environment variables still apply
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks configuration that cannot be expressed as defaults
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.Environment != "test" && c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.CommandPrefix == "" {
		return fmt.Errorf("COMMAND_PREFIX cannot be empty")
	}
	if c.EnrichmentTimeout <= 0 {
		return fmt.Errorf("ENRICHMENT_TIMEOUT must be positive")
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("COMMAND_TIMEOUT must be positive")
	}
	return nil
}

// RequireDiscord reports an error when the bot cannot connect to Discord
func (c *Config) RequireDiscord() error {
	if c.Environment != "test" && c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	return nil
}
