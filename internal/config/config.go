package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	ServerPort        string        `yaml:"port"`
	DatabaseType      string        `yaml:"database_type"`
	DatabasePath      string        `yaml:"db_path"`
	DatabaseURL       string        `yaml:"database_url"`
	MigrationsPath    string        `yaml:"migrations_path"`
	SessionBackend    string        `yaml:"session_backend"`
	RedisAddr         string        `yaml:"redis_addr"`
	RedisPrefix       string        `yaml:"redis_prefix"`
	SessionDuration   time.Duration `yaml:"session_duration"`
	SessionSecret     string        `yaml:"session_secret"`
	LogMode           string        `yaml:"log_mode"`
	TrajectorySamples int           `yaml:"trajectory_samples"`
	SubmitRateLimit   int           `yaml:"submit_rate_limit"`
	SubmitRateWindow  time.Duration `yaml:"submit_rate_window"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServerPort:        "8080",
		DatabaseType:      "sqlite",
		DatabasePath:      "./projectilelab.db",
		MigrationsPath:    "./migrations",
		SessionBackend:    "sql",
		RedisAddr:         "localhost:6379",
		RedisPrefix:       "projectilelab:session:",
		SessionDuration:   24 * time.Hour,
		LogMode:           "dev",
		TrajectorySamples: 100,
		SubmitRateLimit:   30,
		SubmitRateWindow:  time.Minute,
	}
}

// Load reads configuration from an optional YAML file named by CONFIG_FILE, then
// applies environment variables on top. Environment values win.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ServerPort = getEnv("PORT", c.ServerPort)
	c.DatabaseType = getEnv("DATABASE_TYPE", c.DatabaseType)
	c.DatabasePath = getEnv("DB_PATH", c.DatabasePath)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.MigrationsPath = getEnv("MIGRATIONS_PATH", c.MigrationsPath)
	c.SessionBackend = getEnv("SESSION_BACKEND", c.SessionBackend)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPrefix = getEnv("REDIS_PREFIX", c.RedisPrefix)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.LogMode = getEnv("LOG_MODE", c.LogMode)

	var err error
	if c.SessionDuration, err = getEnvDuration("SESSION_DURATION", c.SessionDuration); err != nil {
		return err
	}
	if c.SubmitRateWindow, err = getEnvDuration("SUBMIT_RATE_WINDOW", c.SubmitRateWindow); err != nil {
		return err
	}
	if c.TrajectorySamples, err = getEnvInt("TRAJECTORY_SAMPLES", c.TrajectorySamples); err != nil {
		return err
	}
	if c.SubmitRateLimit, err = getEnvInt("SUBMIT_RATE_LIMIT", c.SubmitRateLimit); err != nil {
		return err
	}
	return nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch strings.ToLower(c.SessionBackend) {
	case "sql", "redis", "memory":
	default:
		return fmt.Errorf("unsupported session backend: %s", c.SessionBackend)
	}

	switch strings.ToLower(c.DatabaseType) {
	case "sqlite", "sqlite3", "":
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" && strings.EqualFold(c.SessionBackend, "sql") {
			return fmt.Errorf("DATABASE_URL is required for database type %s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}

	if c.TrajectorySamples < 1 {
		return fmt.Errorf("trajectory samples must be positive, got %d", c.TrajectorySamples)
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("session duration must be positive, got %s", c.SessionDuration)
	}
	if c.IsProduction() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	return nil
}

// IsProduction reports whether the production log mode is selected
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.LogMode) {
	case "prod", "production":
		return true
	}
	return false
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
