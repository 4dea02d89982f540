package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/database"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// ConfigFileEnv names the environment variable pointing to an optional YAML file
const ConfigFileEnv = "CONFIG_FILE"

// envKeys maps the supported environment variables to configuration keys
var envKeys = map[string]string{
	"APP_PORT":        "port",
	"APP_HOST":        "host",
	"APP_ENV":         "environment",
	"LOG_LEVEL":       "log_level",
	"SEED_DATABASE":   "seed_database",
	"METRICS_ENABLED": "metrics_enabled",
	"DB_DRIVER":       "db.driver",
	"DB_HOST":         "db.host",
	"DB_PORT":         "db.port",
	"DB_USER":         "db.user",
	"DB_PASSWORD":     "db.password",
	"DB_NAME":         "db.name",
	"DB_SSLMODE":      "db.sslmode",
	"DB_PATH":         "db.path",
	"DB_MAX_RETRIES":  "db.max_retries",
}

// Config used for the application configuration
type Config struct {
	// Server Configuration
	Port        int    `koanf:"port"`
	Host        string `koanf:"host"`
	Environment string `koanf:"environment"`

	// Logging configuration. Empty keeps the level derived from Environment.
	LogLevel string `koanf:"log_level"`

	// Database configuration
	Database database.DatabaseConfig `koanf:"db"`

	// SeedDatabase inserts the sample catalog when the pizza table is empty
	SeedDatabase bool `koanf:"seed_database"`

	// MetricsEnabled exposes Prometheus metrics on /metrics
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// Defaults returns the configuration used when nothing overrides it
func Defaults() *Config {
	return &Config{
		Port:        8080,
		Host:        "localhost",
		Environment: "development",
		Database: database.DatabaseConfig{
			Driver:     "sqlite",
			Host:       "localhost",
			Port:       "5432",
			User:       "user",
			Password:   "password",
			Name:       "pizzeria",
			SSLMode:    "disable",
			Path:       "pizzeria.sqlite",
			MaxRetries: 5,
		},
		SeedDatabase:   true,
		MetricsEnabled: true,
	}
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, LogLevel: %s, Database: %s, SeedDatabase: %t, MetricsEnabled: %t}",
		c.Port, c.Host, c.Environment, c.LogLevel, c.Database.String(), c.SeedDatabase, c.MetricsEnabled)
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig builds the configuration by layering, from lowest to highest precedence:
// defaults, the YAML file named by CONFIG_FILE (if set) and environment variables.
// Returns an error if a value cannot be parsed or is out of range
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration")
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		log.WithField("path", path).Debug("Loading configuration file")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", func(key string) string {
		// Unknown variables map to "" and are skipped
		return envKeys[key]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	config := Defaults()
	if err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Validate checks the values that would otherwise fail late at startup
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "postgres", "postgresql":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}
