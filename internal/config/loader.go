package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/devilmonastery/warehouse/internal/pkg/timeutil"
)

// Environment variables consulted by Load
const (
	EnvAPIURL     = "WAREHOUSE_API_URL"
	EnvName       = "WAREHOUSE_ENV"
	EnvAPITimeout = "WAREHOUSE_API_TIMEOUT"
	EnvConfigPath = "WAREHOUSE_CONFIG"
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(data []byte) []byte {
	return []byte(os.ExpandEnv(string(data)))
}

// DefaultConfigPaths defines the default locations to search for configuration files
var DefaultConfigPaths = []string{
	"./warehouse.yaml",
	"./warehouse.yml",
	"./configs/warehouse.yaml",
	"./configs/warehouse.yml",
}

// Load resolves the configuration once at process start.
//
// Precedence, lowest first: built-in defaults, YAML file, environment.
// A .env file in the working directory is loaded into the environment first
// if it exists. An empty configPath falls back to WAREHOUSE_CONFIG and then to
// DefaultConfigPaths; finding no file at all is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Set default values
	config := &Config{
		App: AppConfig{
			Name:    "Warehouse Inventory Management",
			Version: "1.0.0",
		},
		API: APIConfig{
			URL: DefaultAPIURL,
		},
		Session: SessionConfig{
			Store: "file",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "warehouse:",
			},
			CoalesceRefresh: true,
		},
		Logging: LoggingConfig{
			Format: "text",
		},
	}

	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" && fileExists(configPath) {
		slog.Debug("loading config file", slog.String("component", "config"), slog.String("path", configPath))
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		data = expandEnvVars(data)

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		config.Source = configPath
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	config.explicitEnv = config.Environment != ""
	if config.Environment == "" {
		config.Environment = EnvDevelopment
	}

	config.Endpoints = config.Endpoints.withDefaults()

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overrides file values with environment variables
func applyEnv(config *Config) error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		config.API.URL = v
	}
	if v := os.Getenv(EnvName); v != "" {
		config.Environment = v
	}
	if v := os.Getenv(EnvAPITimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAPITimeout, v, err)
		}
		config.API.Timeout = d
	}
	return nil
}

// findConfigFile searches for a configuration file in default locations
func findConfigFile() string {
	for _, path := range DefaultConfigPaths {
		if fileExists(path) {
			return path
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "warehouse", "config.yaml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// validate performs basic validation on the configuration
func validate(config *Config) error {
	if config.API.URL == "" {
		config.API.URL = DefaultAPIURL
	}

	switch config.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("environment must be %q or %q, got %q", EnvDevelopment, EnvProduction, config.Environment)
	}

	if config.App.Timezone != "" && !timeutil.IsValidTimezone(config.App.Timezone) {
		return fmt.Errorf("app.timezone %q is not a valid IANA timezone", config.App.Timezone)
	}

	if config.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	switch config.Session.Store {
	case "file", "encrypted", "redis", "memory":
	default:
		return fmt.Errorf("session.store must be one of file, encrypted, redis, memory; got %q", config.Session.Store)
	}

	if config.Session.Store == "encrypted" && config.Session.EncryptionKey == "" {
		return fmt.Errorf("session.encryption_key is required for the encrypted store")
	}

	return nil
}
