package config

import (
	"time"
)

// Environment names recognised by the client
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultAPIURL is used when neither the config file nor WAREHOUSE_API_URL set a base URL
const DefaultAPIURL = "http://127.0.0.1:8000/api"

// Config represents the client configuration
type Config struct {
	App         AppConfig     `yaml:"app"`
	API         APIConfig     `yaml:"api"`
	Environment string        `yaml:"environment" default:"development"` // development, production
	Endpoints   Endpoints     `yaml:"endpoints"`
	Session     SessionConfig `yaml:"session"`
	Logging     LoggingConfig `yaml:"logging"`

	// Source is the YAML file the configuration was read from, empty if none
	Source string `yaml:"-"`

	// explicitEnv records that the environment came from the file or WAREHOUSE_ENV
	// rather than the default
	explicitEnv bool
}

// AppConfig holds application identity
type AppConfig struct {
	Name    string `yaml:"name" default:"Warehouse Inventory Management"`
	Version string `yaml:"version" default:"1.0.0"`

	// Timezone evaluates relative date filters such as "today"; empty means UTC
	Timezone string `yaml:"timezone"`
}

// APIConfig holds backend API configuration
type APIConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // 0 means no client-side timeout
}

// Endpoints maps logical operations to paths relative to the API base URL.
// Paths carry their own leading and trailing slashes.
type Endpoints struct {
	Login            string `yaml:"login"`
	Register         string `yaml:"register"`
	Refresh          string `yaml:"refresh"`
	Products         string `yaml:"products"`
	Transactions     string `yaml:"transactions"`
	StockDetails     string `yaml:"stock_details"`
	InventorySummary string `yaml:"inventory_summary"`
	DashboardStats   string `yaml:"dashboard_stats"`
}

// SessionConfig selects where the access and refresh tokens are persisted
type SessionConfig struct {
	Store           string      `yaml:"store" default:"file"` // file, encrypted, redis, memory
	Path            string      `yaml:"path"`                 // credentials file, defaults to ~/.config/warehouse/credentials-<env>.json
	EncryptionKey   string      `yaml:"encryption_key"`       // base64 encoded 32 byte key for the encrypted store
	Redis           RedisConfig `yaml:"redis"`
	CoalesceRefresh bool        `yaml:"coalesce_refresh" default:"true"`
}

// RedisConfig holds connection settings for the redis token store
type RedisConfig struct {
	Addr     string `yaml:"addr" default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix" default:"warehouse:"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"` // empty means derive from the environment
	Format string `yaml:"format" default:"text"`
	File   string `yaml:"file"`
}

// DefaultEndpoints returns the backend's REST paths
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:            "/auth/login/",
		Register:         "/auth/register/",
		Refresh:          "/auth/refresh/",
		Products:         "/products/",
		Transactions:     "/transactions/",
		StockDetails:     "/stock-details/",
		InventorySummary: "/inventory-summary/",
		DashboardStats:   "/dashboard-stats/",
	}
}

// ResolveURL joins the API base URL and an endpoint path.
// No normalisation is done: callers supply correctly slashed paths.
func (c *Config) ResolveURL(endpoint string) string {
	return c.API.URL + endpoint
}

// Debug reports whether debug behaviour is enabled. It requires the
// development environment to be named explicitly; the default does not count.
func (c *Config) Debug() bool {
	return c.explicitEnv && c.IsDevelopment()
}

// IsDevelopment reports whether the client runs against a development backend
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction reports whether the client runs against a production backend
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// LogLevel returns the configured log level, or one derived from the environment
func (c *Config) LogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	if c.Debug() {
		return "debug"
	}
	return "warn"
}

// withDefaults fills zero-valued endpoint paths from the defaults so a partial
// endpoints block in YAML only overrides what it names
func (e Endpoints) withDefaults() Endpoints {
	d := DefaultEndpoints()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&e.Login, d.Login)
	fill(&e.Register, d.Register)
	fill(&e.Refresh, d.Refresh)
	fill(&e.Products, d.Products)
	fill(&e.Transactions, d.Transactions)
	fill(&e.StockDetails, d.StockDetails)
	fill(&e.InventorySummary, d.InventorySummary)
	fill(&e.DashboardStats, d.DashboardStats)
	return e
}
