package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Selection SelectionConfig `mapstructure:"selection"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog source locations.
// A location is "embedded:<name>", a file path or an http(s) URL.
type CatalogConfig struct {
	Products     string        `mapstructure:"products"`
	Plans        string        `mapstructure:"plans"`
	PlanTypes    string        `mapstructure:"plan_types"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	FetchRPS     float64       `mapstructure:"fetch_rps"`
}

// SelectionConfig holds result limits and the age denylist
type SelectionConfig struct {
	ProductLimit  int      `mapstructure:"product_limit"` // 0 = no limit
	PlanLimit     int      `mapstructure:"plan_limit"`
	ChildDenylist []string `mapstructure:"child_denylist"` // nil = built-in list
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP   int           `mapstructure:"per_ip"` // requests per minute, 0 disables
	Burst   int           `mapstructure:"burst"`
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error (default: determined by environment)
}

var environments = map[string]bool{
	"development": true,
	"test":        true,
	"staging":     true,
	"production":  true,
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/healthcare-selector/")

	// Environment variable settings
	v.SetEnvPrefix("SELECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// No default: when unset the selector's built-in denylist applies
	if err := v.BindEnv("selection.child_denylist"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.products", "embedded:products")
	v.SetDefault("catalog.plans", "data/dummy_insurance_plans.csv")
	v.SetDefault("catalog.plan_types", "data/plan_type_definitions.csv")
	v.SetDefault("catalog.fetch_timeout", "30s")
	v.SetDefault("catalog.fetch_rps", 1.0)

	// Selection defaults
	v.SetDefault("selection.product_limit", 0)
	v.SetDefault("selection.plan_limit", 5)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("ratelimit.idle_ttl", "10m")

	// Logging defaults
	v.SetDefault("logging.level", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set SELECTOR_SERVER_PORT)")
	}

	if !environments[config.Server.Environment] {
		return fmt.Errorf("environment must be one of development, test, staging, production, got: %s", config.Server.Environment)
	}

	if config.Catalog.Products == "" {
		return fmt.Errorf("product catalog source is required (set SELECTOR_CATALOG_PRODUCTS)")
	}

	if config.Selection.ProductLimit < 0 || config.Selection.PlanLimit < 0 {
		return fmt.Errorf("selection limits must not be negative")
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit per IP must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.RateLimit.PerIP > 0 && config.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1 when rate limiting is enabled")
	}

	return nil
}
