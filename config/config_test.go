package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"SELECTOR_SERVER_PORT",
	"SELECTOR_SERVER_ENVIRONMENT",
	"SELECTOR_SERVER_ALLOWED_ORIGINS",
	"SELECTOR_CATALOG_PRODUCTS",
	"SELECTOR_CATALOG_PLANS",
	"SELECTOR_CATALOG_PLAN_TYPES",
	"SELECTOR_CATALOG_FETCH_TIMEOUT",
	"SELECTOR_SELECTION_PRODUCT_LIMIT",
	"SELECTOR_SELECTION_PLAN_LIMIT",
	"SELECTOR_SELECTION_CHILD_DENYLIST",
	"SELECTOR_RATELIMIT_PER_IP",
	"SELECTOR_RATELIMIT_BURST",
	"SELECTOR_LOGGING_LEVEL",
}

// clearEnv unsets every SELECTOR_ variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

// inTempDir runs the test from an empty directory so no config.yaml is picked up
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.Products != "embedded:products" {
			t.Errorf("Catalog.Products = %s, want embedded:products", cfg.Catalog.Products)
		}
		if cfg.Catalog.Plans != "data/dummy_insurance_plans.csv" {
			t.Errorf("Catalog.Plans = %s, want data/dummy_insurance_plans.csv", cfg.Catalog.Plans)
		}
		if cfg.Catalog.FetchTimeout != 30*time.Second {
			t.Errorf("Catalog.FetchTimeout = %v, want 30s", cfg.Catalog.FetchTimeout)
		}
		if cfg.Selection.PlanLimit != 5 {
			t.Errorf("Selection.PlanLimit = %d, want 5", cfg.Selection.PlanLimit)
		}
		if cfg.Selection.ProductLimit != 0 {
			t.Errorf("Selection.ProductLimit = %d, want 0", cfg.Selection.ProductLimit)
		}
		if cfg.Selection.ChildDenylist != nil {
			t.Errorf("Selection.ChildDenylist = %v, want nil so the built-in list applies", cfg.Selection.ChildDenylist)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.IdleTTL != 10*time.Minute {
			t.Errorf("RateLimit.IdleTTL = %v, want 10m", cfg.RateLimit.IdleTTL)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("SELECTOR_SERVER_PORT", "9090")
		t.Setenv("SELECTOR_SERVER_ENVIRONMENT", "production")
		t.Setenv("SELECTOR_CATALOG_PLANS", "https://example.com/plans.csv")
		t.Setenv("SELECTOR_CATALOG_FETCH_TIMEOUT", "5s")
		t.Setenv("SELECTOR_SELECTION_PLAN_LIMIT", "10")
		t.Setenv("SELECTOR_SELECTION_CHILD_DENYLIST", "Lancets,Razor")
		t.Setenv("SELECTOR_RATELIMIT_PER_IP", "200")
		t.Setenv("SELECTOR_LOGGING_LEVEL", "warn")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.Plans != "https://example.com/plans.csv" {
			t.Errorf("Catalog.Plans = %s, want https://example.com/plans.csv", cfg.Catalog.Plans)
		}
		if cfg.Catalog.FetchTimeout != 5*time.Second {
			t.Errorf("Catalog.FetchTimeout = %v, want 5s", cfg.Catalog.FetchTimeout)
		}
		if cfg.Selection.PlanLimit != 10 {
			t.Errorf("Selection.PlanLimit = %d, want 10", cfg.Selection.PlanLimit)
		}
		if len(cfg.Selection.ChildDenylist) != 2 || cfg.Selection.ChildDenylist[1] != "Razor" {
			t.Errorf("Selection.ChildDenylist = %v, want [Lancets Razor]", cfg.Selection.ChildDenylist)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Logging.Level != "warn" {
			t.Errorf("Logging.Level = %s, want warn", cfg.Logging.Level)
		}
	})

	t.Run("reads config file", func(t *testing.T) {
		clearEnv(t)
		dir := inTempDir(t)
		content := "server:\n  port: \"7070\"\nselection:\n  product_limit: 3\n"
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if cfg.Selection.ProductLimit != 3 {
			t.Errorf("Selection.ProductLimit = %d, want 3", cfg.Selection.ProductLimit)
		}
	})

	t.Run("fails validation for unknown environment", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("SELECTOR_SERVER_ENVIRONMENT", "moon")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unknown environment")
		}
	})

	t.Run("fails validation for negative limit", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("SELECTOR_SELECTION_PLAN_LIMIT", "-1")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for negative limit")
		}
	})

	t.Run("fails validation for zero burst with rate limiting", func(t *testing.T) {
		clearEnv(t)
		inTempDir(t)
		t.Setenv("SELECTOR_RATELIMIT_BURST", "0")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero burst")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080", Environment: "test"},
			Catalog:   CatalogConfig{Products: "embedded:products"},
			RateLimit: RateLimitConfig{PerIP: 0},
		}
	}

	if err := validate(valid()); err != nil {
		t.Errorf("validate() error = %v, want nil", err)
	}

	cfg := valid()
	cfg.Server.Port = ""
	if err := validate(cfg); err == nil {
		t.Error("validate() error = nil, want error for empty port")
	}

	cfg = valid()
	cfg.Catalog.Products = ""
	if err := validate(cfg); err == nil {
		t.Error("validate() error = nil, want error for empty product source")
	}

	cfg = valid()
	cfg.RateLimit.PerIP = -5
	if err := validate(cfg); err == nil {
		t.Error("validate() error = nil, want error for negative rate limit")
	}
}
