package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Catalog.Source != CatalogSourceMemory {
		t.Fatalf("expected memory catalog by default, got %q", cfg.Catalog.Source)
	}
	if got := cfg.Checkout.Delay; got != 1500*time.Millisecond {
		t.Fatalf("expected checkout delay 1.5s, got %v", got)
	}
	if got := cfg.Checkout.TaxRate.String(); got != "0.1" {
		t.Fatalf("expected tax rate 0.1, got %s", got)
	}
	if got := cfg.Checkout.ShippingExpress.String(); got != "25" {
		t.Fatalf("expected express shipping 25, got %s", got)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without url/addr")
	}
	if len(cfg.App.CORSOrigins) != 2 {
		t.Fatalf("expected two default cors origins, got %v", cfg.App.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, CatalogSourceSQL)
	t.Setenv(EnvDBDriver, DBDriverSQLite)
	t.Setenv(EnvDBDSN, "file::memory:?cache=shared")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvCheckoutDelay, "10ms")
	t.Setenv(EnvShippingStandard, "7.50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.Driver != DBDriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.DB.Driver)
	}
	if !cfg.Redis.Enabled() {
		t.Fatalf("redis should be enabled")
	}
	if cfg.Checkout.Delay != 10*time.Millisecond {
		t.Fatalf("unexpected delay %v", cfg.Checkout.Delay)
	}
	if cfg.Checkout.ShippingStandard.StringFixed(2) != "7.50" {
		t.Fatalf("unexpected standard shipping %s", cfg.Checkout.ShippingStandard)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown catalog source": {EnvCatalogSource: "s3"},
		"sql without dsn":        {EnvCatalogSource: CatalogSourceSQL},
		"unknown driver":         {EnvDBDriver: "mysql"},
		"negative tax":           {EnvCheckoutTaxRate: "-0.1"},
		"negative shipping":      {EnvShippingExpress: "-1"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			setMinimalEnv(t)
			for k, v := range overrides {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvSessionSecret, "secret")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
