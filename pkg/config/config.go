package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	Catalog      CatalogConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogSourceMemory:
	case CatalogSourceSQL:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvCatalogSource, CatalogSourceSQL)
		}
	default:
		return fmt.Errorf("invalid %s %q", EnvCatalogSource, c.Catalog.Source)
	}
	switch c.DB.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return fmt.Errorf("invalid %s %q", EnvDBDriver, c.DB.Driver)
	}
	if c.Checkout.TaxRate.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvCheckoutTaxRate)
	}
	if c.Checkout.ShippingStandard.IsNegative() || c.Checkout.ShippingExpress.IsNegative() {
		return fmt.Errorf("shipping rates must not be negative")
	}
	if c.Checkout.Delay < 0 {
		return fmt.Errorf("%s must not be negative", EnvCheckoutDelay)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"URBANX_APP_ENV" required:"true"`
	Port         string `envconfig:"URBANX_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"URBANX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"URBANX_LOG_WARN_STACK" default:"false"`
	// CORSOrigins lists the storefront origins allowed to call the API.
	CORSOrigins []string `envconfig:"URBANX_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	Source   string        `envconfig:"URBANX_CATALOG_SOURCE" default:"memory"`
	CacheTTL time.Duration `envconfig:"URBANX_CATALOG_CACHE_TTL" default:"5m"`
}

type DBConfig struct {
	Driver string `envconfig:"URBANX_DB_DRIVER" default:"postgres"`
	DSN    string `envconfig:"URBANX_DB_DSN"`

	MaxOpenConns    int           `envconfig:"URBANX_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"URBANX_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"URBANX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"URBANX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; the catalog cache is disabled when neither URL
// nor Address is set.
type RedisConfig struct {
	URL          string        `envconfig:"URBANX_REDIS_URL"`
	Address      string        `envconfig:"URBANX_REDIS_ADDR"`
	Password     string        `envconfig:"URBANX_REDIS_PASSWORD"`
	DB           int           `envconfig:"URBANX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"URBANX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"URBANX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"URBANX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"URBANX_REDIS_READ_TIMEOUT" default:"2s"`
	WriteTimeout time.Duration `envconfig:"URBANX_REDIS_WRITE_TIMEOUT" default:"2s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionConfig struct {
	Secret string        `envconfig:"URBANX_SESSION_SECRET" required:"true"`
	Issuer string        `envconfig:"URBANX_SESSION_ISSUER" default:"urbanx"`
	TTL    time.Duration `envconfig:"URBANX_SESSION_TTL" default:"720h"`
	// IdleTTL evicts carts that have not been touched for this long.
	IdleTTL         time.Duration `envconfig:"URBANX_SESSION_IDLE_TTL" default:"2h"`
	JanitorInterval time.Duration `envconfig:"URBANX_SESSION_JANITOR_INTERVAL" default:"1m"`
	CookieSecure    bool          `envconfig:"URBANX_SESSION_COOKIE_SECURE" default:"false"`
}

type CheckoutConfig struct {
	Delay            time.Duration   `envconfig:"URBANX_CHECKOUT_DELAY" default:"1500ms"`
	TaxRate          decimal.Decimal `envconfig:"URBANX_CHECKOUT_TAX_RATE" default:"0.10"`
	ShippingStandard decimal.Decimal `envconfig:"URBANX_SHIPPING_STANDARD" default:"10"`
	ShippingExpress  decimal.Decimal `envconfig:"URBANX_SHIPPING_EXPRESS" default:"25"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"URBANX_AUTO_MIGRATE" default:"false"`
}
