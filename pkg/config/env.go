package config

const EnvPrefix = "URBANX"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "URBANX_APP_ENV"
	EnvPort         = "URBANX_APP_PORT"
	EnvLogLevel     = "URBANX_LOG_LEVEL"
	EnvLogWarnStack = "URBANX_LOG_WARN_STACK"

	EnvCatalogSource   = "URBANX_CATALOG_SOURCE"
	EnvCatalogCacheTTL = "URBANX_CATALOG_CACHE_TTL"

	EnvDBDriver = "URBANX_DB_DRIVER"
	EnvDBDSN    = "URBANX_DB_DSN"

	EnvRedisURL  = "URBANX_REDIS_URL"
	EnvRedisAddr = "URBANX_REDIS_ADDR"

	EnvSessionSecret  = "URBANX_SESSION_SECRET"
	EnvSessionIssuer  = "URBANX_SESSION_ISSUER"
	EnvSessionTTL     = "URBANX_SESSION_TTL"
	EnvSessionIdleTTL = "URBANX_SESSION_IDLE_TTL"

	EnvCheckoutDelay    = "URBANX_CHECKOUT_DELAY"
	EnvCheckoutTaxRate  = "URBANX_CHECKOUT_TAX_RATE"
	EnvShippingStandard = "URBANX_SHIPPING_STANDARD"
	EnvShippingExpress  = "URBANX_SHIPPING_EXPRESS"

	EnvAutoMigrate = "URBANX_AUTO_MIGRATE"
)

const (
	CatalogSourceMemory = "memory"
	CatalogSourceSQL    = "sql"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)
