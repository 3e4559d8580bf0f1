package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "commerce"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced outside envconfig tags (tests, error
// messages).
const (
	EnvAppEnv     = "COMMERCE_APP_ENV"
	EnvPort       = "COMMERCE_APP_PORT"
	EnvDBDSN      = "COMMERCE_DB_DSN"
	EnvDBHost     = "COMMERCE_DB_HOST"
	EnvDBUser     = "COMMERCE_DB_USER"
	EnvDBName     = "COMMERCE_DB_NAME"
	EnvRedisURL   = "COMMERCE_REDIS_URL"
	EnvJWTSecret  = "COMMERCE_JWT_SECRET"
	EnvJWTIssuer  = "COMMERCE_JWT_ISSUER"
	EnvJWTExpMins = "COMMERCE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
