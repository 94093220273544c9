package config

// EnvPrefix is passed to envconfig; individual fields carry fully prefixed
// names so the prefix stays empty here.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (DSN assembly,
// tests).
const (
	EnvAppEnv   = "ORDERDESK_APP_ENV"
	EnvPort     = "ORDERDESK_APP_PORT"
	EnvDBDSN    = "ORDERDESK_DB_DSN"
	EnvDBHost   = "ORDERDESK_DB_HOST"
	EnvDBUser   = "ORDERDESK_DB_USER"
	EnvDBName   = "ORDERDESK_DB_NAME"
	EnvRedisURL = "ORDERDESK_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
