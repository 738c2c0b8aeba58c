package config

const EnvPrefix = "HELPHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	SinkLog   = "log"
	SinkRedis = "redis"
)

const (
	EnvAppEnv                = "HELPHUB_APP_ENV"
	EnvLogLevel              = "HELPHUB_LOG_LEVEL"
	EnvDBDriver              = "HELPHUB_DB_DRIVER"
	EnvDBPath                = "HELPHUB_DB_PATH"
	EnvDBDSN                 = "HELPHUB_DB_DSN"
	EnvReportsAllowReopen    = "HELPHUB_REPORTS_ALLOW_REOPEN"
	EnvReportsExcerptLength  = "HELPHUB_REPORTS_EXCERPT_LENGTH"
	EnvNotificationSinks     = "HELPHUB_NOTIFICATION_SINKS"
	EnvNotificationRedisList = "HELPHUB_NOTIFICATION_REDIS_LIST"
	EnvRedisURL              = "HELPHUB_REDIS_URL"
	EnvRedisAddr             = "HELPHUB_REDIS_ADDR"
)
