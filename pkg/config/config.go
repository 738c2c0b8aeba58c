package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Password      PasswordConfig
	Reports       ReportsConfig
	Notifications NotificationsConfig
	Redis         RedisConfig
	Metrics       MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Notifications.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HELPHUB_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"HELPHUB_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"HELPHUB_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"HELPHUB_LOG_WARN_STACK" default:"false"`
}

// IsProd reports whether the process runs against production data.
func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"HELPHUB_DB_DRIVER" default:"sqlite"`
	Path   string `envconfig:"HELPHUB_DB_PATH" default:"helphub.db"`
	DSN    string `envconfig:"HELPHUB_DB_DSN"`

	MaxOpenConns    int           `envconfig:"HELPHUB_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"HELPHUB_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"HELPHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HELPHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HELPHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HELPHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HELPHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HELPHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HELPHUB_ARGON_KEY_LEN" default:"32"`
}

type ReportsConfig struct {
	AllowReopen   bool `envconfig:"HELPHUB_REPORTS_ALLOW_REOPEN" default:"false"`
	ExcerptLength int  `envconfig:"HELPHUB_REPORTS_EXCERPT_LENGTH" default:"50"`
}

type NotificationsConfig struct {
	Sinks        []string `envconfig:"HELPHUB_NOTIFICATION_SINKS" default:"log"`
	RedisListKey string   `envconfig:"HELPHUB_NOTIFICATION_REDIS_LIST" default:"notices"`
	RedisMaxLen  int64    `envconfig:"HELPHUB_NOTIFICATION_REDIS_MAX_LEN" default:"1000"`
}

// HasSink reports whether the named sink is enabled.
func (n NotificationsConfig) HasSink(name string) bool {
	for _, sink := range n.Sinks {
		if strings.EqualFold(strings.TrimSpace(sink), name) {
			return true
		}
	}
	return false
}

type RedisConfig struct {
	URL          string        `envconfig:"HELPHUB_REDIS_URL"`
	Address      string        `envconfig:"HELPHUB_REDIS_ADDR"`
	Password     string        `envconfig:"HELPHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"HELPHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HELPHUB_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"HELPHUB_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"HELPHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HELPHUB_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"HELPHUB_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type MetricsConfig struct {
	Namespace string `envconfig:"HELPHUB_METRICS_NAMESPACE" default:"helphub"`
}

func (db *DBConfig) ensureDSN() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DriverSQLite:
		if db.DSN != "" {
			return nil
		}
		if strings.TrimSpace(db.Path) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBPath, EnvDBDriver, DriverSQLite)
		}
		db.DSN = db.Path
		return nil
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DriverPostgres)
		}
		return nil
	default:
		return fmt.Errorf("unsupported %s %q (expected %s or %s)", EnvDBDriver, db.Driver, DriverSQLite, DriverPostgres)
	}
}

func (n NotificationsConfig) validate(redis RedisConfig) error {
	for _, sink := range n.Sinks {
		switch strings.ToLower(strings.TrimSpace(sink)) {
		case SinkLog:
		case SinkRedis:
			if redis.URL == "" && redis.Address == "" {
				return fmt.Errorf("%s or %s is required for the %s notification sink", EnvRedisURL, EnvRedisAddr, SinkRedis)
			}
		default:
			return fmt.Errorf("unknown notification sink %q", sink)
		}
	}
	return nil
}
