package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "shopease"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Session  SessionConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPEASE_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPEASE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPEASE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPEASE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"SHOPEASE_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SHOPEASE_DB_DSN" default:"file::memory:?cache=shared"`

	MaxOpenConns    int           `envconfig:"SHOPEASE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPEASE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPEASE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPEASE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

// RedisConfig is optional: when neither URL nor Address is set the
// checkout handoff falls back to the in-process store.
type RedisConfig struct {
	URL          string        `envconfig:"SHOPEASE_REDIS_URL"`
	Address      string        `envconfig:"SHOPEASE_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPEASE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPEASE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPEASE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPEASE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPEASE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPEASE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPEASE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type SessionConfig struct {
	TTL             time.Duration `envconfig:"SHOPEASE_SESSION_TTL" default:"24h"`
	JanitorInterval time.Duration `envconfig:"SHOPEASE_SESSION_JANITOR_INTERVAL" default:"5m"`
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration `envconfig:"SHOPEASE_CHECKOUT_PROCESSING_DELAY" default:"2s"`
	HandoffTTL      time.Duration `envconfig:"SHOPEASE_CHECKOUT_HANDOFF_TTL" default:"1h"`
}
