package config

import (
	"github.com/maxviazov/exchange-settings-service/internal/logger"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger" validate:"-"` // validated by logger.New after defaults
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Redis      RedisConfig         `mapstructure:"redis"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
	Notifier   NotifierConfig      `mapstructure:"notifier"`
}

type AppConfig struct {
	Name            string `mapstructure:"name" validate:"required"`
	Version         string `mapstructure:"version"`
	Env             string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int    `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"min=0"` // seconds
}

// PostgresConfig is only validated when Enabled; otherwise the in-memory store is used.
type PostgresConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Host              string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port              int    `mapstructure:"port" validate:"required_if=Enabled true"`
	User              string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password          string `mapstructure:"password" validate:"required_if=Enabled true"`
	DBName            string `mapstructure:"db" validate:"required_if=Enabled true"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
	AutoMigrate       bool   `mapstructure:"auto_migrate"`
	MigrationsDir     string `mapstructure:"migrations_dir"`
}

// RedisConfig enables the settings cache and the pub/sub notifier when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	CacheTTL int    `mapstructure:"cache_ttl" validate:"min=0"` // seconds, 0 = no expiry
}

type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size" validate:"min=1"`
	MaxPageSize     int `mapstructure:"max_page_size" validate:"gtefield=DefaultPageSize"`
}

type NotifierConfig struct {
	Kind    string `mapstructure:"kind" validate:"oneof=log redis none"`
	Channel string `mapstructure:"channel"`
}
