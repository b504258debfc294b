package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// secrets are never expected in the YAML file; they are bound to APP_* env vars explicitly
// so AutomaticEnv picks them up even when the key is absent from the file.
var secretKeys = []string{
	"postgres.user",
	"postgres.password",
	"postgres.db",
	"redis.password",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "exchange-settings-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", 10)

	v.SetDefault("postgres.enabled", true)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.auto_migrate", false)
	v.SetDefault("postgres.migrations_dir", "migrations")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 300)

	v.SetDefault("pagination.default_page_size", 20)
	v.SetDefault("pagination.max_page_size", 100)

	v.SetDefault("notifier.kind", "log")
	v.SetDefault("notifier.channel", "exchange-settings.events")
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	for _, k := range secretKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", k, err)
		}
	}

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}
