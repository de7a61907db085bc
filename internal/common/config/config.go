package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	App          AppConfig               `mapstructure:"app"`
	Camunda      CamundaConfig           `mapstructure:"camunda"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Workers      map[string]WorkerConfig `mapstructure:"workers" validate:"dive"`
	Logging      LoggingConfig           `mapstructure:"logging"`
	Server       ServerConfig            `mapstructure:"server"`
	Subscription SubscriptionConfig      `mapstructure:"subscription"`
	Entitlements EntitlementsConfig      `mapstructure:"entitlements"`
}

type AppConfig struct {
	Name         string `mapstructure:"name"`
	Version      string `mapstructure:"version"`
	Environment  string `mapstructure:"environment"`
	RegistryPath string `mapstructure:"registry_path"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address" validate:"required"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active" validate:"gte=1"`
	Timeout        int    `mapstructure:"timeout" validate:"gte=1"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout" validate:"gte=1"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	Database        string `mapstructure:"database" validate:"required"`
	User            string `mapstructure:"user" validate:"required"`
	Password        string `mapstructure:"password"`
	MaxConnections  int    `mapstructure:"max_connections" validate:"gte=1"`
	MaxIdle         int    `mapstructure:"max_idle" validate:"gte=0"`
	SSLMode         string `mapstructure:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"gte=1"` // milliseconds, also the idle limit
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address      string `mapstructure:"address" validate:"required"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db" validate:"gte=0"`
	PoolSize     int    `mapstructure:"pool_size" validate:"gte=1"`
	MinIdleConns int    `mapstructure:"min_idle_conns" validate:"gte=0"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active" validate:"gte=1"`
	Timeout       int  `mapstructure:"timeout" validate:"gte=1"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type ServerConfig struct {
	Address         string  `mapstructure:"address" validate:"required"`
	ShutdownTimeout int     `mapstructure:"shutdown_timeout" validate:"gte=1"` // milliseconds
	RateLimitRPS    float64 `mapstructure:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst  int     `mapstructure:"rate_limit_burst" validate:"gte=1"`
}

type SubscriptionConfig struct {
	CacheTTL int `mapstructure:"cache_ttl" validate:"gte=1"` // milliseconds
}

// WorkerKey returns the workers map key for a Zeebe task type. Viper treats
// dots as key separators, so "entitlement.feature.check" is configured as
// "entitlement-feature-check".
func WorkerKey(taskType string) string {
	return strings.ReplaceAll(taskType, ".", "-")
}

func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

func (w WorkerConfig) TimeoutDuration() time.Duration {
	return GetDuration(w.Timeout)
}

func GetWorkerConfig(cfg *Config, taskType string) WorkerConfig {
	if worker, exists := cfg.Workers[WorkerKey(taskType)]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

func IsWorkerEnabled(cfg *Config, taskType string) bool {
	return GetWorkerConfig(cfg, taskType).Enabled
}
