// internal/workers/entitlement/get-tier-features/config.go
package gettierfeatures

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
