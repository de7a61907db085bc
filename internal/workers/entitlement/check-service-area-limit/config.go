// internal/workers/entitlement/check-service-area-limit/config.go
package checkservicearealimit

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
