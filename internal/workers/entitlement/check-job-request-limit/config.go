// internal/workers/entitlement/check-job-request-limit/config.go
package checkjobrequestlimit

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
