// internal/workers/entitlement/suggest-upgrade/config.go
package suggestupgrade

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
