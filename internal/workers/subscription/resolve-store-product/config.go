// internal/workers/subscription/resolve-store-product/config.go
package resolvestoreproduct

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
