// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"hauler-workers/internal/common/config"
)

// RedisClient is the tier cache connection.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis builds a client for cfg. The pool connects lazily; call Ping to
// verify the server is reachable.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	return &RedisClient{Client: rdb}, nil
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Collector exports the connection pool counters.
func (c *RedisClient) Collector() prometheus.Collector {
	return &redisPoolCollector{client: c.Client}
}

func (c *RedisClient) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

var (
	redisPoolConnsDesc = prometheus.NewDesc(
		"hauler_redis_pool_connections",
		"Redis pool connections by state",
		[]string{"state"}, nil,
	)
	redisPoolLookupsDesc = prometheus.NewDesc(
		"hauler_redis_pool_lookups_total",
		"Redis pool connection lookups by result",
		[]string{"result"}, nil,
	)
)

type redisPoolCollector struct {
	client *redis.Client
}

func (c *redisPoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- redisPoolConnsDesc
	ch <- redisPoolLookupsDesc
}

func (c *redisPoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.client.PoolStats()

	ch <- prometheus.MustNewConstMetric(redisPoolConnsDesc, prometheus.GaugeValue, float64(s.TotalConns), "total")
	ch <- prometheus.MustNewConstMetric(redisPoolConnsDesc, prometheus.GaugeValue, float64(s.IdleConns), "idle")
	ch <- prometheus.MustNewConstMetric(redisPoolConnsDesc, prometheus.GaugeValue, float64(s.StaleConns), "stale")

	ch <- prometheus.MustNewConstMetric(redisPoolLookupsDesc, prometheus.CounterValue, float64(s.Hits), "hit")
	ch <- prometheus.MustNewConstMetric(redisPoolLookupsDesc, prometheus.CounterValue, float64(s.Misses), "miss")
	ch <- prometheus.MustNewConstMetric(redisPoolLookupsDesc, prometheus.CounterValue, float64(s.Timeouts), "timeout")
}
