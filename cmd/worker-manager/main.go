package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"hauler-workers/internal/common/camunda"
	"hauler-workers/internal/common/config"
	"hauler-workers/internal/common/database"
	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/common/observability"
	"hauler-workers/internal/entitlement"
	"hauler-workers/internal/server"
	"hauler-workers/pkg/registry"

	cfa "hauler-workers/internal/workers/entitlement/check-feature-access"
	cjr "hauler-workers/internal/workers/entitlement/check-job-request-limit"
	csa "hauler-workers/internal/workers/entitlement/check-service-area-limit"
	ct "hauler-workers/internal/workers/entitlement/compare-tiers"
	gtf "hauler-workers/internal/workers/entitlement/get-tier-features"
	su "hauler-workers/internal/workers/entitlement/suggest-upgrade"
	rht "hauler-workers/internal/workers/subscription/resolve-hauler-tier"
	rsp "hauler-workers/internal/workers/subscription/resolve-store-product"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format,
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	table, err := cfg.Entitlements.Table()
	if err != nil {
		zapLog.Fatal("tier table invalid", zap.Error(err))
	}

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	prometheus.MustRegister(pg.Collector(), redis.Collector())

	workers := startWorkers(cfg, zeebe, table, pg, redis, log, obs, zapLog)
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	api := server.New(server.Config{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	}, table, []server.Check{
		{Name: "zeebe", Ping: zeebe.HealthCheck},
		{Name: "postgres", Ping: pg.Ping},
		{Name: "redis", Ping: redis.Ping},
	}, log)

	srv := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     api.Router(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}

	for _, w := range workers {
		w.Stop()
	}

	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping meter provider", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorkers(
	cfg *config.Config,
	zeebe *camunda.Client,
	table *entitlement.Table,
	pg *database.PostgresClient,
	redis *database.RedisClient,
	log logger.Logger,
	obs *observability.Observability,
	zapLog *zap.Logger,
) []*camunda.CamundaWorker {
	timeout := func(taskType string) time.Duration {
		return config.GetWorkerConfig(cfg, taskType).TimeoutDuration()
	}

	handlers := map[string]camunda.JobHandler{
		gtf.TaskType: gtf.NewHandler(&gtf.Config{Timeout: timeout(gtf.TaskType)}, table, log, obs),
		cfa.TaskType: cfa.NewHandler(&cfa.Config{Timeout: timeout(cfa.TaskType)}, table, log, obs),
		csa.TaskType: csa.NewHandler(&csa.Config{Timeout: timeout(csa.TaskType)}, table, log, obs),
		cjr.TaskType: cjr.NewHandler(&cjr.Config{Timeout: timeout(cjr.TaskType)}, table, log, obs),
		su.TaskType:  su.NewHandler(&su.Config{Timeout: timeout(su.TaskType)}, table, log, obs),
		ct.TaskType:  ct.NewHandler(&ct.Config{Timeout: timeout(ct.TaskType)}, log, obs),
		rht.TaskType: rht.NewHandler(
			&rht.Config{
				Timeout:  timeout(rht.TaskType),
				CacheTTL: config.GetDuration(cfg.Subscription.CacheTTL),
			},
			pg.DB, redis.Client, log, obs,
		),
		rsp.TaskType: rsp.NewHandler(&rsp.Config{Timeout: timeout(rsp.TaskType)}, log, obs),
	}

	reg, err := registry.LoadRegistry(cfg.App.RegistryPath)
	if err != nil {
		zapLog.Warn("activity registry unavailable", zap.String("path", cfg.App.RegistryPath), zap.Error(err))
	}

	var started []*camunda.CamundaWorker
	for taskType, handler := range handlers {
		if reg != nil {
			if _, ok := reg.Find(taskType); !ok {
				zapLog.Warn("worker missing from activity registry", zap.String("taskType", taskType))
			}
		}

		wcfg := config.GetWorkerConfig(cfg, taskType)
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			continue
		}

		w, err := camunda.NewWorker(zeebe.GetClient(), taskType, wcfg, handler, log)
		if err != nil {
			zapLog.Fatal("failed to start worker", zap.String("taskType", taskType), zap.Error(err))
		}
		started = append(started, w)
	}
	return started
}
