// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/entitlement"
)

const readyCheckTimeout = 2 * time.Second

// Check is a named readiness probe, e.g. the Zeebe topology or a Postgres ping.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Config limits requests per client on the public catalog routes.
type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	table   *entitlement.Table
	checks  []Check
	limiter *rateLimiter
	logger  logger.Logger
}

func New(cfg Config, table *entitlement.Table, checks []Check, log logger.Logger) *Server {
	if table == nil {
		table = entitlement.Default()
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 20
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 40
	}
	return &Server{
		table:   table,
		checks:  checks,
		limiter: newRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		logger:  log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Use(s.limiter.middleware)
		r.Get("/tiers", s.tiers)
		r.Get("/tiers/{tier}", s.tier)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("http request", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  middleware.GetReqID(r.Context()),
		})
	})
}
