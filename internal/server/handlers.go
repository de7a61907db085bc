// internal/server/handlers.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hauler-workers/internal/entitlement"
)

// TierView is a catalog plan with the limits and flags that gate it.
type TierView struct {
	entitlement.Plan
	Limits entitlement.Features `json:"limits"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ready runs every check and answers 503 if any of them fails.
func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ready"}
	code := http.StatusOK

	for _, c := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			s.logger.Warn("readiness check failed", map[string]interface{}{
				"check": c.Name,
				"error": err.Error(),
			})
			status[c.Name] = "error"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status[c.Name] = "ok"
	}

	writeJSON(w, code, status)
}

func (s *Server) tiers(w http.ResponseWriter, _ *http.Request) {
	plans := entitlement.Catalog()
	views := make([]TierView, 0, len(plans))
	for _, p := range plans {
		f, err := s.table.Features(p.Tier)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		views = append(views, TierView{Plan: p, Limits: f})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) tier(w http.ResponseWriter, r *http.Request) {
	t, err := entitlement.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	plan, err := entitlement.GetPlan(t)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	f, err := s.table.Features(t)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, TierView{Plan: plan, Limits: f})
}
