package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/entitlement"
)

func newTestServer(t *testing.T, checks ...Check) *httptest.Server {
	srv := httptest.NewServer(New(Config{}, nil, checks, logger.NewTestLogger(t)).Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func ok(context.Context) error { return nil }

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "healthy", body["status"])
}

func TestReady(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		srv := newTestServer(t, Check{"zeebe", ok}, Check{"postgres", ok}, Check{"redis", ok})

		resp, body := get(t, srv.URL+"/ready")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, "ok", body["postgres"])
	})

	t.Run("one failing check degrades", func(t *testing.T) {
		down := func(context.Context) error { return errors.New("dial tcp: connection refused") }
		srv := newTestServer(t, Check{"zeebe", down}, Check{"postgres", ok})

		resp, body := get(t, srv.URL+"/ready")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "error", body["zeebe"])
		assert.Equal(t, "ok", body["postgres"])
	})
}

func TestTiers(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/tiers")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []struct {
		ID     string                 `json:"id"`
		Name   string                 `json:"name"`
		Limits map[string]interface{} `json:"limits"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, len(entitlement.Tiers))

	assert.Equal(t, "free", views[0].ID)
	assert.EqualValues(t, 1, views[0].Limits["maxServiceAreas"])
	assert.Equal(t, "premier", views[2].ID)
	assert.Equal(t, "unlimited", views[2].Limits["maxJobRequests"])
	assert.Equal(t, true, views[2].Limits["hasCustomServiceAreas"])
}

func TestTier(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/tiers/pro")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pro", body["name"])
	assert.EqualValues(t, 500, body["monthlyPriceUsd"])

	resp, body = get(t, srv.URL+"/tiers/gold")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "gold")
}

func TestTiers_CORS(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/tiers", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTiers_RateLimited(t *testing.T) {
	srv := httptest.NewServer(New(Config{RateLimitRPS: 0.001, RateLimitBurst: 2}, nil, nil, logger.NewTestLogger(t)).Router())
	defer srv.Close()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/tiers", nil)
		require.NoError(t, err)
		req.Header.Set("X-Real-IP", "203.0.113.7")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// health is not limited
	resp, _ := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
