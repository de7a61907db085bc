// test/e2e/e2e_test.go
//
// End-to-end run of the hauler workers against a live Zeebe gateway,
// PostgreSQL and Redis (docker compose up). Set HAULER_E2E=1 to enable.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hauler-workers/internal/common/camunda"
	"hauler-workers/internal/common/config"
	"hauler-workers/internal/common/database"
	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/entitlement"

	cfa "hauler-workers/internal/workers/entitlement/check-feature-access"
	cjr "hauler-workers/internal/workers/entitlement/check-job-request-limit"
	csa "hauler-workers/internal/workers/entitlement/check-service-area-limit"
	ct "hauler-workers/internal/workers/entitlement/compare-tiers"
	gtf "hauler-workers/internal/workers/entitlement/get-tier-features"
	su "hauler-workers/internal/workers/entitlement/suggest-upgrade"
	rht "hauler-workers/internal/workers/subscription/resolve-hauler-tier"
	rsp "hauler-workers/internal/workers/subscription/resolve-store-product"
)

const enableEnv = "HAULER_E2E"

const processTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:zeebe="http://camunda.org/schema/zeebe/1.0" id="defs-%[1]s" targetNamespace="http://bpmn.io/schema/bpmn">
  <bpmn:process id="%[1]s" isExecutable="true">
    <bpmn:startEvent id="start"><bpmn:outgoing>to-task</bpmn:outgoing></bpmn:startEvent>
    <bpmn:serviceTask id="task">
      <bpmn:extensionElements><zeebe:taskDefinition type="%[2]s" retries="1" /></bpmn:extensionElements>
      <bpmn:incoming>to-task</bpmn:incoming>
      <bpmn:outgoing>to-end</bpmn:outgoing>
    </bpmn:serviceTask>
    <bpmn:endEvent id="end"><bpmn:incoming>to-end</bpmn:incoming></bpmn:endEvent>
    <bpmn:sequenceFlow id="to-task" sourceRef="start" targetRef="task" />
    <bpmn:sequenceFlow id="to-end" sourceRef="task" targetRef="end" />
  </bpmn:process>
</bpmn:definitions>`

type env struct {
	cfg   *config.Config
	zeebe *camunda.Client
	pg    *database.PostgresClient
	redis *database.RedisClient
	log   logger.Logger
}

func setup(t *testing.T) *env {
	t.Helper()
	if os.Getenv(enableEnv) == "" {
		t.Skipf("set %s=1 to run against live services", enableEnv)
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
	require.NoError(t, err, "zeebe gateway unreachable")
	t.Cleanup(func() { zeebe.Close() })

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	require.NoError(t, pg.Ping(ctx), "postgres unreachable")
	t.Cleanup(func() { pg.Close() })

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	require.NoError(t, rdb.Ping(ctx), "redis unreachable")
	t.Cleanup(func() { rdb.Close() })

	return &env{
		cfg:   cfg,
		zeebe: zeebe,
		pg:    pg,
		redis: rdb,
		log:   logger.NewZapAdapter(zaptest.NewLogger(t)),
	}
}

// runProcess deploys a one-task process for taskType, starts the given worker
// and returns the variables the instance completed with.
func (e *env) runProcess(t *testing.T, taskType string, handler camunda.JobHandler, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	client := e.zeebe.GetClient()
	processID := "e2e-" + strings.ReplaceAll(taskType, ".", "-")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := client.NewDeployResourceCommand().
		AddResource([]byte(fmt.Sprintf(processTemplate, processID, taskType)), processID+".bpmn").
		Send(ctx)
	require.NoError(t, err, "deploy %s", processID)

	w, err := camunda.NewWorker(client, taskType, config.GetWorkerConfig(e.cfg, taskType), handler, e.log)
	require.NoError(t, err)
	defer w.Stop()

	return createWithResult(ctx, t, client, processID, vars)
}

func createWithResult(ctx context.Context, t *testing.T, client zbc.Client, processID string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	cmd, err := client.NewCreateInstanceCommand().
		BPMNProcessId(processID).
		LatestVersion().
		VariablesFromMap(vars)
	require.NoError(t, err)

	res, err := cmd.WithResult().Send(ctx)
	require.NoError(t, err, "instance of %s did not complete", processID)

	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(res.GetVariables()), &out))
	return out
}

func TestEntitlementWorkers(t *testing.T) {
	e := setup(t)
	table, err := e.cfg.Entitlements.Table()
	require.NoError(t, err)

	timeout := func(taskType string) time.Duration {
		return config.GetWorkerConfig(e.cfg, taskType).TimeoutDuration()
	}

	t.Run("tier features", func(t *testing.T) {
		h := gtf.NewHandler(&gtf.Config{Timeout: timeout(gtf.TaskType)}, table, e.log, nil)
		out := e.runProcess(t, gtf.TaskType, h, map[string]interface{}{"tier": "pro"})

		assert.Equal(t, "pro", out["tier"])
		features, ok := out["features"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, features["hasPriorityAssignment"])
	})

	t.Run("feature access", func(t *testing.T) {
		h := cfa.NewHandler(&cfa.Config{Timeout: timeout(cfa.TaskType)}, table, e.log, nil)
		out := e.runProcess(t, cfa.TaskType, h, map[string]interface{}{
			"tier":    "free",
			"feature": "hasAdvancedAnalytics",
		})

		assert.Equal(t, false, out["canAccess"])
		assert.Contains(t, out["reason"], "PREMIER")
	})

	t.Run("service area limit", func(t *testing.T) {
		h := csa.NewHandler(&csa.Config{Timeout: timeout(csa.TaskType)}, table, e.log, nil)
		out := e.runProcess(t, csa.TaskType, h, map[string]interface{}{
			"tier":                "pro",
			"currentServiceAreas": 2,
		})

		assert.Equal(t, true, out["canAccess"])
	})

	t.Run("job request limit", func(t *testing.T) {
		h := cjr.NewHandler(&cjr.Config{Timeout: timeout(cjr.TaskType)}, table, e.log, nil)
		out := e.runProcess(t, cjr.TaskType, h, map[string]interface{}{
			"tier":               "premier",
			"currentJobRequests": 10000,
		})

		assert.Equal(t, true, out["canAccess"])
	})

	t.Run("upgrade suggestion", func(t *testing.T) {
		h := su.NewHandler(&su.Config{Timeout: timeout(su.TaskType)}, table, e.log, nil)
		out := e.runProcess(t, su.TaskType, h, map[string]interface{}{
			"tier":         "free",
			"serviceAreas": 1,
			"jobRequests":  0,
		})

		assert.Equal(t, true, out["shouldUpgrade"])
		assert.Equal(t, "pro", out["suggestedTier"])
	})

	t.Run("compare tiers", func(t *testing.T) {
		h := ct.NewHandler(&ct.Config{Timeout: timeout(ct.TaskType)}, e.log, nil)
		out := e.runProcess(t, ct.TaskType, h, map[string]interface{}{
			"tier":      "premier",
			"otherTier": "free",
		})

		assert.EqualValues(t, 1, out["comparison"])
		assert.Equal(t, true, out["isHigher"])
	})

	t.Run("store product", func(t *testing.T) {
		h := rsp.NewHandler(&rsp.Config{Timeout: timeout(rsp.TaskType)}, e.log, nil)
		out := e.runProcess(t, rsp.TaskType, h, map[string]interface{}{
			"productId": "pro_monthly",
		})

		assert.Equal(t, "pro", out["tier"])
		assert.EqualValues(t, 500, out["priceUsdCents"])
	})
}

func TestResolveHaulerTier(t *testing.T) {
	e := setup(t)
	seedAccounts(t, e)

	h := rht.NewHandler(&rht.Config{Timeout: 10 * time.Second, CacheTTL: time.Minute}, e.pg.DB, e.redis.Client, e.log, nil)

	t.Run("through the broker", func(t *testing.T) {
		out := e.runProcess(t, rht.TaskType, h, map[string]interface{}{"userId": "e2e-hauler-pro"})

		assert.Equal(t, "hauler", out["role"])
		assert.Equal(t, "pro", out["tier"])
		assert.Equal(t, false, out["subscriptionExpired"])
	})

	tests := []struct {
		name    string
		userID  string
		tier    entitlement.Tier
		expired bool
	}{
		{"customer is free", "e2e-customer", entitlement.TierFree, false},
		{"hauler without plan is free", "e2e-hauler-none", entitlement.TierFree, false},
		{"expired premier keeps tier", "e2e-hauler-expired", entitlement.TierPremier, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &rht.Input{UserID: tt.userID})
			require.NoError(t, err)
			assert.Equal(t, tt.tier, out.Tier)
			assert.Equal(t, tt.expired, out.SubscriptionExpired)
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		_, err := h.Execute(context.Background(), &rht.Input{UserID: "e2e-missing"})
		assert.Error(t, err)
	})
}

func seedAccounts(t *testing.T, e *env) {
	t.Helper()
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			role VARCHAR(20) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS haulers (
			user_id VARCHAR(64) PRIMARY KEY REFERENCES users(id),
			subscription_tier VARCHAR(20),
			subscription_expires_at TIMESTAMPTZ
		)`,
		`INSERT INTO users (id, role) VALUES
			('e2e-customer', 'customer'),
			('e2e-hauler-none', 'hauler'),
			('e2e-hauler-pro', 'hauler'),
			('e2e-hauler-expired', 'hauler')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO haulers (user_id, subscription_tier, subscription_expires_at) VALUES
			('e2e-hauler-none', NULL, NULL),
			('e2e-hauler-pro', 'pro', NOW() + INTERVAL '1 year'),
			('e2e-hauler-expired', 'premier', NOW() - INTERVAL '1 day')
		 ON CONFLICT (user_id) DO UPDATE SET
			subscription_tier = EXCLUDED.subscription_tier,
			subscription_expires_at = EXCLUDED.subscription_expires_at`,
	}
	for _, stmt := range statements {
		_, err := e.pg.DB.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	keys := []string{"e2e-customer", "e2e-hauler-none", "e2e-hauler-pro", "e2e-hauler-expired", "e2e-missing"}
	for i, id := range keys {
		keys[i] = "hauler:tier:" + id
	}
	require.NoError(t, e.redis.Client.Del(ctx, keys...).Err())
}

func BenchmarkCheckFeatureAccess(b *testing.B) {
	h := cfa.NewHandler(nil, nil, logger.NewNoOpLogger(), nil)
	input := &cfa.Input{Tier: "pro", Feature: "hasAdvancedAnalytics"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Execute(context.Background(), input)
	}
}

func BenchmarkSuggestUpgrade(b *testing.B) {
	h := su.NewHandler(nil, nil, logger.NewNoOpLogger(), nil)
	input := &su.Input{Tier: "free", ServiceAreas: 1, JobRequests: 4}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Execute(context.Background(), input)
	}
}
