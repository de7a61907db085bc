// internal/workers/entitlement/get-tier-features/handler_test.go
package gettierfeatures

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/entitlement"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), nil, logger.NewTestLogger(t), nil)
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		tier          string
		wantAreas     string
		wantJobs      string
		wantAnalytics bool
		wantPriority  bool
	}{
		{tier: "free", wantAreas: "1", wantJobs: "5"},
		{tier: "pro", wantAreas: "5", wantJobs: "50", wantPriority: true},
		{tier: "premier", wantAreas: "unlimited", wantJobs: "unlimited", wantAnalytics: true, wantPriority: true},
	}

	h := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			output, err := h.Execute(context.Background(), &Input{Tier: tt.tier})
			require.NoError(t, err)

			assert.Equal(t, entitlement.Tier(tt.tier), output.Tier)
			assert.Equal(t, tt.wantAreas, output.Features.MaxServiceAreas.String())
			assert.Equal(t, tt.wantJobs, output.Features.MaxJobRequests.String())
			assert.Equal(t, tt.wantAnalytics, output.Features.HasAdvancedAnalytics)
			assert.Equal(t, tt.wantPriority, output.Features.HasPriorityAssignment)
		})
	}
}

func TestHandler_Execute_OutputVariables(t *testing.T) {
	h := createTestHandler(t)
	output, err := h.Execute(context.Background(), &Input{Tier: "premier"})
	require.NoError(t, err)

	data, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	features := vars["features"].(map[string]interface{})
	assert.Equal(t, "premier", vars["tier"])
	assert.Equal(t, "unlimited", features["maxServiceAreas"])
	assert.Equal(t, true, features["hasCustomServiceAreas"])
}

func TestHandler_Execute_UnknownTier(t *testing.T) {
	h := createTestHandler(t)
	for _, tier := range []string{"", "Free", "gold"} {
		_, err := h.Execute(context.Background(), &Input{Tier: tier})
		var unknown *entitlement.UnknownTierError
		assert.ErrorAs(t, err, &unknown, tier)
	}
}
