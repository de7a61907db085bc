// internal/workers/entitlement/compare-tiers/handler_test.go
package comparetiers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/entitlement"
)

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		tier, other    string
		wantComparison int
		wantHigher     bool
	}{
		{"premier", "pro", 1, true},
		{"premier", "free", 1, true},
		{"pro", "pro", 0, false},
		{"free", "premier", -1, false},
		{"pro", "premier", -1, false},
	}

	h := NewHandler(nil, logger.NewTestLogger(t), nil)
	for _, tt := range tests {
		t.Run(tt.tier+"_vs_"+tt.other, func(t *testing.T) {
			output, err := h.Execute(context.Background(), &Input{Tier: tt.tier, OtherTier: tt.other})
			require.NoError(t, err)
			assert.Equal(t, tt.wantComparison, output.Comparison)
			assert.Equal(t, tt.wantHigher, output.IsHigher)
		})
	}
}

func TestHandler_Execute_UnknownTier(t *testing.T) {
	h := NewHandler(nil, logger.NewTestLogger(t), nil)

	_, err := h.Execute(context.Background(), &Input{Tier: "pro", OtherTier: "Gold"})
	var tierErr *entitlement.UnknownTierError
	require.ErrorAs(t, err, &tierErr)
	assert.Equal(t, "Gold", tierErr.Value)
}
