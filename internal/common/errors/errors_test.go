package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hauler-workers/internal/entitlement"
)

func TestFromEntitlement(t *testing.T) {
	_, tierErr := entitlement.ParseTier("gold")
	_, featureErr := entitlement.ParseFeature("hasJetpack")
	_, usageErr := entitlement.CanRequestJob(entitlement.TierFree, -1)
	_, _, productErr := entitlement.ParseProductID("com.haulerapp.free.monthly")

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "unknown tier", err: tierErr, want: ErrCodeUnknownTier},
		{name: "wrapped unknown tier", err: fmt.Errorf("resolve: %w", tierErr), want: ErrCodeUnknownTier},
		{name: "unknown feature", err: featureErr, want: ErrCodeUnknownFeature},
		{name: "negative usage", err: usageErr, want: ErrCodeInvalidUsage},
		{name: "unknown product", err: productErr, want: ErrCodeUnknownProduct},
		{name: "standard error passes through", err: NewHaulerNotFoundError("u-1"), want: ErrCodeHaulerNotFound},
		{name: "anything else", err: fmt.Errorf("boom"), want: ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			got := FromEntitlement(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Code)
			assert.False(t, got.Retryable)
		})
	}

	assert.Nil(t, FromEntitlement(nil))
}

func TestConvertToBPMNError(t *testing.T) {
	lookup := ConvertToBPMNError(NewTierLookupFailedError(fmt.Errorf("connection refused")))
	assert.Equal(t, "TIER_LOOKUP_FAILED", lookup.Code)
	assert.True(t, lookup.Retryable)
	assert.Equal(t, 3, lookup.Retries)

	tier := ConvertToBPMNError(NewUnknownTierError("gold"))
	assert.Equal(t, "UNKNOWN_TIER", tier.Code)
	assert.Equal(t, 0, tier.Retries)

	vars := tier.ToErrorVariables()
	assert.Equal(t, "UNKNOWN_TIER", vars["errorCode"])
	assert.Equal(t, "UNKNOWN_TIER", vars["originalErrorCode"])
	assert.Contains(t, vars["errorDetails"], "gold")
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "ENTITLEMENT", GetErrorCategory(ErrCodeUnknownFeature))
	assert.Equal(t, "ENTITLEMENT", GetErrorCategory(ErrCodeInvalidUsage))
	assert.Equal(t, "SUBSCRIPTION", GetErrorCategory(ErrCodeTierLookupFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputParsingFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))

	assert.True(t, IsRetryableErrorCode(ErrCodeTierLookupFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeHaulerNotFound))
}

func TestKnownCodes(t *testing.T) {
	codes := KnownCodes()
	assert.True(t, codes["UNKNOWN_TIER"])
	assert.True(t, codes["TIER_LOOKUP_FAILED"])
	assert.True(t, codes["INTERNAL_ERROR"])
	assert.False(t, codes["SUBSCRIPTION_INVALID"])
}
