package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hauler-workers/internal/common/errors"
)

func testSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"tier", "currentServiceAreas"},
		Properties: map[string]Property{
			"tier":                TierProperty("Subscription tier"),
			"currentServiceAreas": CountProperty("Service areas already configured"),
			"feature": {
				Type: "string",
				Enum: []string{"hasAdFreeExperience", "hasPremiumSupport"},
			},
		},
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name        string
		input       map[string]interface{}
		wantValid   bool
		wantErrorOn string
	}{
		{
			name:      "valid input",
			input:     map[string]interface{}{"tier": "pro", "currentServiceAreas": float64(3)},
			wantValid: true,
		},
		{
			name:      "extra process variables are allowed",
			input:     map[string]interface{}{"tier": "pro", "currentServiceAreas": float64(3), "orderId": "o-1"},
			wantValid: true,
		},
		{
			name:        "missing required field",
			input:       map[string]interface{}{"tier": "pro"},
			wantErrorOn: "currentServiceAreas",
		},
		{
			name:        "count must be an integer",
			input:       map[string]interface{}{"tier": "pro", "currentServiceAreas": 2.5},
			wantErrorOn: "currentServiceAreas",
		},
		{
			name:        "tier must be a string",
			input:       map[string]interface{}{"tier": float64(1), "currentServiceAreas": float64(0)},
			wantErrorOn: "tier",
		},
		{
			name:        "enum mismatch",
			input:       map[string]interface{}{"tier": "pro", "currentServiceAreas": float64(0), "feature": "hasJetpack"},
			wantErrorOn: "feature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, testSchema())
			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantErrorOn != "" {
				assert.True(t, result.HasErrors(tt.wantErrorOn), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestDecode(t *testing.T) {
	type input struct {
		Tier                string `json:"tier"`
		CurrentServiceAreas int    `json:"currentServiceAreas"`
	}

	var in input
	require.NoError(t, Decode(`{"tier":"premier","currentServiceAreas":12}`, testSchema(), &in))
	assert.Equal(t, "premier", in.Tier)
	assert.Equal(t, 12, in.CurrentServiceAreas)

	err := Decode(`{"tier":`, testSchema(), &in)
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInputParsingFailed, stdErr.Code)

	err = Decode(`{"tier":"pro"}`, testSchema(), &in)
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "currentServiceAreas")
}

func TestValidateTaskTypeNaming(t *testing.T) {
	assert.NoError(t, ValidateTaskTypeNaming("entitlement.feature.check"))
	assert.NoError(t, ValidateTaskTypeNaming("subscription.hauler-tier.resolve"))
	assert.Error(t, ValidateTaskTypeNaming("validate-subscription"))
	assert.Error(t, ValidateTaskTypeNaming("Entitlement.Feature.Check"))
}
