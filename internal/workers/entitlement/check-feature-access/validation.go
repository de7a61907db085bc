// internal/workers/entitlement/check-feature-access/validation.go
package checkfeatureaccess

import "hauler-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"tier", "feature"},
		Properties: map[string]validation.Property{
			"tier": validation.TierProperty("Caller's subscription tier"),
			"feature": {
				Type:        "string",
				Description: "Capability flag name, e.g. hasAdvancedAnalytics",
				MinLength:   validation.IntPtr(1),
			},
		},
	}
}
