// internal/workers/entitlement/get-tier-features/validation.go
package gettierfeatures

import "hauler-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"tier"},
		Properties: map[string]validation.Property{
			"tier": validation.TierProperty("Subscription tier to describe"),
		},
	}
}
