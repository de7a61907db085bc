// internal/workers/entitlement/compare-tiers/validation.go
package comparetiers

import "hauler-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"tier", "otherTier"},
		Properties: map[string]validation.Property{
			"tier":      validation.TierProperty("Tier being compared"),
			"otherTier": validation.TierProperty("Tier to compare against"),
		},
	}
}
