// internal/workers/entitlement/check-service-area-limit/validation.go
package checkservicearealimit

import "hauler-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"tier", "currentServiceAreas"},
		Properties: map[string]validation.Property{
			"tier":                validation.TierProperty("Hauler's subscription tier"),
			"currentServiceAreas": validation.CountProperty("Service areas the hauler already has"),
		},
	}
}
