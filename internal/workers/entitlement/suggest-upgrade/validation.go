// internal/workers/entitlement/suggest-upgrade/validation.go
package suggestupgrade

import "hauler-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"tier", "serviceAreas", "jobRequests"},
		Properties: map[string]validation.Property{
			"tier":         validation.TierProperty("Hauler's subscription tier"),
			"serviceAreas": validation.CountProperty("Service areas in use"),
			"jobRequests":  validation.CountProperty("Job requests made in the current period"),
		},
	}
}
