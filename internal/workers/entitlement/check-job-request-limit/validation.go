// internal/workers/entitlement/check-job-request-limit/validation.go
package checkjobrequestlimit

import "hauler-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"tier", "currentJobRequests"},
		Properties: map[string]validation.Property{
			"tier":               validation.TierProperty("Hauler's subscription tier"),
			"currentJobRequests": validation.CountProperty("Job requests made in the current period"),
		},
	}
}
