// internal/workers/subscription/resolve-store-product/validation.go
package resolvestoreproduct

import "hauler-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"productId"},
		Properties: map[string]validation.Property{
			"productId": {
				Type:        "string",
				Description: "App store product id, e.g. com.haulerapp.pro.monthly",
				MinLength:   validation.IntPtr(1),
			},
		},
	}
}
