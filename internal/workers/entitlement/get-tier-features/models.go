// internal/workers/entitlement/get-tier-features/models.go
package gettierfeatures

import "hauler-workers/internal/entitlement"

type Input struct {
	Tier string `json:"tier"`
}

type Output struct {
	Tier     entitlement.Tier     `json:"tier"`
	Features entitlement.Features `json:"features"`
}
