// internal/workers/entitlement/suggest-upgrade/models.go
package suggestupgrade

import "hauler-workers/internal/entitlement"

type Input struct {
	Tier         string `json:"tier"`
	ServiceAreas int    `json:"serviceAreas"`
	JobRequests  int    `json:"jobRequests"`
}

type Output struct {
	ShouldUpgrade bool             `json:"shouldUpgrade"`
	Reason        string           `json:"reason,omitempty"`
	SuggestedTier entitlement.Tier `json:"suggestedTier,omitempty"`
}
