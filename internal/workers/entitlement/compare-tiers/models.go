// internal/workers/entitlement/compare-tiers/models.go
package comparetiers

type Input struct {
	Tier      string `json:"tier"`
	OtherTier string `json:"otherTier"`
}

// Comparison is -1, 0 or 1 as tier ranks below, equal to or above otherTier.
type Output struct {
	Comparison int  `json:"comparison"`
	IsHigher   bool `json:"isHigher"`
}
