// internal/workers/subscription/resolve-store-product/models.go
package resolvestoreproduct

import "hauler-workers/internal/entitlement"

type Input struct {
	ProductID string `json:"productId"`
}

// Output echoes the canonical product id, which differs from the input when
// the short form was supplied.
type Output struct {
	ProductID     string                    `json:"productId"`
	Tier          entitlement.Tier          `json:"tier"`
	BillingPeriod entitlement.BillingPeriod `json:"billingPeriod"`
	PriceUSDCents int                       `json:"priceUsdCents"`
}
