// internal/workers/subscription/resolve-hauler-tier/models.go
package resolvehaulertier

import (
	"time"

	"hauler-workers/internal/entitlement"
)

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	UserID              string           `json:"userId"`
	Role                entitlement.Role `json:"role"`
	Tier                entitlement.Tier `json:"tier"`
	SubscriptionExpired bool             `json:"subscriptionExpired"`
	ExpiresAt           *time.Time       `json:"expiresAt,omitempty"`
}

// accountRecord is the stored account row, cached as-is so expiry is
// evaluated on every read.
type accountRecord struct {
	Role      string     `json:"role"`
	Tier      string     `json:"tier"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
