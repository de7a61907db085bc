// internal/common/config/entitlements.go
package config

import (
	"fmt"

	"hauler-workers/internal/entitlement"
)

// EntitlementsConfig optionally replaces the shipped tier table. When Tiers is
// empty the shipped table is used. The upgrade threshold is a business rule
// and cannot be configured.
type EntitlementsConfig struct {
	Tiers map[string]TierFeaturesConfig `mapstructure:"tiers"`
}

// TierFeaturesConfig is one tier's row. Limits are a non-negative integer or
// "unlimited".
type TierFeaturesConfig struct {
	MaxServiceAreas            string `mapstructure:"max_service_areas"`
	MaxJobRequests             string `mapstructure:"max_job_requests"`
	HasAdFreeExperience        bool   `mapstructure:"has_ad_free_experience"`
	HasPriorityAssignment      bool   `mapstructure:"has_priority_assignment"`
	HasAdvancedAnalytics       bool   `mapstructure:"has_advanced_analytics"`
	HasPremiumSupport          bool   `mapstructure:"has_premium_support"`
	HasDedicatedAccountManager bool   `mapstructure:"has_dedicated_account_manager"`
	HasCustomServiceAreas      bool   `mapstructure:"has_custom_service_areas"`
}

// Table builds the tier table the workers gate against.
func (e EntitlementsConfig) Table() (*entitlement.Table, error) {
	if len(e.Tiers) == 0 {
		return entitlement.Default(), nil
	}

	defs := make(map[entitlement.Tier]entitlement.Features, len(e.Tiers))
	for name, row := range e.Tiers {
		tier, err := entitlement.ParseTier(name)
		if err != nil {
			return nil, fmt.Errorf("entitlements.tiers: %w", err)
		}

		areas, err := entitlement.ParseLimit(row.MaxServiceAreas)
		if err != nil {
			return nil, fmt.Errorf("entitlements.tiers.%s.max_service_areas: %w", name, err)
		}
		jobs, err := entitlement.ParseLimit(row.MaxJobRequests)
		if err != nil {
			return nil, fmt.Errorf("entitlements.tiers.%s.max_job_requests: %w", name, err)
		}

		defs[tier] = entitlement.Features{
			MaxServiceAreas:            areas,
			MaxJobRequests:             jobs,
			HasAdFreeExperience:        row.HasAdFreeExperience,
			HasPriorityAssignment:      row.HasPriorityAssignment,
			HasAdvancedAnalytics:       row.HasAdvancedAnalytics,
			HasPremiumSupport:          row.HasPremiumSupport,
			HasDedicatedAccountManager: row.HasDedicatedAccountManager,
			HasCustomServiceAreas:      row.HasCustomServiceAreas,
		}
	}

	return entitlement.NewTable(defs)
}
