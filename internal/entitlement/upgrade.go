// internal/entitlement/upgrade.go
package entitlement

// UpgradeThreshold is the utilisation ratio, on either axis, at which an
// upgrade is suggested.
const UpgradeThreshold = 0.8

const approachingLimitsReason = "You are approaching your plan limits. Consider upgrading for more capacity."

// Usage carries the caller's current counters.
type Usage struct {
	ServiceAreas int `json:"serviceAreas"`
	JobRequests  int `json:"jobRequests"`
}

// UpgradeSuggestion is the result of SuggestUpgrade.
type UpgradeSuggestion struct {
	ShouldUpgrade bool   `json:"shouldUpgrade"`
	Reason        string `json:"reason,omitempty"`
	SuggestedTier Tier   `json:"suggestedTier,omitempty"`
}

// SuggestUpgrade recommends a higher tier when usage on either axis reaches
// UpgradeThreshold of the tier's cap. From free it always suggests pro; from
// any other non-top tier it suggests premier.
func (tb *Table) SuggestUpgrade(tier Tier, usage Usage) (UpgradeSuggestion, error) {
	f, err := tb.Features(tier)
	if err != nil {
		return UpgradeSuggestion{}, err
	}
	if usage.ServiceAreas < 0 {
		return UpgradeSuggestion{}, &InvalidUsageError{Field: "serviceAreas", Value: usage.ServiceAreas}
	}
	if usage.JobRequests < 0 {
		return UpgradeSuggestion{}, &InvalidUsageError{Field: "jobRequests", Value: usage.JobRequests}
	}
	if tier.IsTop() {
		return UpgradeSuggestion{}, nil
	}

	areas := f.MaxServiceAreas.Ratio(usage.ServiceAreas)
	jobs := f.MaxJobRequests.Ratio(usage.JobRequests)
	if areas < UpgradeThreshold && jobs < UpgradeThreshold {
		return UpgradeSuggestion{}, nil
	}

	suggested := TierPremier
	if tier == TierFree {
		suggested = TierPro
	}
	return UpgradeSuggestion{
		ShouldUpgrade: true,
		Reason:        approachingLimitsReason,
		SuggestedTier: suggested,
	}, nil
}

func SuggestUpgrade(tier Tier, usage Usage) (UpgradeSuggestion, error) {
	return defaultTable.SuggestUpgrade(tier, usage)
}
