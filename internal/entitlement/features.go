// internal/entitlement/features.go
package entitlement

import "fmt"

// Feature names one boolean capability flag of a tier.
type Feature string

const (
	FeatureAdFreeExperience        Feature = "hasAdFreeExperience"
	FeaturePriorityAssignment      Feature = "hasPriorityAssignment"
	FeatureAdvancedAnalytics       Feature = "hasAdvancedAnalytics"
	FeaturePremiumSupport          Feature = "hasPremiumSupport"
	FeatureDedicatedAccountManager Feature = "hasDedicatedAccountManager"
	FeatureCustomServiceAreas      Feature = "hasCustomServiceAreas"
)

// AllFeatures is the fixed set of capability flags.
var AllFeatures = []Feature{
	FeatureAdFreeExperience,
	FeaturePriorityAssignment,
	FeatureAdvancedAnalytics,
	FeaturePremiumSupport,
	FeatureDedicatedAccountManager,
	FeatureCustomServiceAreas,
}

// UnknownFeatureError is returned for a flag name outside AllFeatures.
type UnknownFeatureError struct {
	Value string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("unknown feature %q", e.Value)
}

func (e *UnknownFeatureError) Is(target error) bool {
	return target == ErrInvalidInput
}

func ParseFeature(s string) (Feature, error) {
	for _, f := range AllFeatures {
		if string(f) == s {
			return f, nil
		}
	}
	return "", &UnknownFeatureError{Value: s}
}

// Features is the entitlement record of one tier.
type Features struct {
	MaxServiceAreas            Limit `json:"maxServiceAreas" mapstructure:"max_service_areas"`
	MaxJobRequests             Limit `json:"maxJobRequests" mapstructure:"max_job_requests"`
	HasAdFreeExperience        bool  `json:"hasAdFreeExperience" mapstructure:"has_ad_free_experience"`
	HasPriorityAssignment      bool  `json:"hasPriorityAssignment" mapstructure:"has_priority_assignment"`
	HasAdvancedAnalytics       bool  `json:"hasAdvancedAnalytics" mapstructure:"has_advanced_analytics"`
	HasPremiumSupport          bool  `json:"hasPremiumSupport" mapstructure:"has_premium_support"`
	HasDedicatedAccountManager bool  `json:"hasDedicatedAccountManager" mapstructure:"has_dedicated_account_manager"`
	HasCustomServiceAreas      bool  `json:"hasCustomServiceAreas" mapstructure:"has_custom_service_areas"`
}

// Flag returns the value of a capability flag.
func (f Features) Flag(feature Feature) (bool, error) {
	switch feature {
	case FeatureAdFreeExperience:
		return f.HasAdFreeExperience, nil
	case FeaturePriorityAssignment:
		return f.HasPriorityAssignment, nil
	case FeatureAdvancedAnalytics:
		return f.HasAdvancedAnalytics, nil
	case FeaturePremiumSupport:
		return f.HasPremiumSupport, nil
	case FeatureDedicatedAccountManager:
		return f.HasDedicatedAccountManager, nil
	case FeatureCustomServiceAreas:
		return f.HasCustomServiceAreas, nil
	default:
		return false, &UnknownFeatureError{Value: string(feature)}
	}
}

// Flags returns every capability flag keyed by name.
func (f Features) Flags() map[Feature]bool {
	out := make(map[Feature]bool, len(AllFeatures))
	for _, feature := range AllFeatures {
		v, _ := f.Flag(feature)
		out[feature] = v
	}
	return out
}

// Covers reports whether f grants everything other grants: every flag set in
// other is set in f and both limits are at least as large.
func (f Features) Covers(other Features) bool {
	return len(f.missing(other)) == 0
}

func (f Features) missing(other Features) []string {
	var out []string
	if !f.MaxServiceAreas.AtLeast(other.MaxServiceAreas) {
		out = append(out, fmt.Sprintf("maxServiceAreas %s < %s", f.MaxServiceAreas, other.MaxServiceAreas))
	}
	if !f.MaxJobRequests.AtLeast(other.MaxJobRequests) {
		out = append(out, fmt.Sprintf("maxJobRequests %s < %s", f.MaxJobRequests, other.MaxJobRequests))
	}
	mine := f.Flags()
	for _, feature := range AllFeatures {
		theirs, _ := other.Flag(feature)
		if theirs && !mine[feature] {
			out = append(out, fmt.Sprintf("%s dropped", feature))
		}
	}
	return out
}
