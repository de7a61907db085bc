// internal/entitlement/access.go
package entitlement

import "fmt"

// Access is the outcome of a gate. A denial is a normal value with a reason,
// not an error.
type Access struct {
	CanAccess bool   `json:"canAccess"`
	Reason    string `json:"reason,omitempty"`
}

// InvalidUsageError is returned for a negative usage counter.
type InvalidUsageError struct {
	Field string
	Value int
}

func (e *InvalidUsageError) Error() string {
	return fmt.Sprintf("%s must be >= 0, got %d", e.Field, e.Value)
}

func (e *InvalidUsageError) Is(target error) bool {
	return target == ErrInvalidInput
}

func allowed() Access {
	return Access{CanAccess: true}
}

// CanAccessFeature checks a capability flag. A denial names the lowest tier
// above free that grants the flag, or the top tier if none does.
func (tb *Table) CanAccessFeature(tier Tier, feature Feature) (Access, error) {
	f, err := tb.Features(tier)
	if err != nil {
		return Access{}, err
	}
	has, err := f.Flag(feature)
	if err != nil {
		return Access{}, err
	}
	if has {
		return allowed(), nil
	}

	required := tb.requiredTier(feature)
	return Access{
		CanAccess: false,
		Reason:    fmt.Sprintf("This feature requires the %s plan.", required.Label()),
	}, nil
}

func (tb *Table) requiredTier(feature Feature) Tier {
	for _, t := range Tiers[1:] {
		if v, _ := tb.features[t].Flag(feature); v {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}

// CanAddServiceArea checks whether a hauler with current service areas may add
// another one.
func (tb *Table) CanAddServiceArea(tier Tier, current int) (Access, error) {
	f, err := tb.Features(tier)
	if err != nil {
		return Access{}, err
	}
	if current < 0 {
		return Access{}, &InvalidUsageError{Field: "currentServiceAreas", Value: current}
	}
	if f.MaxServiceAreas.Allows(current) {
		return allowed(), nil
	}
	capN, _ := f.MaxServiceAreas.Max()
	return Access{
		CanAccess: false,
		Reason: fmt.Sprintf("You have reached the maximum number of service areas (%d) for your %s plan. Upgrade to add more.",
			capN, tier.Label()),
	}, nil
}

// CanRequestJob checks whether a hauler with current job requests may request
// another job.
func (tb *Table) CanRequestJob(tier Tier, current int) (Access, error) {
	f, err := tb.Features(tier)
	if err != nil {
		return Access{}, err
	}
	if current < 0 {
		return Access{}, &InvalidUsageError{Field: "currentJobRequests", Value: current}
	}
	if f.MaxJobRequests.Allows(current) {
		return allowed(), nil
	}
	capN, _ := f.MaxJobRequests.Max()
	return Access{
		CanAccess: false,
		Reason: fmt.Sprintf("You have reached the maximum number of job requests (%d) for your %s plan. Upgrade to request more jobs.",
			capN, tier.Label()),
	}, nil
}

func CanAccessFeature(tier Tier, feature Feature) (Access, error) {
	return defaultTable.CanAccessFeature(tier, feature)
}

func CanAddServiceArea(tier Tier, current int) (Access, error) {
	return defaultTable.CanAddServiceArea(tier, current)
}

func CanRequestJob(tier Tier, current int) (Access, error) {
	return defaultTable.CanRequestJob(tier, current)
}
