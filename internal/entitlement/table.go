// internal/entitlement/table.go
package entitlement

import (
	"fmt"
	"strings"
)

// Table maps every tier to its features. A Table is immutable once built and
// safe for concurrent use.
type Table struct {
	features map[Tier]Features
}

// InvalidTableError lists the problems that prevented a table from being built.
type InvalidTableError struct {
	Problems []string
}

func (e *InvalidTableError) Error() string {
	return "invalid tier table: " + strings.Join(e.Problems, "; ")
}

// NewTable validates defs and returns a table. Every tier must be present and
// the tiers must form a superset chain: a higher tier keeps every flag and at
// least the limits of each lower tier.
func NewTable(defs map[Tier]Features) (*Table, error) {
	var problems []string
	for t := range defs {
		if !t.Valid() {
			problems = append(problems, fmt.Sprintf("unknown tier %q", t))
		}
	}

	features := make(map[Tier]Features, len(Tiers))
	for _, t := range Tiers {
		f, ok := defs[t]
		if !ok {
			problems = append(problems, fmt.Sprintf("tier %q missing", t))
			continue
		}
		features[t] = f
	}

	if len(problems) == 0 {
		for i := 1; i < len(Tiers); i++ {
			for j := 0; j < i; j++ {
				hi, lo := Tiers[i], Tiers[j]
				for _, m := range features[hi].missing(features[lo]) {
					problems = append(problems, fmt.Sprintf("%s does not cover %s: %s", hi, lo, m))
				}
			}
		}
	}

	if len(problems) > 0 {
		return nil, &InvalidTableError{Problems: problems}
	}
	return &Table{features: features}, nil
}

var defaultTable = mustNewTable(map[Tier]Features{
	TierFree: {
		MaxServiceAreas: Finite(1),
		MaxJobRequests:  Finite(5),
	},
	TierPro: {
		MaxServiceAreas:       Finite(5),
		MaxJobRequests:        Finite(50),
		HasAdFreeExperience:   true,
		HasPriorityAssignment: true,
	},
	TierPremier: {
		MaxServiceAreas:            Unlimited(),
		MaxJobRequests:             Unlimited(),
		HasAdFreeExperience:        true,
		HasPriorityAssignment:      true,
		HasAdvancedAnalytics:       true,
		HasPremiumSupport:          true,
		HasDedicatedAccountManager: true,
		HasCustomServiceAreas:      true,
	},
})

func mustNewTable(defs map[Tier]Features) *Table {
	t, err := NewTable(defs)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the shipped tier table.
func Default() *Table {
	return defaultTable
}

// Features returns the record for tier.
func (tb *Table) Features(tier Tier) (Features, error) {
	f, ok := tb.features[tier]
	if !ok {
		return Features{}, &UnknownTierError{Value: string(tier)}
	}
	return f, nil
}

// All returns a copy of the table keyed by tier.
func (tb *Table) All() map[Tier]Features {
	out := make(map[Tier]Features, len(tb.features))
	for t, f := range tb.features {
		out[t] = f
	}
	return out
}

// TierFeatures looks up tier in the shipped table.
func TierFeatures(tier Tier) (Features, error) {
	return defaultTable.Features(tier)
}
