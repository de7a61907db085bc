// internal/entitlement/catalog.go
package entitlement

// Plan is the marketing description of a tier.
type Plan struct {
	Tier            Tier     `json:"id"`
	Name            string   `json:"name"`
	MonthlyPriceUSD int      `json:"monthlyPriceUsd"` // USD cents
	AnnualPriceUSD  int      `json:"annualPriceUsd"`  // USD cents
	Coverage        string   `json:"serviceAreasAllowed"`
	Highlights      []string `json:"features"`
}

// Catalog returns the plans in ascending tier order.
func Catalog() []Plan {
	return []Plan{
		{
			Tier:            TierFree,
			Name:            "Free",
			MonthlyPriceUSD: 0,
			AnnualPriceUSD:  0,
			Coverage:        "Limited area coverage",
			Highlights: []string{
				"Basic job browsing",
				"Limited access",
				"Community support",
			},
		},
		{
			Tier:            TierPro,
			Name:            "Pro",
			MonthlyPriceUSD: 500,  // $5/mo
			AnnualPriceUSD:  5000, // $50/yr
			Coverage:        "Expanded regional coverage",
			Highlights: []string{
				"Ad-free experience",
				"Higher job request limits",
				"Priority job assignment",
				"Email support",
			},
		},
		{
			Tier:            TierPremier,
			Name:            "Premier",
			MonthlyPriceUSD: 1500,  // $15/mo
			AnnualPriceUSD:  15000, // $150/yr
			Coverage:        "Full city/county coverage",
			Highlights: []string{
				"All Pro benefits",
				"Premium support",
				"Advanced analytics",
				"Dedicated account manager",
				"Custom service areas",
			},
		},
	}
}

// GetPlan returns the catalog entry for tier.
func GetPlan(tier Tier) (Plan, error) {
	for _, p := range Catalog() {
		if p.Tier == tier {
			return p, nil
		}
	}
	return Plan{}, &UnknownTierError{Value: string(tier)}
}
