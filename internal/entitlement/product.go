// internal/entitlement/product.go
package entitlement

import (
	"fmt"
	"strings"
)

// BillingPeriod is the renewal interval of a store product.
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingAnnual  BillingPeriod = "annual"
)

const productPrefix = "com.haulerapp."

// UnknownProductError is returned for a store product id that does not map to
// a paid tier.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown store product %q", e.ProductID)
}

func (e *UnknownProductError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ProductID returns the store product id for a paid tier and billing period.
func ProductID(tier Tier, period BillingPeriod) (string, error) {
	if tier == TierFree || !tier.Valid() {
		return "", &UnknownTierError{Value: string(tier)}
	}
	switch period {
	case BillingMonthly, BillingAnnual:
	default:
		return "", fmt.Errorf("%w: unknown billing period %q", ErrInvalidInput, period)
	}
	return productPrefix + string(tier) + "." + string(period), nil
}

// ParseProductID maps a store product id ("com.haulerapp.pro.annual") or its
// short form ("pro_annual") to a paid tier and billing period.
func ParseProductID(productID string) (Tier, BillingPeriod, error) {
	id := strings.TrimPrefix(strings.TrimSpace(productID), productPrefix)
	parts := strings.FieldsFunc(id, func(r rune) bool { return r == '.' || r == '_' })
	if len(parts) != 2 {
		return "", "", &UnknownProductError{ProductID: productID}
	}

	tier := Tier(parts[0])
	if tier == TierFree || !tier.Valid() {
		return "", "", &UnknownProductError{ProductID: productID}
	}

	period := BillingPeriod(parts[1])
	if period != BillingMonthly && period != BillingAnnual {
		return "", "", &UnknownProductError{ProductID: productID}
	}
	return tier, period, nil
}
