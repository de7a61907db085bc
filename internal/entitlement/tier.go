// internal/entitlement/tier.go
package entitlement

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is a hauler subscription level.
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremier Tier = "premier"
)

// Tiers lists every tier in ascending order.
var Tiers = []Tier{TierFree, TierPro, TierPremier}

var tierRank = map[Tier]int{
	TierFree:    0,
	TierPro:     1,
	TierPremier: 2,
}

// ErrInvalidInput is matched by every input error returned from this package.
var ErrInvalidInput = errors.New("invalid entitlement input")

// UnknownTierError is returned when a value outside the tier enum is supplied.
type UnknownTierError struct {
	Value string
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("unknown subscription tier %q", e.Value)
}

func (e *UnknownTierError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ParseTier converts a raw string into a Tier. Matching is exact apart from
// surrounding whitespace; there is no fallback to free.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.TrimSpace(s))
	if _, ok := tierRank[t]; !ok {
		return "", &UnknownTierError{Value: s}
	}
	return t, nil
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

func (t Tier) String() string {
	return string(t)
}

// Label is the upper-case form used in user-facing reasons ("PRO").
func (t Tier) Label() string {
	return strings.ToUpper(string(t))
}

// IsTop reports whether no higher tier exists.
func (t Tier) IsTop() bool {
	return t == Tiers[len(Tiers)-1]
}

// CompareTiers returns a negative number when a < b, zero when equal and a
// positive number when a > b. Only the sign is meaningful. Either tier
// outside the enum yields an UnknownTierError.
func CompareTiers(a, b Tier) (int, error) {
	if !a.Valid() {
		return 0, &UnknownTierError{Value: string(a)}
	}
	if !b.Valid() {
		return 0, &UnknownTierError{Value: string(b)}
	}
	return tierRank[a] - tierRank[b], nil
}

// IsHigherTier reports whether a ranks strictly above b.
func IsHigherTier(a, b Tier) (bool, error) {
	cmp, err := CompareTiers(a, b)
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
