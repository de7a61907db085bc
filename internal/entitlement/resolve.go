// internal/entitlement/resolve.go
package entitlement

import (
	"fmt"
	"strings"
)

// Role is the account type of a marketplace user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleHauler   Role = "hauler"
)

// UnknownRoleError is returned for an account role other than customer or hauler.
type UnknownRoleError struct {
	Value string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown account role %q", e.Value)
}

func (e *UnknownRoleError) Is(target error) bool {
	return target == ErrInvalidInput
}

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleCustomer, RoleHauler:
		return r, nil
	default:
		return "", &UnknownRoleError{Value: s}
	}
}

// ResolveTier returns the tier that gates a user's actions. Customers carry no
// subscription and are always free. A hauler with nothing stored is free; a
// stored value must be a known tier.
func ResolveTier(role Role, stored string) (Tier, error) {
	switch role {
	case RoleCustomer:
		return TierFree, nil
	case RoleHauler:
		if strings.TrimSpace(stored) == "" {
			return TierFree, nil
		}
		return ParseTier(stored)
	default:
		return "", &UnknownRoleError{Value: string(role)}
	}
}
