// internal/entitlement/limit.go
package entitlement

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const unlimitedText = "unlimited"

// Limit is a numeric cap that is either a finite non-negative count or
// unlimited. Compare limits through its methods only.
type Limit struct {
	n         int
	unlimited bool
}

// Finite returns a capped limit. It is meant for literals in code and panics
// on a negative count; values read from config or JSON go through ParseLimit.
func Finite(n int) Limit {
	if n < 0 {
		panic(fmt.Sprintf("entitlement: negative limit %d", n))
	}
	return Limit{n: n}
}

// Unlimited returns a limit with no upper bound.
func Unlimited() Limit {
	return Limit{unlimited: true}
}

func (l Limit) IsUnlimited() bool {
	return l.unlimited
}

// Max returns the finite cap. ok is false for an unlimited limit.
func (l Limit) Max() (n int, ok bool) {
	if l.unlimited {
		return 0, false
	}
	return l.n, true
}

// Allows reports whether one more unit may be added when count are already in
// use. The boundary is exclusive: at exactly the cap nothing more is allowed.
func (l Limit) Allows(count int) bool {
	if l.unlimited {
		return true
	}
	return count < l.n
}

// AtLeast reports whether l is greater than or equal to other.
func (l Limit) AtLeast(other Limit) bool {
	switch {
	case l.unlimited:
		return true
	case other.unlimited:
		return false
	default:
		return l.n >= other.n
	}
}

// Ratio returns usage/cap. An unlimited or zero cap exerts no pressure and
// yields 0.
func (l Limit) Ratio(usage int) float64 {
	if l.unlimited || l.n <= 0 {
		return 0
	}
	return float64(usage) / float64(l.n)
}

func (l Limit) String() string {
	if l.unlimited {
		return unlimitedText
	}
	return strconv.Itoa(l.n)
}

// MarshalJSON encodes a finite limit as a number and an unlimited one as the
// string "unlimited".
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.unlimited {
		return json.Marshal(unlimitedText)
	}
	return json.Marshal(l.n)
}

// UnmarshalJSON accepts a non-negative number, "unlimited", or the legacy -1.
func (l *Limit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != unlimitedText {
			return fmt.Errorf("invalid limit %q", s)
		}
		*l = Unlimited()
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid limit %s: %w", string(data), err)
	}
	return l.setInt(n)
}

func (l *Limit) setInt(n int) error {
	switch {
	case n == -1:
		*l = Unlimited()
	case n < 0:
		return fmt.Errorf("invalid limit %d", n)
	default:
		*l = Finite(n)
	}
	return nil
}

// ParseLimit reads the same textual forms UnmarshalJSON accepts. It is used by
// the config loader, where values arrive as strings or ints.
func ParseLimit(v interface{}) (Limit, error) {
	var n int
	switch val := v.(type) {
	case int:
		n = val
	case int64:
		n = int(val)
	case float64:
		if val != float64(int(val)) {
			return Limit{}, fmt.Errorf("invalid limit %v", val)
		}
		n = int(val)
	case string:
		if val == unlimitedText {
			return Unlimited(), nil
		}
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return Limit{}, fmt.Errorf("invalid limit %q", val)
		}
		n = parsed
	default:
		return Limit{}, fmt.Errorf("invalid limit type %T", v)
	}

	var l Limit
	if err := l.setInt(n); err != nil {
		return Limit{}, err
	}
	return l, nil
}
