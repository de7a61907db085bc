package entitlement

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinite_RejectsNegative(t *testing.T) {
	assert.PanicsWithValue(t, "entitlement: negative limit -2", func() { Finite(-2) })
	assert.NotPanics(t, func() { Finite(0) })
}

func TestLimit_Allows(t *testing.T) {
	assert.True(t, Finite(3).Allows(2))
	assert.False(t, Finite(3).Allows(3))
	assert.False(t, Finite(0).Allows(0))
	assert.True(t, Unlimited().Allows(1<<30))
}

func TestLimit_AtLeast(t *testing.T) {
	assert.True(t, Unlimited().AtLeast(Unlimited()))
	assert.True(t, Unlimited().AtLeast(Finite(100)))
	assert.False(t, Finite(100).AtLeast(Unlimited()))
	assert.True(t, Finite(5).AtLeast(Finite(5)))
	assert.False(t, Finite(4).AtLeast(Finite(5)))
}

func TestLimit_Ratio(t *testing.T) {
	assert.Equal(t, 0.5, Finite(10).Ratio(5))
	assert.Equal(t, 0.0, Unlimited().Ratio(1000))
	assert.Equal(t, 0.0, Finite(0).Ratio(3))
}

func TestLimit_JSON(t *testing.T) {
	data, err := json.Marshal(Features{MaxServiceAreas: Unlimited(), MaxJobRequests: Finite(50)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"maxServiceAreas":"unlimited"`)
	assert.Contains(t, string(data), `"maxJobRequests":50`)

	var l Limit
	require.NoError(t, json.Unmarshal([]byte(`"unlimited"`), &l))
	assert.True(t, l.IsUnlimited())

	require.NoError(t, json.Unmarshal([]byte(`-1`), &l))
	assert.True(t, l.IsUnlimited())

	require.NoError(t, json.Unmarshal([]byte(`7`), &l))
	n, ok := l.Max()
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	assert.Error(t, json.Unmarshal([]byte(`-2`), &l))
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &l))
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in        interface{}
		unlimited bool
		n         int
		wantErr   bool
	}{
		{in: 3, n: 3},
		{in: int64(8), n: 8},
		{in: float64(2), n: 2},
		{in: "12", n: 12},
		{in: "unlimited", unlimited: true},
		{in: -1, unlimited: true},
		{in: 2.5, wantErr: true},
		{in: "many", wantErr: true},
		{in: -4, wantErr: true},
		{in: true, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLimit(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.unlimited, got.IsUnlimited(), "%v", tt.in)
		if !tt.unlimited {
			n, _ := got.Max()
			assert.Equal(t, tt.n, n)
		}
	}
}
