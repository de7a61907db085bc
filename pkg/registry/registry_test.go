package registry

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hauler-workers/internal/common/errors"
)

func shippedRegistryPath(t *testing.T) string {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "configs", "activity-registry.json")
}

func TestShippedRegistryIsValid(t *testing.T) {
	reg, err := LoadRegistry(shippedRegistryPath(t))
	require.NoError(t, err)

	require.NoError(t, reg.Validate(errors.KnownCodes()))
	assert.Len(t, reg.Activities, 8)

	a, ok := reg.Find("subscription.hauler-tier.resolve")
	require.True(t, ok)
	assert.Equal(t, "resolve-hauler-tier", a.ID)
	assert.Equal(t, 3, a.Retries)
}

func TestValidate_Problems(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", DisplayName: "A", Category: "entitlement", TaskType: "entitlement.feature.check"},
		{ID: "a", DisplayName: "A2", Category: "entitlement", TaskType: "entitlement.feature.check"},
		{ID: "b", DisplayName: "", Category: "entitlement", TaskType: "CheckFeature"},
		{ID: "c", DisplayName: "C", Category: "x", TaskType: "x.y.z", Timeout: "soon", ErrorCodes: []string{"NOPE"}, ImplementationStatus: "done"},
	}}

	err := reg.Validate(errors.KnownCodes())
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "duplicate activity id: a")
	assert.Contains(t, msg, "duplicate task type: entitlement.feature.check")
	assert.Contains(t, msg, "b: missing displayName")
	assert.Contains(t, msg, "domain.subject.action")
	assert.Contains(t, msg, `c: invalid timeout "soon"`)
	assert.Contains(t, msg, "c: unknown error code NOPE")
	assert.Contains(t, msg, `unknown implementation status "done"`)
}

func TestValidate_Empty(t *testing.T) {
	assert.Error(t, (&ActivityRegistry{}).Validate(nil))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	reg := &ActivityRegistry{Version: "1.0.0", Activities: []Activity{
		{ID: "compare-tiers", DisplayName: "Compare Tiers", Category: "entitlement", TaskType: "entitlement.tier.compare"},
	}}
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.LastUpdated)
	_, ok := loaded.Find("compare-tiers")
	assert.True(t, ok)
	_, ok = loaded.Find("missing")
	assert.False(t, ok)
}
