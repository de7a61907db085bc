package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hauler-workers/pkg/registry"
)

func TestAddUpdateValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	var out bytes.Buffer

	require.NoError(t, run([]string{"add", "-path", path,
		"-id", "check-feature-access",
		"-displayName", "Check Feature Access",
		"-category", "entitlement",
		"-taskType", "entitlement.feature.check",
		"-errorCodes", "UNKNOWN_TIER, UNKNOWN_FEATURE",
	}, &out))

	require.NoError(t, run([]string{"update", "-path", path, "-id", "check-feature-access", "-field", "status", "-value", "verified"}, &out))
	require.NoError(t, run([]string{"update", "-path", path, "-id", "entitlement.feature.check", "-field", "retries", "-value", "2"}, &out))
	require.NoError(t, run([]string{"validate", "-path", path}, &out))
	assert.Contains(t, out.String(), "Found 1 activities")

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.Find("check-feature-access")
	require.True(t, ok)
	assert.Equal(t, "verified", a.ImplementationStatus)
	assert.Equal(t, 2, a.Retries)
	assert.Equal(t, []string{"UNKNOWN_TIER", "UNKNOWN_FEATURE"}, a.ErrorCodes)
}

func TestAdd_Rejections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	var out bytes.Buffer

	base := []string{"add", "-path", path, "-id", "compare-tiers", "-displayName", "Compare Tiers", "-category", "entitlement"}

	err := run(append(base, "-taskType", "compareTiers"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain.subject.action")

	err = run(append(base, "-taskType", "entitlement.tier.compare", "-errorCodes", "SUBSCRIPTION_EXPIRED"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown error code SUBSCRIPTION_EXPIRED")

	require.NoError(t, run(append(base, "-taskType", "entitlement.tier.compare"), &out))
	err = run(append(base, "-taskType", "entitlement.tier.compare"), &out)
	assert.ErrorContains(t, err, "already exists")
}

func TestUpdate_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	var out bytes.Buffer
	require.NoError(t, run([]string{"add", "-path", path, "-id", "x", "-displayName", "X", "-category", "entitlement", "-taskType", "entitlement.x.get"}, &out))

	assert.ErrorContains(t, run([]string{"update", "-path", path, "-id", "x", "-field", "owner", "-value", "me"}, &out), "unknown field")
	assert.ErrorContains(t, run([]string{"update", "-path", path, "-id", "y", "-field", "status", "-value", "verified"}, &out), "not found")
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"remove"}, &out))
	assert.NoError(t, run([]string{"help"}, &out))
	assert.Contains(t, out.String(), "Usage: registry-updater")
}
