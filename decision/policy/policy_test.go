package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefault_RouteThresholds(t *testing.T) {
	p := Default()
	assert.Equal(t, 7, p.Route.NoCodeThreshold)
	assert.Equal(t, 3, p.Route.HybridThreshold)
	assert.Equal(t, 10, p.Route.RegulatedNoCode)
}

func TestLoad_OverlaysOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := "route:\n  no_code_threshold: 8\ngaps:\n  budget_moderate: 0.3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, p.Route.NoCodeThreshold)
	assert.Equal(t, 0.3, p.Gaps.BudgetModerate)
	// Untouched values keep their defaults.
	assert.Equal(t, 3, p.Route.HybridThreshold)
	assert.Equal(t, 0.5, p.Gaps.TimelineModerate)
	assert.Equal(t, int64(107), p.Estimation.HourlyRateCustom)
}

func TestLoad_RejectsInvertedThresholds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := "route:\n  no_code_threshold: 2\n  hybrid_threshold: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_code_threshold")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate_GapToleranceBounds(t *testing.T) {
	p := Default()
	p.Gaps.TeamModerate = 1.2
	assert.Error(t, p.Validate())

	p = Default()
	p.Complexity.SimpleMax = 9
	assert.Error(t, p.Validate())
}
