package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThresholds(t *testing.T) {
	thresholds := Default()

	assert.Equal(t, 500.0, thresholds.ForUnit("mg"))
	assert.Equal(t, 5.0, thresholds.ForUnit("g"))
	assert.Equal(t, 50.0, thresholds.ForUnit("ml"))
	assert.Equal(t, float64(DefaultThreshold), thresholds.ForUnit("units"))
	assert.Equal(t, float64(DefaultThreshold), thresholds.ForUnit("mcg"))
}

func TestForUnitCaseInsensitive(t *testing.T) {
	thresholds := Default()

	assert.Equal(t, 500.0, thresholds.ForUnit("MG"))
	assert.Equal(t, 50.0, thresholds.ForUnit("Ml"))
}

func TestLoadFileEmptyPath(t *testing.T) {
	thresholds, err := LoadFile("")

	require.NoError(t, err)
	assert.Equal(t, Default(), thresholds)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "thresholds:\n  mg: 200\n  MCG: 40\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	thresholds, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 200.0, thresholds.ForUnit("mg"))
	assert.Equal(t, 40.0, thresholds.ForUnit("mcg"))
	// Unmentioned units keep their defaults
	assert.Equal(t, 50.0, thresholds.ForUnit("ml"))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds: [not, a, map]"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds:\n  mg: -5\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
