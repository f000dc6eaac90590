package bounds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHeuristics(t *testing.T) {
	h := DefaultHeuristics()

	assert.Equal(t, 1000.0, h.LargeViewBoxSpan)
	assert.Equal(t, 50, h.LargeDocMinPaths)
	assert.Equal(t, 0.98, h.FullCanvasFrac)
	assert.Equal(t, 700.0, h.SmallBoxSpan)
	assert.Equal(t, []float64{0.08, 0.12, 0.18, 0.25}, h.FocusRatios)
	assert.Equal(t, 300.0, h.TextFallbackWidth)
	assert.Equal(t, 100.0, h.TextFallbackHeight)
}

func TestLoadHeuristics_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bounds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("small_box_span: 500\nmin_box_size: 25\n"), 0o644))

	h, err := LoadHeuristics(path)
	require.NoError(t, err)

	assert.Equal(t, 500.0, h.SmallBoxSpan)
	assert.Equal(t, 25.0, h.MinBoxSize)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.98, h.FullCanvasFrac)
	assert.Equal(t, []float64{0.08, 0.12, 0.18, 0.25}, h.FocusRatios)
}

func TestLoadHeuristics_MissingFile(t *testing.T) {
	h, err := LoadHeuristics(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	// Defaults come back so callers can proceed after logging.
	assert.Equal(t, DefaultHeuristics().SmallBoxSpan, h.SmallBoxSpan)
}

func TestLoadHeuristics_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("small_box_span: [not a number"), 0o644))

	_, err := LoadHeuristics(path)
	assert.Error(t, err)
}
