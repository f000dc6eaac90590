package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkprep/artcore/api"
)

func TestUnitRoundTrips(t *testing.T) {
	for _, v := range []float64{0.001, 1, 13.7, 100, 297, 5000} {
		assert.InEpsilon(t, v, PtToMm(MmToPt(v)), 1e-6, "mm<->pt at %g", v)
		assert.InEpsilon(t, v, PxToMm(MmToPx(v)), 1e-6, "mm<->px at %g", v)
	}
}

func TestPxToMm_At72Dpi(t *testing.T) {
	// 283.4646px at the 72dpi convention is exactly 100mm.
	assert.InDelta(t, 100.0, PxToMm(283.4646), 0.001)
	assert.InDelta(t, 2.834645669, MmToPt(1), 1e-6)
}

func TestCorrectForExport_WithinThreshold(t *testing.T) {
	// 400px is ~141mm, under the 200mm threshold: no correction.
	cd := NewNormalizer().CorrectForExport(400, 300)

	assert.False(t, cd.IsOversized)
	assert.False(t, cd.AppliedContentRatio)
	assert.InDelta(t, 141.1, cd.WidthMm, 0.1)
	assert.InDelta(t, 105.8, cd.HeightMm, 0.1)
	assert.InDelta(t, MmToPt(cd.WidthMm), cd.WidthPts, 1e-9)
}

func TestCorrectForExport_OversizedSquare(t *testing.T) {
	// A 1000x1000px viewBox is 352.8mm square; the default 75% ratio
	// brings it to ~264.6mm.
	cd := NewNormalizer().CorrectForExport(1000, 1000)

	assert.True(t, cd.IsOversized)
	assert.True(t, cd.AppliedContentRatio)
	assert.InDelta(t, 264.6, cd.WidthMm, 0.1)
	assert.InDelta(t, 264.6, cd.HeightMm, 0.1)
	assert.InDelta(t, MmToPt(264.6), cd.WidthPts, 0.3)
}

func TestCorrectForExport_ElongatedGetsGentlerRatio(t *testing.T) {
	n := NewNormalizer()

	wide := n.CorrectForExport(3000, 1000) // aspect 3.0
	require.True(t, wide.AppliedContentRatio)
	assert.InDelta(t, PxToMm(3000)*0.85, wide.WidthMm, 0.01)

	tall := n.CorrectForExport(1000, 3000) // aspect 0.33
	require.True(t, tall.AppliedContentRatio)
	assert.InDelta(t, PxToMm(3000)*0.85, tall.HeightMm, 0.01)

	square := n.CorrectForExport(1000, 1000)
	assert.InDelta(t, PxToMm(1000)*0.75, square.WidthMm, 0.01)
}

func TestCorrectForExport_OneDimensionOverThreshold(t *testing.T) {
	// 700px wide is ~247mm: the width alone trips the threshold and both
	// dimensions scale to keep the aspect ratio intact.
	cd := NewNormalizer().CorrectForExport(700, 300)

	require.True(t, cd.AppliedContentRatio)
	assert.InDelta(t, cd.WidthMm/cd.HeightMm, 700.0/300.0, 1e-9)
}

func TestSyncDisplayToExport(t *testing.T) {
	n := NewNormalizer()

	uncorrected := n.CorrectForExport(400, 300)
	assert.Nil(t, n.SyncDisplayToExport(uncorrected, 50, 50))

	corrected := n.CorrectForExport(1000, 1000)
	upd := n.SyncDisplayToExport(corrected, 352.8, 352.8)
	require.NotNil(t, upd)
	assert.InDelta(t, corrected.WidthMm, upd.WidthMm, 1e-9)
	assert.InDelta(t, corrected.HeightMm, upd.HeightMm, 1e-9)

	// Display already at the corrected size: nothing to do.
	assert.Nil(t, n.SyncDisplayToExport(corrected, corrected.WidthMm, corrected.HeightMm))
}

func TestDimensionResultSources(t *testing.T) {
	n := NewNormalizer()

	box := api.NewBoundingBox(450, 460, 550, 540, api.UnitPx)
	tight := n.FromContentBounds(box)
	assert.Equal(t, api.AccuracyTight, tight.Accuracy)
	assert.Equal(t, api.SourceContentBounds, tight.Source)
	assert.InDelta(t, 100, tight.WidthPx, 1e-9)
	assert.InDelta(t, PxToMm(100), tight.WidthMm, 1e-9)
	assert.InDelta(t, tight.WidthPx, tight.WidthPt, 1e-6) // px==pt at 72dpi

	vb := n.FromViewBox(1000, 500)
	assert.Equal(t, api.AccuracyApproximate, vb.Accuracy)
	assert.Equal(t, api.SourceViewBox, vb.Source)

	fb := n.Fallback()
	assert.Equal(t, api.AccuracyFallback, fb.Accuracy)
	assert.Equal(t, api.SourceHeuristicFallback, fb.Source)
	assert.Equal(t, 300.0, fb.WidthPx)
	assert.Equal(t, 100.0, fb.HeightPx)
}
