// Package dimension converts bounding boxes between pixel, point and
// millimeter spaces and reconciles oversized content boxes down to a
// believable physical print size, so the on-canvas preview and the
// exported document agree.
package dimension

import (
	"math"

	"github.com/flanksource/commons/logger"

	"github.com/inkprep/artcore/api"
)

// Unit conversion follows the 72 points-per-inch, 25.4 mm-per-inch
// convention used throughout print tooling. Pixel values are read at
// 72dpi, so px and pt are numerically equal.
const (
	PointsPerInch = 72.0
	MmPerInch     = 25.4
	PointsPerMm   = PointsPerInch / MmPerInch
)

// PxToMm converts a 72dpi pixel length to millimeters.
func PxToMm(px float64) float64 { return px / PointsPerInch * MmPerInch }

// MmToPx converts millimeters to 72dpi pixels.
func MmToPx(mm float64) float64 { return mm / MmPerInch * PointsPerInch }

// MmToPt converts millimeters to points.
func MmToPt(mm float64) float64 { return mm * PointsPerMm }

// PtToMm converts points to millimeters.
func PtToMm(pt float64) float64 { return pt / PointsPerMm }

// Config holds the export-correction thresholds. Like the bounds
// heuristics these are tuned values, not derived ones.
type Config struct {
	// OversizedThresholdMm triggers the corrective content ratio when
	// either detected dimension exceeds it.
	OversizedThresholdMm float64 `json:"oversized_threshold_mm" yaml:"oversized_threshold_mm"`
	// DefaultContentRatio scales oversized dimensions down.
	DefaultContentRatio float64 `json:"default_content_ratio" yaml:"default_content_ratio"`
	// ElongatedContentRatio is the gentler ratio for very wide or very
	// tall artwork, where aggressive shrinkage distorts disproportionately.
	ElongatedContentRatio float64 `json:"elongated_content_ratio" yaml:"elongated_content_ratio"`
	// WideAspectCutoff and TallAspectCutoff bound the aspect band that
	// still gets the default ratio.
	WideAspectCutoff float64 `json:"wide_aspect_cutoff" yaml:"wide_aspect_cutoff"`
	TallAspectCutoff float64 `json:"tall_aspect_cutoff" yaml:"tall_aspect_cutoff"`

	// FallbackWidthPx and FallbackHeightPx size the result when a
	// document carries no usable viewBox or content bounds at all.
	FallbackWidthPx  float64 `json:"fallback_width_px" yaml:"fallback_width_px"`
	FallbackHeightPx float64 `json:"fallback_height_px" yaml:"fallback_height_px"`

	// SyncToleranceMm: display sizes within this distance of the export
	// size are considered already in sync.
	SyncToleranceMm float64 `json:"sync_tolerance_mm" yaml:"sync_tolerance_mm"`
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		OversizedThresholdMm:  200,
		DefaultContentRatio:   0.75,
		ElongatedContentRatio: 0.85,
		WideAspectCutoff:      2.5,
		TallAspectCutoff:      0.4,
		FallbackWidthPx:       300,
		FallbackHeightPx:      100,
		SyncToleranceMm:       0.05,
	}
}

// Normalizer reconciles detected artwork sizes into physical dimensions.
// Stateless apart from configuration, safe for concurrent use.
type Normalizer struct {
	Config Config
}

// NewNormalizer returns a Normalizer with the default thresholds.
func NewNormalizer() *Normalizer {
	return &Normalizer{Config: DefaultConfig()}
}

// NewNormalizerWith returns a Normalizer with explicit thresholds.
func NewNormalizerWith(cfg Config) *Normalizer {
	return &Normalizer{Config: cfg}
}

// FromContentBounds sizes a result from a computed content box. This is
// the most trustworthy source: a tight box around the visible artwork.
func (n *Normalizer) FromContentBounds(box api.BoundingBox) api.DimensionResult {
	return resultFromPx(box.Width, box.Height, api.AccuracyTight, api.SourceContentBounds)
}

// FromViewBox sizes a result from the declared viewBox. The declaration
// usually includes page padding, so it is only approximate.
func (n *Normalizer) FromViewBox(width, height float64) api.DimensionResult {
	return resultFromPx(width, height, api.AccuracyApproximate, api.SourceViewBox)
}

// Fallback sizes a result when neither a content box nor a viewBox is
// available. A design tool must always render something.
func (n *Normalizer) Fallback() api.DimensionResult {
	logger.Warnf("dimension: no viewBox or content bounds, using %gx%gpx fallback",
		n.Config.FallbackWidthPx, n.Config.FallbackHeightPx)
	return resultFromPx(n.Config.FallbackWidthPx, n.Config.FallbackHeightPx,
		api.AccuracyFallback, api.SourceHeuristicFallback)
}

func resultFromPx(wPx, hPx float64, acc api.Accuracy, src api.DimensionSource) api.DimensionResult {
	return api.DimensionResult{
		WidthPx:  wPx,
		HeightPx: hPx,
		WidthMm:  PxToMm(wPx),
		HeightMm: PxToMm(hPx),
		WidthPt:  MmToPt(PxToMm(wPx)),
		HeightPt: MmToPt(PxToMm(hPx)),
		Accuracy: acc,
		Source:   src,
	}
}

// CorrectForExport converts a tight-content viewBox (72dpi pixels) to
// millimeters and, when a dimension exceeds the oversized threshold,
// applies the corrective content ratio before recomputing points for
// embedding.
func (n *Normalizer) CorrectForExport(widthPx, heightPx float64) api.CorrectedDimensions {
	wMm, hMm := PxToMm(widthPx), PxToMm(heightPx)
	out := api.CorrectedDimensions{WidthMm: wMm, HeightMm: hMm}

	if wMm > n.Config.OversizedThresholdMm || hMm > n.Config.OversizedThresholdMm {
		ratio := n.Config.DefaultContentRatio
		if aspect := aspectRatio(widthPx, heightPx); aspect > n.Config.WideAspectCutoff || aspect < n.Config.TallAspectCutoff {
			ratio = n.Config.ElongatedContentRatio
		}
		logger.Debugf("dimension: %.1fx%.1fmm over %gmm threshold, applying %.0f%% content ratio",
			wMm, hMm, n.Config.OversizedThresholdMm, ratio*100)
		out.WidthMm = wMm * ratio
		out.HeightMm = hMm * ratio
		out.IsOversized = true
		out.AppliedContentRatio = true
	}

	out.WidthPts = MmToPt(out.WidthMm)
	out.HeightPts = MmToPt(out.HeightMm)
	return out
}

// SyncDisplayToExport returns the resize the caller must apply to an
// on-screen placement after an export correction, or nil when preview and
// export already agree. The caller performs the actual resize.
func (n *Normalizer) SyncDisplayToExport(corrected api.CorrectedDimensions, displayWidthMm, displayHeightMm float64) *api.DisplayUpdate {
	if !corrected.AppliedContentRatio {
		return nil
	}
	if math.Abs(displayWidthMm-corrected.WidthMm) <= n.Config.SyncToleranceMm &&
		math.Abs(displayHeightMm-corrected.HeightMm) <= n.Config.SyncToleranceMm {
		return nil
	}
	return &api.DisplayUpdate{WidthMm: corrected.WidthMm, HeightMm: corrected.HeightMm}
}

func aspectRatio(w, h float64) float64 {
	if h == 0 {
		return 1
	}
	return w / h
}
