package bounds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Heuristics gathers every threshold the content-bounds engine branches
// on. The defaults are empirically tuned against real uploaded artwork;
// they are configuration, not derived constants, and are kept adjustable
// so individual thresholds can be pinned by tests or tuned per deployment.
type Heuristics struct {
	// LargeViewBoxSpan marks a document as externally vectorized when any
	// viewBox dimension exceeds it and vectorization markers are present.
	LargeViewBoxSpan float64 `json:"large_viewbox_span" yaml:"large_viewbox_span"`
	// LargeDocMinPaths is the filled-path count treated as a vectorization
	// marker on its own.
	LargeDocMinPaths int `json:"large_doc_min_paths" yaml:"large_doc_min_paths"`

	// EdgeMarginFrac excludes coordinates within this fraction of the
	// canvas edges (likely background padding).
	EdgeMarginFrac float64 `json:"edge_margin_frac" yaml:"edge_margin_frac"`
	// TextEdgeMarginFrac is the wider edge exclusion used on text-heavy
	// documents.
	TextEdgeMarginFrac float64 `json:"text_edge_margin_frac" yaml:"text_edge_margin_frac"`
	// FullCanvasFrac is the share of the canvas a rectangle must cover to
	// count as a background frame.
	FullCanvasFrac float64 `json:"full_canvas_frac" yaml:"full_canvas_frac"`

	// MajoritySurvivorFrac: when at least this share of coordinates
	// survives the text-branch filters, the center-distance filter is
	// additionally applied.
	MajoritySurvivorFrac float64 `json:"majority_survivor_frac" yaml:"majority_survivor_frac"`
	// CenterKeepFrac keeps points within this fraction of the bounding
	// span from the centroid.
	CenterKeepFrac float64 `json:"center_keep_frac" yaml:"center_keep_frac"`
	// CenterDiscardMax skips the center filter when it would discard more
	// than this share of points.
	CenterDiscardMax float64 `json:"center_discard_max" yaml:"center_discard_max"`

	// SmallBoxSpan: a raw box with both dimensions under this span is
	// accepted as-is; a larger one is suspected of background
	// contamination and run through the density and focus passes.
	SmallBoxSpan float64 `json:"small_box_span" yaml:"small_box_span"`

	// DensityCellSize is the grid cell edge for coordinate density
	// clustering.
	DensityCellSize float64 `json:"density_cell_size" yaml:"density_cell_size"`
	// DensityRadiusFrac and DensityRadiusCap bound the radius tried around
	// the densest cell centroid.
	DensityRadiusFrac float64 `json:"density_radius_frac" yaml:"density_radius_frac"`
	DensityRadiusCap  float64 `json:"density_radius_cap" yaml:"density_radius_cap"`
	// DensityMinRetainFrac and DensityMinShrinkFrac gate acceptance of the
	// density-filtered box.
	DensityMinRetainFrac float64 `json:"density_min_retain_frac" yaml:"density_min_retain_frac"`
	DensityMinShrinkFrac float64 `json:"density_min_shrink_frac" yaml:"density_min_shrink_frac"`

	// FocusRatios is the center-focus ladder tried when density is
	// inconclusive, as fractions of the raw span.
	FocusRatios []float64 `json:"focus_ratios" yaml:"focus_ratios"`
	// FocusMinRetainFrac is the minimum share of points a focus candidate
	// must keep.
	FocusMinRetainFrac float64 `json:"focus_min_retain_frac" yaml:"focus_min_retain_frac"`
	// MinUsableWidth/Height reject focus candidates shrunk below a usable
	// logo size.
	MinUsableWidth  float64 `json:"min_usable_width" yaml:"min_usable_width"`
	MinUsableHeight float64 `json:"min_usable_height" yaml:"min_usable_height"`

	// LargeRetainFrac gates the edge filter on the large-vectorized
	// branch: the filtered box is used only if it keeps more than this
	// share of points.
	LargeRetainFrac float64 `json:"large_retain_frac" yaml:"large_retain_frac"`
	// MinBoxSize is the absolute floor on any returned box dimension in
	// the large-vectorized branch.
	MinBoxSize float64 `json:"min_box_size" yaml:"min_box_size"`

	// TextFallbackWidth/Height size the generic fallback box returned for
	// text documents where no colored path survives filtering.
	TextFallbackWidth  float64 `json:"text_fallback_width" yaml:"text_fallback_width"`
	TextFallbackHeight float64 `json:"text_fallback_height" yaml:"text_fallback_height"`
}

// DefaultHeuristics returns the tuned production thresholds.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		LargeViewBoxSpan:     1000,
		LargeDocMinPaths:     50,
		EdgeMarginFrac:       0.03,
		TextEdgeMarginFrac:   0.05,
		FullCanvasFrac:       0.98,
		MajoritySurvivorFrac: 0.5,
		CenterKeepFrac:       0.32,
		CenterDiscardMax:     0.85,
		SmallBoxSpan:         700,
		DensityCellSize:      8,
		DensityRadiusFrac:    0.15,
		DensityRadiusCap:     50,
		DensityMinRetainFrac: 0.10,
		DensityMinShrinkFrac: 0.40,
		FocusRatios:          []float64{0.08, 0.12, 0.18, 0.25},
		FocusMinRetainFrac:   0.05,
		MinUsableWidth:       20,
		MinUsableHeight:      15,
		LargeRetainFrac:      0.5,
		MinBoxSize:           10,
		TextFallbackWidth:    300,
		TextFallbackHeight:   100,
	}
}

// LoadHeuristics reads threshold overrides from a YAML file, starting from
// the defaults so partial files work.
func LoadHeuristics(path string) (Heuristics, error) {
	h := DefaultHeuristics()
	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("failed to read heuristics file: %w", err)
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("failed to parse heuristics file: %w", err)
	}
	return h, nil
}
