// Package artcore analyzes uploaded vector artwork for print production:
// tight content bounds, physical dimensions, and a normalized color and
// font catalog, all from raw markup.
package artcore

import (
	"fmt"

	"github.com/flanksource/commons/logger"

	"github.com/inkprep/artcore/api"
	"github.com/inkprep/artcore/bounds"
	"github.com/inkprep/artcore/color"
	"github.com/inkprep/artcore/dimension"
	"github.com/inkprep/artcore/scan"
)

// AnalysisResult is everything the analyzer learned about one document.
type AnalysisResult struct {
	Shape      api.DocumentShape   `json:"shape" yaml:"shape"`
	Bounds     *api.BoundingBox    `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Dimensions api.DimensionResult `json:"dimensions" yaml:"dimensions"`
	Colors     []api.ColorEntry    `json:"colors" yaml:"colors"`
	Fonts      []api.FontUsage     `json:"fonts,omitempty" yaml:"fonts,omitempty"`

	HasLiveText    bool     `json:"has_live_text" yaml:"has_live_text"`
	GlyphsOutlined bool     `json:"glyphs_outlined" yaml:"glyphs_outlined"`
	NeedsOutlining bool     `json:"needs_outlining" yaml:"needs_outlining"`
	PantoneHints   []string `json:"pantone_hints,omitempty" yaml:"pantone_hints,omitempty"`

	// Truncated is set when element caps were hit during scanning and the
	// results cover only part of the document.
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// Analyzer runs the full pipeline over raw markup. The zero value is not
// usable; construct with NewAnalyzer.
type Analyzer struct {
	Bounds     *bounds.Calculator
	Normalizer *dimension.Normalizer
}

// NewAnalyzer returns an Analyzer with default heuristics and thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		Bounds:     bounds.NewCalculator(),
		Normalizer: dimension.NewNormalizer(),
	}
}

// Analyze runs bounds, dimension and color analysis over one document. The
// returned error is reserved for input that is not vector markup at all;
// degraded inputs (oversized, truncated, no usable geometry) produce a
// result with fallback values instead.
func (a *Analyzer) Analyze(markup string) (*AnalysisResult, error) {
	if len(markup) > scan.MaxDocumentBytes {
		// Bail out before any parsing to bound worst-case latency.
		logger.Warnf("analyze: document over %d byte ceiling, returning fallback result", scan.MaxDocumentBytes)
		box := a.Bounds.ContentBounds(markup)
		return &AnalysisResult{
			Shape:      api.ShapeStandard,
			Bounds:     box,
			Dimensions: a.Normalizer.Fallback(),
		}, nil
	}

	doc, err := scan.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	shape := a.Bounds.Classify(doc)
	box := a.Bounds.ContentBoundsDocument(doc)
	cat := color.CatalogDocument(doc)

	res := &AnalysisResult{
		Shape:          shape,
		Bounds:         box,
		Colors:         cat.Colors,
		Fonts:          cat.Fonts,
		HasLiveText:    cat.HasLiveText,
		GlyphsOutlined: cat.GlyphsOutlined,
		NeedsOutlining: cat.NeedsOutlining,
		PantoneHints:   cat.PantoneHints,
		Truncated:      doc.Truncated,
	}

	switch {
	case box != nil:
		res.Dimensions = a.Normalizer.FromContentBounds(*box)
	case doc.HasViewBox:
		res.Dimensions = a.Normalizer.FromViewBox(doc.CanvasWidth(), doc.CanvasHeight())
	default:
		res.Dimensions = a.Normalizer.Fallback()
	}
	return res, nil
}

// Analyze runs the default analyzer over one document.
func Analyze(markup string) (*AnalysisResult, error) {
	return NewAnalyzer().Analyze(markup)
}
