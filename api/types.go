package api

import (
	"fmt"
	"math"
)

// Unit identifies the coordinate space a measurement is expressed in.
type Unit string

const (
	UnitPx Unit = "px"
	UnitPt Unit = "pt"
	UnitMm Unit = "mm"
)

// Point2D is a plain coordinate in the document's native unit (pixels
// unless stated otherwise). Value type, never mutated after creation.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// BoundingBox is an axis-aligned box over document coordinates.
// Width and Height are always derived from the min/max corners, so a box
// built through NewBoundingBox can never report a negative extent.
type BoundingBox struct {
	MinX   float64 `json:"min_x" yaml:"min_x"`
	MinY   float64 `json:"min_y" yaml:"min_y"`
	MaxX   float64 `json:"max_x" yaml:"max_x"`
	MaxY   float64 `json:"max_y" yaml:"max_y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Units  Unit    `json:"units" yaml:"units"`
}

// NewBoundingBox builds a box from two corners, swapping them if needed so
// that the min/max ordering and the width/height derivation always hold.
func NewBoundingBox(minX, minY, maxX, maxY float64, units Unit) BoundingBox {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	return BoundingBox{
		MinX:   minX,
		MinY:   minY,
		MaxX:   maxX,
		MaxY:   maxY,
		Width:  maxX - minX,
		Height: maxY - minY,
		Units:  units,
	}
}

// BoundsOf returns the tight box around a set of points, or false when the
// set is empty.
func BoundsOf(points []Point2D, units Unit) (BoundingBox, bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return NewBoundingBox(minX, minY, maxX, maxY, units), true
}

// Contains reports whether other lies fully inside b (inclusive edges).
func (b BoundingBox) Contains(other BoundingBox) bool {
	return other.MinX >= b.MinX && other.MinY >= b.MinY &&
		other.MaxX <= b.MaxX && other.MaxY <= b.MaxY
}

// Center returns the geometric center of the box.
func (b BoundingBox) Center() Point2D {
	return Point2D{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%.1f,%.1f %.1fx%.1f %s]", b.MinX, b.MinY, b.Width, b.Height, b.Units)
}

// RGB is an 8-bit-per-channel device color.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// Hex returns the canonical lowercase hex form, e.g. "#ff0040".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CMYK holds ink percentages in the 0..100 range.
type CMYK struct {
	C float64 `json:"c" yaml:"c"`
	M float64 `json:"m" yaml:"m"`
	Y float64 `json:"y" yaml:"y"`
	K float64 `json:"k" yaml:"k"`
}

func (c CMYK) String() string {
	return fmt.Sprintf("C:%g M:%g Y:%g K:%g", c.C, c.M, c.Y, c.K)
}

// ColorAttribute says which paint attribute a color was found on.
type ColorAttribute string

const (
	AttributeFill   ColorAttribute = "fill"
	AttributeStroke ColorAttribute = "stroke"
)

// ColorEntry is one distinct color discovered in a vector document.
// Original preserves the literal exactly as written in the markup so a
// caller can later do exact find/replace recoloring; Canonical is the
// normalized display form. CMYK is nil when the literal could not be
// parsed, which downstream code treats as "leave the original alone".
type ColorEntry struct {
	ID              string         `json:"id" yaml:"id"`
	Canonical       string         `json:"canonical" yaml:"canonical"`
	Original        string         `json:"original" yaml:"original"`
	CMYK            *CMYK          `json:"cmyk,omitempty" yaml:"cmyk,omitempty"`
	PantoneMatch    string         `json:"pantone_match,omitempty" yaml:"pantone_match,omitempty"`
	PantoneDistance float64        `json:"pantone_distance,omitempty" yaml:"pantone_distance,omitempty"`
	ElementKind     string         `json:"element_kind" yaml:"element_kind"`
	Attribute       ColorAttribute `json:"attribute" yaml:"attribute"`
	Occurrences     int            `json:"occurrences" yaml:"occurrences"`
}

// FontUsage describes live text found in a document. It is informational
// only; the upload flow uses it to warn that fonts still need outlining.
type FontUsage struct {
	FontFamily  string  `json:"font_family" yaml:"font_family"`
	FontSize    float64 `json:"font_size" yaml:"font_size"`
	FontWeight  string  `json:"font_weight,omitempty" yaml:"font_weight,omitempty"`
	TextContent string  `json:"text_content" yaml:"text_content"`
	ElementKind string  `json:"element_kind" yaml:"element_kind"`
}

// Accuracy labels how trustworthy a dimension result is. Diagnostic only,
// carries no behavioral contract.
type Accuracy string

const (
	AccuracyTight       Accuracy = "tight"
	AccuracyApproximate Accuracy = "approximate"
	AccuracyFallback    Accuracy = "fallback"
)

// DimensionSource labels where a dimension result came from.
type DimensionSource string

const (
	SourceViewBox           DimensionSource = "viewbox"
	SourceContentBounds     DimensionSource = "content-bounds"
	SourceHeuristicFallback DimensionSource = "heuristic-fallback"
)

// DimensionResult carries one physical size in all three unit systems.
type DimensionResult struct {
	WidthPx  float64         `json:"width_px" yaml:"width_px"`
	HeightPx float64         `json:"height_px" yaml:"height_px"`
	WidthMm  float64         `json:"width_mm" yaml:"width_mm"`
	HeightMm float64         `json:"height_mm" yaml:"height_mm"`
	WidthPt  float64         `json:"width_pt" yaml:"width_pt"`
	HeightPt float64         `json:"height_pt" yaml:"height_pt"`
	Accuracy Accuracy        `json:"accuracy" yaml:"accuracy"`
	Source   DimensionSource `json:"source" yaml:"source"`
}

// CorrectedDimensions is the outcome of reconciling a tight-content
// viewBox against the oversized threshold before export.
// AppliedContentRatio is true iff the oversized branch ran.
type CorrectedDimensions struct {
	WidthMm             float64 `json:"width_mm" yaml:"width_mm"`
	HeightMm            float64 `json:"height_mm" yaml:"height_mm"`
	WidthPts            float64 `json:"width_pts" yaml:"width_pts"`
	HeightPts           float64 `json:"height_pts" yaml:"height_pts"`
	IsOversized         bool    `json:"is_oversized" yaml:"is_oversized"`
	AppliedContentRatio bool    `json:"applied_content_ratio" yaml:"applied_content_ratio"`
}

// DisplayUpdate instructs the caller to resize an on-screen placement so
// that preview and export stay visually identical. The core never performs
// the resize itself.
type DisplayUpdate struct {
	WidthMm  float64 `json:"width_mm" yaml:"width_mm"`
	HeightMm float64 `json:"height_mm" yaml:"height_mm"`
}

// DocumentShape classifies an input document so the bounds engine can pick
// the right heuristic branch.
type DocumentShape string

const (
	// ShapeStandard is ordinary vector art with no live text.
	ShapeStandard DocumentShape = "standard"
	// ShapeTextHeavy contains live text or glyph definitions whose defs
	// blocks would otherwise inflate the bounding box.
	ShapeTextHeavy DocumentShape = "text-heavy"
	// ShapeLargeVectorized is an externally vectorized large-canvas
	// document, typically an AI-traced raster image.
	ShapeLargeVectorized DocumentShape = "large-vectorized"
)
