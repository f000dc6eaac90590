// Package bounds computes the bounding box of actually-visible vector
// content: backgrounds, full-canvas frames, font-glyph definitions, and
// near-edge padding are excluded so downstream sizing reflects the logo,
// not the page it was delivered on.
package bounds

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/flanksource/commons/logger"
	rsvg "github.com/rustyoz/svg"
	"github.com/samber/lo"

	"github.com/inkprep/artcore/api"
	"github.com/inkprep/artcore/color"
	"github.com/inkprep/artcore/pathdata"
	"github.com/inkprep/artcore/scan"
)

// vectorizationMarkers are tool fingerprints left in markup by automatic
// raster-to-vector converters.
var vectorizationMarkers = []string{
	"vectorizer",
	"vectorized",
	"image trace",
	"potrace",
	"autotrace",
	"vector magic",
}

// Calculator derives content bounds from raw vector markup. It is
// stateless apart from its configuration and safe for concurrent use.
type Calculator struct {
	Heuristics Heuristics
}

// NewCalculator returns a Calculator with the tuned default thresholds.
func NewCalculator() *Calculator {
	return &Calculator{Heuristics: DefaultHeuristics()}
}

// NewCalculatorWith returns a Calculator with explicit thresholds.
func NewCalculatorWith(h Heuristics) *Calculator {
	return &Calculator{Heuristics: h}
}

// ContentBounds returns the tight content box for markup, or nil when the
// input is not parseable as vector markup at all. Any parseable document
// gets a box: degraded inputs fall back to the raw union box or a fixed
// generic size, never an error.
func (c *Calculator) ContentBounds(markup string) *api.BoundingBox {
	doc, err := scan.Parse(markup)
	if err != nil {
		if err == scan.ErrTooLarge {
			// Short-circuit before any full parsing to bound latency.
			logger.Warnf("markup over size ceiling, returning fixed fallback bounds")
			box := c.fallbackBox()
			return &box
		}
		// The token walk found no svg root. Give a dedicated SVG parser a
		// second opinion before declaring the input structurally invalid.
		if _, perr := rsvg.ParseSvg(markup, "artwork", 1.0); perr != nil {
			return nil
		}
		logger.Warnf("markup readable by SVG parser only, returning fixed fallback bounds")
		box := c.fallbackBox()
		return &box
	}
	return c.ContentBoundsDocument(doc)
}

// ContentBoundsDocument computes content bounds for an already scanned
// document.
func (c *Calculator) ContentBoundsDocument(doc *scan.Document) *api.BoundingBox {
	shape := c.Classify(doc)
	logger.Debugf("content bounds: document classified as %s", shape)

	var box api.BoundingBox
	switch shape {
	case api.ShapeLargeVectorized:
		box = c.largeVectorizedBounds(doc)
	case api.ShapeTextHeavy:
		box = c.textHeavyBounds(doc)
	default:
		box = c.standardBounds(doc)
	}
	return &box
}

// Classify picks the heuristic branch for a document. Large-canvas
// vectorized documents are recognized first, then text-heavy ones.
func (c *Calculator) Classify(doc *scan.Document) api.DocumentShape {
	if c.isLargeVectorized(doc) {
		return api.ShapeLargeVectorized
	}
	if doc.HasGlyphContent() || doc.HasLiveText() {
		return api.ShapeTextHeavy
	}
	return api.ShapeStandard
}

func (c *Calculator) isLargeVectorized(doc *scan.Document) bool {
	if doc.CanvasWidth() <= c.Heuristics.LargeViewBoxSpan &&
		doc.CanvasHeight() <= c.Heuristics.LargeViewBoxSpan {
		return false
	}
	meta := strings.ToLower(doc.Metadata)
	for _, marker := range vectorizationMarkers {
		if strings.Contains(meta, marker) {
			return true
		}
	}
	filled := lo.CountBy(doc.Elements, func(el scan.Element) bool {
		return el.Tag == "path" && !color.IsBackground(el.Fill)
	})
	return filled >= c.Heuristics.LargeDocMinPaths
}

// standardBounds handles ordinary artwork with no live text: take the box
// around all colored geometry, and when it spans most of a large canvas,
// try density clustering and center focusing to shake off background
// contamination. The raw box is always the worst case returned.
func (c *Calculator) standardBounds(doc *scan.Document) api.BoundingBox {
	points := c.collectPoints(doc, collectOptions{})
	if len(points) == 0 {
		// Nothing colored at all: take any geometry before giving up.
		points = c.collectPoints(doc, collectOptions{includeBackgroundPaint: true})
	}
	raw, ok := api.BoundsOf(points, api.UnitPx)
	if !ok {
		logger.Warnf("content bounds: no usable geometry, returning fixed fallback")
		return c.fallbackBox()
	}

	if raw.Width < c.Heuristics.SmallBoxSpan && raw.Height < c.Heuristics.SmallBoxSpan {
		return raw
	}

	if box, ok := c.densityBounds(points, raw); ok {
		logger.Debugf("content bounds: density cluster accepted %s", box)
		return box
	}
	if box, ok := c.focusBounds(points, raw); ok {
		logger.Debugf("content bounds: center focus accepted %s", box)
		return box
	}
	logger.Debugf("content bounds: filters inconclusive, keeping raw box %s", raw)
	return raw
}

// textHeavyBounds handles documents with live text or glyph definitions.
// The defs subtree is excluded entirely: glyph outlines inflate the box
// without being visible content.
func (c *Calculator) textHeavyBounds(doc *scan.Document) api.BoundingBox {
	points := c.collectPoints(doc, collectOptions{excludeDefs: true})
	if len(points) == 0 {
		logger.Debugf("content bounds: no colored paths outside defs, using text fallback box")
		return c.fallbackBox()
	}

	canvasW, canvasH := doc.CanvasWidth(), doc.CanvasHeight()
	filtered := c.filterCanvasEdges(points, canvasW, canvasH, c.Heuristics.TextEdgeMarginFrac)

	// When filtering barely dented the set, background padding is likely
	// still present; tighten around the centroid if that does not throw
	// away almost everything.
	if float64(len(filtered)) >= c.Heuristics.MajoritySurvivorFrac*float64(len(points)) {
		if kept := c.centerDistanceFilter(filtered); len(kept) > 0 &&
			float64(len(filtered)-len(kept)) <= c.Heuristics.CenterDiscardMax*float64(len(filtered)) {
			filtered = kept
		}
	}
	if len(filtered) == 0 {
		filtered = points
	}
	box, _ := api.BoundsOf(filtered, api.UnitPx)
	return box
}

// largeVectorizedBounds handles AI-traced large-canvas documents: filled
// geometry first, stroke-only paths as a secondary pass, then a light
// trim of near-edge padding.
func (c *Calculator) largeVectorizedBounds(doc *scan.Document) api.BoundingBox {
	points := c.collectPoints(doc, collectOptions{requireFill: true})
	if len(points) == 0 {
		points = c.collectPoints(doc, collectOptions{strokeOnly: true})
	}
	raw, ok := api.BoundsOf(points, api.UnitPx)
	if !ok {
		logger.Warnf("content bounds: vectorized document with no usable geometry, using fallback")
		return c.fallbackBox()
	}

	filtered := c.filterBoxEdges(points, raw, c.Heuristics.EdgeMarginFrac)
	box := raw
	if float64(len(filtered)) > c.Heuristics.LargeRetainFrac*float64(len(points)) {
		if b, ok := api.BoundsOf(filtered, api.UnitPx); ok {
			box = b
		}
	}
	return c.enforceMinSize(box)
}

type collectOptions struct {
	excludeDefs            bool
	requireFill            bool
	strokeOnly             bool
	includeBackgroundPaint bool
}

// collectPoints flattens the document's geometry into coordinates,
// excluding background paint and full-canvas frames unless told otherwise.
func (c *Calculator) collectPoints(doc *scan.Document, opts collectOptions) []api.Point2D {
	canvasW, canvasH := doc.CanvasWidth(), doc.CanvasHeight()
	var out []api.Point2D
	for _, el := range doc.Elements {
		if opts.excludeDefs && el.InDefs {
			continue
		}
		if el.Tag == "text" || el.Tag == "tspan" || el.Tag == "use" || el.Tag == "tref" {
			continue
		}
		if !opts.includeBackgroundPaint {
			fillPainted := !color.IsBackground(el.Fill)
			strokePainted := !color.IsBackground(el.Stroke)
			switch {
			case opts.strokeOnly:
				if fillPainted || !strokePainted {
					continue
				}
			case opts.requireFill:
				if !fillPainted {
					continue
				}
			default:
				if !fillPainted && !strokePainted {
					continue
				}
			}
		}
		pts := elementPoints(el)
		if len(pts) == 0 {
			continue
		}
		if c.isFullCanvasShape(pts, canvasW, canvasH) {
			continue
		}
		out = append(out, pts...)
	}
	return out
}

// elementPoints extracts representative coordinates for one element.
func elementPoints(el scan.Element) []api.Point2D {
	switch el.Tag {
	case "path":
		return pathdata.ExtractCoordinates(el.PathData)
	case "rect":
		if el.W <= 0 || el.H <= 0 {
			return nil
		}
		return []api.Point2D{
			{X: el.X, Y: el.Y},
			{X: el.X + el.W, Y: el.Y},
			{X: el.X, Y: el.Y + el.H},
			{X: el.X + el.W, Y: el.Y + el.H},
		}
	case "circle", "ellipse":
		if el.RX <= 0 && el.RY <= 0 {
			return nil
		}
		return []api.Point2D{
			{X: el.CX - el.RX, Y: el.CY - el.RY},
			{X: el.CX + el.RX, Y: el.CY - el.RY},
			{X: el.CX - el.RX, Y: el.CY + el.RY},
			{X: el.CX + el.RX, Y: el.CY + el.RY},
		}
	case "line":
		return []api.Point2D{{X: el.X, Y: el.Y}, {X: el.W, Y: el.H}}
	case "polygon", "polyline":
		return parsePointsAttr(el.Points)
	}
	return nil
}

// parsePointsAttr reads a polygon/polyline points list.
func parsePointsAttr(s string) []api.Point2D {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	var pts []api.Point2D
	for i := 0; i+1 < len(fields); i += 2 {
		x, errX := strconv.ParseFloat(fields[i], 64)
		y, errY := strconv.ParseFloat(fields[i+1], 64)
		if errX != nil || errY != nil {
			continue
		}
		pts = append(pts, api.Point2D{X: x, Y: y})
	}
	return pts
}

// isFullCanvasShape recognizes literal page-frame rectangles: few corner
// points whose box covers essentially the whole canvas.
func (c *Calculator) isFullCanvasShape(pts []api.Point2D, canvasW, canvasH float64) bool {
	if canvasW <= 0 || canvasH <= 0 || len(pts) > 6 {
		return false
	}
	box, ok := api.BoundsOf(pts, api.UnitPx)
	if !ok {
		return false
	}
	return box.Width >= c.Heuristics.FullCanvasFrac*canvasW &&
		box.Height >= c.Heuristics.FullCanvasFrac*canvasH
}

// filterCanvasEdges drops points within marginFrac of any canvas edge.
func (c *Calculator) filterCanvasEdges(pts []api.Point2D, canvasW, canvasH, marginFrac float64) []api.Point2D {
	if canvasW <= 0 || canvasH <= 0 {
		return pts
	}
	mx, my := canvasW*marginFrac, canvasH*marginFrac
	return lo.Filter(pts, func(p api.Point2D, _ int) bool {
		return p.X > mx && p.X < canvasW-mx && p.Y > my && p.Y < canvasH-my
	})
}

// filterBoxEdges drops points within marginFrac of the raw bounding edges.
func (c *Calculator) filterBoxEdges(pts []api.Point2D, raw api.BoundingBox, marginFrac float64) []api.Point2D {
	mx, my := raw.Width*marginFrac, raw.Height*marginFrac
	return lo.Filter(pts, func(p api.Point2D, _ int) bool {
		return p.X > raw.MinX+mx && p.X < raw.MaxX-mx &&
			p.Y > raw.MinY+my && p.Y < raw.MaxY-my
	})
}

// centerDistanceFilter keeps points within CenterKeepFrac of the bounding
// span from the centroid.
func (c *Calculator) centerDistanceFilter(pts []api.Point2D) []api.Point2D {
	box, ok := api.BoundsOf(pts, api.UnitPx)
	if !ok {
		return nil
	}
	cx, cy := centroid(pts)
	dx := c.Heuristics.CenterKeepFrac * box.Width
	dy := c.Heuristics.CenterKeepFrac * box.Height
	return lo.Filter(pts, func(p api.Point2D, _ int) bool {
		return math.Abs(p.X-cx) <= dx && math.Abs(p.Y-cy) <= dy
	})
}

// densityBounds clusters coordinates on a fixed grid, then tries a tight
// radius around the densest region. The result is accepted only when it
// keeps enough points and meaningfully shrinks the box.
func (c *Calculator) densityBounds(pts []api.Point2D, raw api.BoundingBox) (api.BoundingBox, bool) {
	cell := c.Heuristics.DensityCellSize
	if cell <= 0 || len(pts) == 0 {
		return api.BoundingBox{}, false
	}

	type cellKey struct{ ix, iy int }
	counts := map[cellKey]int{}
	for _, p := range pts {
		counts[cellKey{int(math.Floor(p.X / cell)), int(math.Floor(p.Y / cell))}]++
	}
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	var densest []cellKey
	for k, n := range counts {
		if n == max {
			densest = append(densest, k)
		}
	}
	// Deterministic centroid regardless of map iteration order.
	sort.Slice(densest, func(a, b int) bool {
		if densest[a].ix != densest[b].ix {
			return densest[a].ix < densest[b].ix
		}
		return densest[a].iy < densest[b].iy
	})

	var cx, cy float64
	for _, k := range densest {
		cx += (float64(k.ix) + 0.5) * cell
		cy += (float64(k.iy) + 0.5) * cell
	}
	cx /= float64(len(densest))
	cy /= float64(len(densest))

	radius := math.Min(
		c.Heuristics.DensityRadiusFrac*math.Max(raw.Width, raw.Height),
		c.Heuristics.DensityRadiusCap,
	)
	kept := lo.Filter(pts, func(p api.Point2D, _ int) bool {
		return math.Hypot(p.X-cx, p.Y-cy) <= radius
	})
	if float64(len(kept)) < c.Heuristics.DensityMinRetainFrac*float64(len(pts)) {
		return api.BoundingBox{}, false
	}
	box, ok := api.BoundsOf(kept, api.UnitPx)
	if !ok {
		return api.BoundingBox{}, false
	}
	shrunkW := box.Width <= (1-c.Heuristics.DensityMinShrinkFrac)*raw.Width
	shrunkH := box.Height <= (1-c.Heuristics.DensityMinShrinkFrac)*raw.Height
	if !shrunkW && !shrunkH {
		return api.BoundingBox{}, false
	}
	return box, true
}

// focusBounds tries a ladder of center-focus ratios and picks the one
// with the best average reduction that still keeps a usable box.
func (c *Calculator) focusBounds(pts []api.Point2D, raw api.BoundingBox) (api.BoundingBox, bool) {
	cx, cy := centroid(pts)
	var best api.BoundingBox
	bestReduction := 0.0
	found := false

	for _, ratio := range c.Heuristics.FocusRatios {
		dx, dy := ratio*raw.Width, ratio*raw.Height
		kept := lo.Filter(pts, func(p api.Point2D, _ int) bool {
			return math.Abs(p.X-cx) <= dx && math.Abs(p.Y-cy) <= dy
		})
		if float64(len(kept)) < c.Heuristics.FocusMinRetainFrac*float64(len(pts)) {
			continue
		}
		box, ok := api.BoundsOf(kept, api.UnitPx)
		if !ok {
			continue
		}
		if box.Width < c.Heuristics.MinUsableWidth || box.Height < c.Heuristics.MinUsableHeight {
			continue
		}
		reduction := ((1 - box.Width/raw.Width) + (1 - box.Height/raw.Height)) / 2
		if reduction > bestReduction {
			best = box
			bestReduction = reduction
			found = true
		}
	}
	return best, found
}

// enforceMinSize expands a box around its center up to the configured
// absolute floor.
func (c *Calculator) enforceMinSize(box api.BoundingBox) api.BoundingBox {
	minSize := c.Heuristics.MinBoxSize
	if box.Width >= minSize && box.Height >= minSize {
		return box
	}
	center := box.Center()
	w := math.Max(box.Width, minSize)
	h := math.Max(box.Height, minSize)
	return api.NewBoundingBox(center.X-w/2, center.Y-h/2, center.X+w/2, center.Y+h/2, box.Units)
}

func (c *Calculator) fallbackBox() api.BoundingBox {
	return api.NewBoundingBox(0, 0, c.Heuristics.TextFallbackWidth, c.Heuristics.TextFallbackHeight, api.UnitPx)
}

func centroid(pts []api.Point2D) (float64, float64) {
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return sx / n, sy / n
}
