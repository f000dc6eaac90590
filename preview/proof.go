// Package preview renders an annotated proof of an analyzed document: the
// canvas frame, the computed content bounds as an overlay rectangle, and
// dimension lines labeled in millimeters. The output is a plain diagnostic
// SVG for eyeballing what the analyzer decided.
package preview

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/inkprep/artcore/api"
	"github.com/inkprep/artcore/dimension"
)

// Proof describes one bounds-overlay rendering.
type Proof struct {
	CanvasWidth  float64
	CanvasHeight float64
	Bounds       api.BoundingBox
	// ShowDimensions adds measure lines with physical sizes.
	ShowDimensions bool
	// Unit labels the measure lines, "mm" when empty.
	Unit string
	// Padding reserves room around the frame for labels.
	Padding float64
}

// NewProof builds a proof for a canvas and its computed content bounds.
func NewProof(canvasW, canvasH float64, bounds api.BoundingBox) Proof {
	return Proof{
		CanvasWidth:    canvasW,
		CanvasHeight:   canvasH,
		Bounds:         bounds,
		ShowDimensions: true,
		Padding:        50,
	}
}

// GenerateSVG renders the proof document.
func (p Proof) GenerateSVG() ([]byte, error) {
	if p.CanvasWidth <= 0 || p.CanvasHeight <= 0 {
		return nil, fmt.Errorf("invalid canvas size %gx%g", p.CanvasWidth, p.CanvasHeight)
	}

	pad := p.Padding
	if pad <= 0 {
		pad = 50
	}
	unit := p.Unit
	if unit == "" {
		unit = "mm"
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	svgW := int(p.CanvasWidth + 2*pad)
	svgH := int(p.CanvasHeight + 2*pad)
	frameX := int(pad)
	frameY := int(pad)

	canvas.Start(svgW, svgH)

	// Document frame.
	canvas.Rect(frameX, frameY, int(p.CanvasWidth), int(p.CanvasHeight),
		"fill:#fafafa;stroke:#999;stroke-width:1")

	// Content bounds overlay.
	bx := frameX + int(p.Bounds.MinX)
	by := frameY + int(p.Bounds.MinY)
	bw := int(p.Bounds.Width)
	bh := int(p.Bounds.Height)
	canvas.Rect(bx, by, bw, bh,
		"fill:rgba(30,144,255,0.08);stroke:#1e90ff;stroke-width:1;stroke-dasharray:5,5")

	// Corner markers on the bounds box.
	for _, c := range [][2]int{{bx, by}, {bx + bw, by}, {bx, by + bh}, {bx + bw, by + bh}} {
		canvas.Circle(c[0], c[1], 3, "fill:#1e90ff")
	}

	if p.ShowDimensions {
		p.drawWidthMeasure(canvas, bx, by+bh, bw, unit)
		p.drawHeightMeasure(canvas, bx, by, bh, unit)
	}

	canvas.End()
	return buf.Bytes(), nil
}

func (p Proof) drawWidthMeasure(canvas *svg.SVG, x, y, w int, unit string) {
	line := y + 20
	canvas.Line(x, line, x+w, line, "stroke:#333;stroke-width:0.5")
	canvas.Line(x, line-3, x, line+3, "stroke:#333;stroke-width:0.5")
	canvas.Line(x+w, line-3, x+w, line+3, "stroke:#333;stroke-width:0.5")
	canvas.Text(x+w/2, line+14, p.measureLabel(p.Bounds.Width, unit),
		"text-anchor:middle;font-size:12px;fill:#333")
}

func (p Proof) drawHeightMeasure(canvas *svg.SVG, x, y, h int, unit string) {
	line := x - 20
	canvas.Line(line, y, line, y+h, "stroke:#333;stroke-width:0.5")
	canvas.Line(line-3, y, line+3, y, "stroke:#333;stroke-width:0.5")
	canvas.Line(line-3, y+h, line+3, y+h, "stroke:#333;stroke-width:0.5")

	tx, ty := line-10, y+h/2
	canvas.Gtransform(fmt.Sprintf("rotate(-90 %d %d)", tx, ty))
	canvas.Text(tx, ty, p.measureLabel(p.Bounds.Height, unit),
		"text-anchor:middle;font-size:12px;fill:#333")
	canvas.Gend()
}

// measureLabel formats a pixel span in the requested unit.
func (p Proof) measureLabel(px float64, unit string) string {
	switch unit {
	case "px":
		return fmt.Sprintf("%.0fpx", px)
	case "pt":
		return fmt.Sprintf("%.1fpt", dimension.MmToPt(dimension.PxToMm(px)))
	default:
		return fmt.Sprintf("%.1fmm", dimension.PxToMm(px))
	}
}
