// Package color converts RGB device colors to print-oriented CMYK, finds
// nearest spot-color matches, and catalogs every distinct paint used in a
// vector document.
package color

import (
	"math"

	"github.com/inkprep/artcore/api"
)

// UCR/GCR tuning. These reproduce the separation behavior expected by the
// print-preview side and are deliberately not a colorimetric ICC transform.
const (
	ucrBrightCutoff  = 0.5 // mean brightness above which gray removal is aggressive
	ucrBrightAmount  = 0.9
	ucrDarkAmount    = 0.3
	blackReduceAbove = 0.6 // mean brightness above which K is additionally reduced
	blackScale       = 0.2
	recoveryFactor   = 0.7 // fraction of removed K redistributed into C/M/Y
)

// RGBToCMYK converts an 8-bit RGB color to ink percentages using the
// subtractive model followed by a two-stage under-color-removal and black
// reduction pass that approximates commercial separation output.
func RGBToCMYK(r, g, b uint8) api.CMYK {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	k := 1 - math.Max(rf, math.Max(gf, bf))
	if k >= 1 {
		return api.CMYK{C: 0, M: 0, Y: 0, K: 100}
	}

	c := (1 - rf - k) / (1 - k)
	m := (1 - gf - k) / (1 - k)
	y := (1 - bf - k) / (1 - k)

	brightness := (rf + gf + bf) / 3

	// Stage one: shift a brightness-dependent share of the common gray
	// component from C/M/Y into K.
	ucr := ucrDarkAmount
	if brightness > ucrBrightCutoff {
		ucr = ucrBrightAmount
	}
	gray := math.Min(c, math.Min(m, y))
	removed := gray * ucr
	c -= removed
	m -= removed
	y -= removed
	k += removed

	// Stage two: bright colors print cleaner with less black, so most of K
	// goes back into the chromatic channels at a recovery discount.
	if brightness > blackReduceAbove {
		reduction := k * (1 - blackScale)
		k *= blackScale
		c += reduction * recoveryFactor
		m += reduction * recoveryFactor
		y += reduction * recoveryFactor
	}

	return api.CMYK{
		C: roundPercent(c),
		M: roundPercent(m),
		Y: roundPercent(y),
		K: roundPercent(k),
	}
}

func roundPercent(v float64) float64 {
	v = math.Round(v * 100)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
