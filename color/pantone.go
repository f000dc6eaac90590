package color

import (
	"math"

	"github.com/inkprep/artcore/api"
)

// PantoneSwatch is one named spot color with its sRGB approximation.
type PantoneSwatch struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

// PantoneMatch is the result of a nearest-swatch lookup. Distance is the
// Euclidean RGB distance in 8-bit channel units; 0 means an exact hit.
type PantoneMatch struct {
	Name     string  `json:"name" yaml:"name"`
	Hex      string  `json:"hex" yaml:"hex"`
	Distance float64 `json:"distance" yaml:"distance"`
}

// pantonePalette approximates the coated solid swatches most often seen in
// uploaded logo artwork. Order matters: the first minimal distance wins.
var pantonePalette = []PantoneSwatch{
	{Name: "PANTONE Yellow C", Hex: "#FEDD00"},
	{Name: "PANTONE Yellow 012 C", Hex: "#FFD700"},
	{Name: "PANTONE Orange 021 C", Hex: "#FE5000"},
	{Name: "PANTONE Warm Red C", Hex: "#F9423A"},
	{Name: "PANTONE Red 032 C", Hex: "#ED2939"},
	{Name: "PANTONE Rubine Red C", Hex: "#CE0058"},
	{Name: "PANTONE Rhodamine Red C", Hex: "#E10098"},
	{Name: "PANTONE Purple C", Hex: "#BB29BB"},
	{Name: "PANTONE Violet C", Hex: "#440099"},
	{Name: "PANTONE Blue 072 C", Hex: "#10069F"},
	{Name: "PANTONE Reflex Blue C", Hex: "#001489"},
	{Name: "PANTONE Process Blue C", Hex: "#0085CA"},
	{Name: "PANTONE Green C", Hex: "#00AB84"},
	{Name: "PANTONE Black C", Hex: "#2D2926"},
	{Name: "PANTONE 109 C", Hex: "#FFD100"},
	{Name: "PANTONE 123 C", Hex: "#FFC72C"},
	{Name: "PANTONE 151 C", Hex: "#FF8200"},
	{Name: "PANTONE 165 C", Hex: "#FF671F"},
	{Name: "PANTONE 1655 C", Hex: "#FC4C02"},
	{Name: "PANTONE 185 C", Hex: "#E4002B"},
	{Name: "PANTONE 186 C", Hex: "#C8102E"},
	{Name: "PANTONE 187 C", Hex: "#A6192E"},
	{Name: "PANTONE 199 C", Hex: "#D50032"},
	{Name: "PANTONE 200 C", Hex: "#BA0C2F"},
	{Name: "PANTONE 286 C", Hex: "#0032A0"},
	{Name: "PANTONE 287 C", Hex: "#003087"},
	{Name: "PANTONE 288 C", Hex: "#002D72"},
	{Name: "PANTONE 300 C", Hex: "#005EB8"},
	{Name: "PANTONE 2925 C", Hex: "#009CDE"},
	{Name: "PANTONE 3005 C", Hex: "#0077C8"},
	{Name: "PANTONE 320 C", Hex: "#009CA6"},
	{Name: "PANTONE 326 C", Hex: "#00B2A9"},
	{Name: "PANTONE 347 C", Hex: "#009A44"},
	{Name: "PANTONE 354 C", Hex: "#00B140"},
	{Name: "PANTONE 355 C", Hex: "#009639"},
	{Name: "PANTONE 375 C", Hex: "#97D700"},
	{Name: "PANTONE 376 C", Hex: "#84BD00"},
	{Name: "PANTONE 485 C", Hex: "#DA291C"},
	{Name: "PANTONE 7406 C", Hex: "#F1B434"},
	{Name: "PANTONE 7462 C", Hex: "#00558C"},
	{Name: "PANTONE Cool Gray 7 C", Hex: "#97999B"},
	{Name: "PANTONE Cool Gray 11 C", Hex: "#53565A"},
	{Name: "PANTONE 871 C", Hex: "#84754E"},
	{Name: "PANTONE 877 C", Hex: "#8A8D8F"},
}

// Palette returns the spot-color table in lookup order.
func Palette() []PantoneSwatch {
	out := make([]PantoneSwatch, len(pantonePalette))
	copy(out, pantonePalette)
	return out
}

// NearestPantone finds the closest named spot color for a color literal by
// Euclidean RGB distance. Ties break in table order. It returns nil only
// when the literal cannot be parsed.
func NearestPantone(literal string) *PantoneMatch {
	parsed := ParseLiteral(literal)
	if !parsed.Valid {
		return nil
	}
	return nearestPantoneRGB(parsed.RGB)
}

func nearestPantoneRGB(rgb api.RGB) *PantoneMatch {
	best := PantoneMatch{Distance: math.Inf(1)}
	for _, swatch := range pantonePalette {
		ref := ParseLiteral(swatch.Hex)
		d := rgbDistance(rgb, ref.RGB)
		if d < best.Distance {
			best = PantoneMatch{Name: swatch.Name, Hex: swatch.Hex, Distance: d}
		}
	}
	return &best
}

// rgbDistance is the straight Euclidean distance in 8-bit channel space.
func rgbDistance(a, b api.RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
