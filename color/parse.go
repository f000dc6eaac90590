package color

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/inkprep/artcore/api"
)

// ParsedColor is the normalized form of one color literal. Valid is false
// when the literal was not recognized; callers then keep the original
// representation and leave CMYK unset.
type ParsedColor struct {
	RGB       api.RGB
	CMYK      *api.CMYK // set only when the literal carried ink values itself
	Canonical string    // lowercase hex display form
	Valid     bool
}

// Common keyword colors seen in uploaded artwork. Full CSS color keywords
// are overkill here; unknown names simply stay unparsed.
var namedColors = map[string]api.RGB{
	"black":   {R: 0, G: 0, B: 0},
	"white":   {R: 255, G: 255, B: 255},
	"red":     {R: 255, G: 0, B: 0},
	"green":   {R: 0, G: 128, B: 0},
	"lime":    {R: 0, G: 255, B: 0},
	"blue":    {R: 0, G: 0, B: 255},
	"yellow":  {R: 255, G: 255, B: 0},
	"cyan":    {R: 0, G: 255, B: 255},
	"aqua":    {R: 0, G: 255, B: 255},
	"magenta": {R: 255, G: 0, B: 255},
	"fuchsia": {R: 255, G: 0, B: 255},
	"gray":    {R: 128, G: 128, B: 128},
	"grey":    {R: 128, G: 128, B: 128},
	"silver":  {R: 192, G: 192, B: 192},
	"maroon":  {R: 128, G: 0, B: 0},
	"navy":    {R: 0, G: 0, B: 128},
	"purple":  {R: 128, G: 0, B: 128},
	"orange":  {R: 255, G: 165, B: 0},
	"teal":    {R: 0, G: 128, B: 128},
	"olive":   {R: 128, G: 128, B: 0},
}

// IsBackground reports whether a paint value means "nothing is painted".
// Pure white is NOT background: white ink is meaningful on colored
// garments and must survive as content.
func IsBackground(literal string) bool {
	switch strings.ToLower(strings.TrimSpace(literal)) {
	case "", "none", "transparent":
		return true
	}
	return false
}

// ParseLiteral normalizes a color literal in any of the supported syntaxes:
// hex (#rgb, #rrggbb), rgb()/rgba() with integer or percentage channels,
// device-cmyk(), or a small keyword set.
func ParseLiteral(literal string) ParsedColor {
	s := strings.TrimSpace(literal)
	if s == "" {
		return ParsedColor{}
	}
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "#"):
		return parseHex(lower)
	case strings.HasPrefix(lower, "device-cmyk("):
		return parseDeviceCMYK(lower)
	case strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba("):
		return parseRGBFunc(lower)
	}
	if rgb, ok := namedColors[lower]; ok {
		return ParsedColor{RGB: rgb, Canonical: rgb.Hex(), Valid: true}
	}
	return ParsedColor{}
}

func parseHex(s string) ParsedColor {
	c, err := colorful.Hex(s)
	if err != nil {
		return ParsedColor{}
	}
	r, g, b := c.RGB255()
	rgb := api.RGB{R: r, G: g, B: b}
	return ParsedColor{RGB: rgb, Canonical: rgb.Hex(), Valid: true}
}

func parseRGBFunc(s string) ParsedColor {
	inner, ok := insideParens(s)
	if !ok {
		return ParsedColor{}
	}
	fields := splitArgs(inner)
	if len(fields) < 3 {
		return ParsedColor{}
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := parseChannel(fields[i])
		if !ok {
			return ParsedColor{}
		}
		channels[i] = v
	}
	rgb := api.RGB{R: channels[0], G: channels[1], B: channels[2]}
	return ParsedColor{RGB: rgb, Canonical: rgb.Hex(), Valid: true}
}

// parseChannel reads one rgb() channel, either 0..255 or a percentage.
func parseChannel(s string) (uint8, bool) {
	s = strings.TrimSpace(s)
	pct := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if pct {
		v = v * 255 / 100
	}
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5), true
}

func parseDeviceCMYK(s string) ParsedColor {
	inner, ok := insideParens(s)
	if !ok {
		return ParsedColor{}
	}
	fields := splitArgs(inner)
	if len(fields) < 4 {
		return ParsedColor{}
	}
	var inks [4]float64
	for i := 0; i < 4; i++ {
		f := strings.TrimSpace(fields[i])
		pct := strings.HasSuffix(f, "%")
		f = strings.TrimSuffix(f, "%")
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ParsedColor{}
		}
		if pct {
			v /= 100
		}
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		inks[i] = v
	}
	cmyk := api.CMYK{C: inks[0] * 100, M: inks[1] * 100, Y: inks[2] * 100, K: inks[3] * 100}
	rgb := cmykToRGB(inks[0], inks[1], inks[2], inks[3])
	return ParsedColor{RGB: rgb, CMYK: &cmyk, Canonical: rgb.Hex(), Valid: true}
}

// cmykToRGB is the plain subtractive approximation used only to derive a
// display form for device-cmyk literals; the authoritative ink values are
// kept alongside.
func cmykToRGB(c, m, y, k float64) api.RGB {
	return api.RGB{
		R: uint8(255*(1-c)*(1-k) + 0.5),
		G: uint8(255*(1-m)*(1-k) + 0.5),
		B: uint8(255*(1-y)*(1-k) + 0.5),
	}
}

func insideParens(s string) (string, bool) {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close <= open {
		return "", false
	}
	return s[open+1 : close], true
}

// splitArgs splits function arguments on commas or whitespace.
func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
