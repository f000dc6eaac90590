package color

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/inkprep/artcore/api"
)

// GarmentColor is one stock garment shade with its authoritative ink
// values. CMYK here comes from supplier charts, not from conversion.
type GarmentColor struct {
	Name         string   `json:"name" yaml:"name"`
	Hex          string   `json:"hex" yaml:"hex"`
	CMYK         api.CMYK `json:"cmyk" yaml:"cmyk"`
	Manufacturer string   `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	Specialty    string   `json:"specialty,omitempty" yaml:"specialty,omitempty"`
}

var gildanColors = []GarmentColor{
	{Name: "Black", Hex: "#000000", CMYK: api.CMYK{K: 100}},
	{Name: "White", Hex: "#FFFFFF", CMYK: api.CMYK{}},
	{Name: "Ash", Hex: "#B8B8B8", CMYK: api.CMYK{K: 28}},
	{Name: "Sport Grey", Hex: "#8C8C8C", CMYK: api.CMYK{K: 45}},
	{Name: "Dark Heather", Hex: "#616161", CMYK: api.CMYK{K: 62}},
	{Name: "Red", Hex: "#FF0000", CMYK: api.CMYK{M: 100, Y: 100}},
	{Name: "Cardinal Red", Hex: "#B71234", CMYK: api.CMYK{M: 90, Y: 71, K: 28}},
	{Name: "Cherry Red", Hex: "#C5282F", CMYK: api.CMYK{M: 84, Y: 76, K: 23}},
	{Name: "Orange", Hex: "#FF8C00", CMYK: api.CMYK{M: 45, Y: 100}},
	{Name: "Gold", Hex: "#FFD700", CMYK: api.CMYK{M: 16, Y: 100}},
	{Name: "Yellow Haze", Hex: "#FFFF99", CMYK: api.CMYK{Y: 40}},
	{Name: "Daisy", Hex: "#FFFF00", CMYK: api.CMYK{Y: 100}},
	{Name: "Royal Blue", Hex: "#0047AB", CMYK: api.CMYK{C: 100, M: 58, K: 33}},
	{Name: "Navy", Hex: "#000080", CMYK: api.CMYK{C: 100, M: 100, K: 50}},
	{Name: "Irish Green", Hex: "#00FF00", CMYK: api.CMYK{C: 100, Y: 100}},
	{Name: "Forest Green", Hex: "#228B22", CMYK: api.CMYK{C: 76, Y: 76, K: 45}},
	{Name: "Purple", Hex: "#800080", CMYK: api.CMYK{M: 100, K: 50}},
	{Name: "Heliconia", Hex: "#FF1493", CMYK: api.CMYK{M: 92, Y: 42}},
	{Name: "Safety Pink", Hex: "#FF69B4", CMYK: api.CMYK{M: 59, Y: 29}},
	{Name: "Safety Orange", Hex: "#FF4500", CMYK: api.CMYK{M: 73, Y: 100}},
	{Name: "Safety Green", Hex: "#32CD32", CMYK: api.CMYK{C: 75, Y: 75, K: 20}},
	{Name: "Maroon", Hex: "#800000", CMYK: api.CMYK{M: 100, Y: 100, K: 50}},
	{Name: "Brown", Hex: "#A52A2A", CMYK: api.CMYK{M: 74, Y: 74, K: 35}},
	{Name: "Tan", Hex: "#D2B48C", CMYK: api.CMYK{M: 14, Y: 33, K: 18}},
	{Name: "Light Blue", Hex: "#ADD8E6", CMYK: api.CMYK{C: 24, M: 6, K: 10}},
	{Name: "Light Pink", Hex: "#FFB6C1", CMYK: api.CMYK{M: 29, Y: 24}},
	{Name: "Natural", Hex: "#F5F5DC", CMYK: api.CMYK{Y: 10, K: 4}},
}

var fruitOfTheLoomColors = []GarmentColor{
	{Name: "Black", Hex: "#000000", CMYK: api.CMYK{K: 100}},
	{Name: "White", Hex: "#FFFFFF", CMYK: api.CMYK{}},
	{Name: "Heather Grey", Hex: "#D3D3D3", CMYK: api.CMYK{K: 17}},
	{Name: "Red", Hex: "#FF0000", CMYK: api.CMYK{M: 100, Y: 100}},
	{Name: "Navy", Hex: "#000080", CMYK: api.CMYK{C: 100, M: 100, K: 50}},
	{Name: "Royal Blue", Hex: "#4169E1", CMYK: api.CMYK{C: 74, M: 58, K: 12}},
	{Name: "Kelly Green", Hex: "#4CBB17", CMYK: api.CMYK{C: 70, Y: 87, K: 27}},
	{Name: "Purple", Hex: "#800080", CMYK: api.CMYK{M: 100, K: 50}},
	{Name: "Orange", Hex: "#FFA500", CMYK: api.CMYK{M: 35, Y: 100}},
	{Name: "Yellow", Hex: "#FFFF00", CMYK: api.CMYK{Y: 100}},
	{Name: "Sky Blue", Hex: "#87CEEB", CMYK: api.CMYK{C: 43, M: 16, K: 8}},
	{Name: "Pink", Hex: "#FFC0CB", CMYK: api.CMYK{M: 25, Y: 20}},
	{Name: "Lime Green", Hex: "#32CD32", CMYK: api.CMYK{C: 75, Y: 75, K: 20}},
	{Name: "Burgundy", Hex: "#800020", CMYK: api.CMYK{M: 100, Y: 75, K: 50}},
	{Name: "Forest Green", Hex: "#228B22", CMYK: api.CMYK{C: 76, Y: 76, K: 45}},
}

var specializedColors = map[string][]GarmentColor{
	"hi_viz": {
		{Name: "Hi-Viz Orange", Hex: "#FF6600", CMYK: api.CMYK{M: 60, Y: 100}},
		{Name: "Hi-Viz Yellow", Hex: "#FFFF00", CMYK: api.CMYK{Y: 100}},
		{Name: "Hi-Viz Green", Hex: "#00FF00", CMYK: api.CMYK{C: 100, Y: 100}},
		{Name: "Hi-Viz Pink", Hex: "#FF1493", CMYK: api.CMYK{M: 92, Y: 42}},
	},
	"pastels": {
		{Name: "Pastel Blue", Hex: "#B8E6FF", CMYK: api.CMYK{C: 28, M: 10}},
		{Name: "Pastel Pink", Hex: "#FFD1DC", CMYK: api.CMYK{M: 18, Y: 14}},
		{Name: "Pastel Yellow", Hex: "#FFFF99", CMYK: api.CMYK{Y: 40}},
		{Name: "Pastel Green", Hex: "#90EE90", CMYK: api.CMYK{C: 43, Y: 43, K: 7}},
		{Name: "Pastel Purple", Hex: "#DDA0DD", CMYK: api.CMYK{C: 13, M: 28, K: 13}},
	},
	"specialty_inks": {
		{Name: "Metallic Gold", Hex: "#FFD700", CMYK: api.CMYK{M: 16, Y: 100}, Specialty: "metallic"},
		{Name: "Metallic Silver", Hex: "#C0C0C0", CMYK: api.CMYK{K: 25}, Specialty: "metallic"},
		{Name: "Glow in Dark", Hex: "#F0F8FF", CMYK: api.CMYK{C: 6, M: 3}, Specialty: "glow"},
		{Name: "Reflective", Hex: "#E5E5E5", CMYK: api.CMYK{K: 10}, Specialty: "reflective"},
	},
}

// AllGarmentColors returns every known garment shade across manufacturers
// and specialty categories, in catalog order.
func AllGarmentColors() []GarmentColor {
	var all []GarmentColor
	for _, c := range gildanColors {
		c.Manufacturer = "Gildan"
		all = append(all, c)
	}
	for _, c := range fruitOfTheLoomColors {
		c.Manufacturer = "Fruit of the Loom"
		all = append(all, c)
	}
	for _, category := range []string{"hi_viz", "pastels", "specialty_inks"} {
		for _, c := range specializedColors[category] {
			c.Category = category
			all = append(all, c)
		}
	}
	return all
}

// GarmentColorsByManufacturer returns the shades of one manufacturer.
func GarmentColorsByManufacturer(name string) []GarmentColor {
	return lo.Filter(AllGarmentColors(), func(c GarmentColor, _ int) bool {
		return strings.EqualFold(c.Manufacturer, name)
	})
}

// FindGarmentColor looks up a shade by exact hex value.
func FindGarmentColor(hex string) (GarmentColor, bool) {
	hex = normalizeHex(hex)
	return lo.Find(AllGarmentColors(), func(c GarmentColor) bool {
		return normalizeHex(c.Hex) == hex
	})
}

// ClosestGarmentColor finds the nearest shade by Euclidean RGB distance,
// or false when the input hex cannot be parsed.
func ClosestGarmentColor(hex string) (GarmentColor, bool) {
	parsed := ParseLiteral(hex)
	if !parsed.Valid {
		return GarmentColor{}, false
	}
	best := GarmentColor{}
	bestDist := math.Inf(1)
	for _, c := range AllGarmentColors() {
		ref := ParseLiteral(c.Hex)
		if !ref.Valid {
			continue
		}
		if d := rgbDistance(parsed.RGB, ref.RGB); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// CMYKLabel formats a garment shade's ink values for proof labels.
func (c GarmentColor) CMYKLabel() string {
	return fmt.Sprintf("C:%g M:%g Y:%g K:%g", c.CMYK.C, c.CMYK.M, c.CMYK.Y, c.CMYK.K)
}

func normalizeHex(hex string) string {
	hex = strings.ToLower(strings.TrimSpace(hex))
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return hex
}
