// Package workflow decides how an uploaded artwork file's colors are
// handled for print: vector files keep authoritative CMYK values when they
// carry them, everything else is converted.
package workflow

import (
	"strings"

	"github.com/samber/lo"
)

// FileType classifies an upload by format family.
type FileType string

const (
	VectorSVG    FileType = "vector-svg"
	VectorPDF    FileType = "vector-pdf"
	VectorAI     FileType = "vector-ai"
	VectorEPS    FileType = "vector-eps"
	RasterPNG    FileType = "raster-png"
	RasterJPEG   FileType = "raster-jpeg"
	MixedContent FileType = "mixed-content"
	UnknownFile  FileType = "unknown"
)

// ColorSpace labels the dominant color model of an artwork's color data.
type ColorSpace string

const (
	SpaceRGB     ColorSpace = "rgb"
	SpaceCMYK    ColorSpace = "cmyk"
	SpaceSpot    ColorSpace = "spot"
	SpaceUnknown ColorSpace = "unknown"
)

var mimeTypes = map[string]FileType{
	"image/svg+xml":   VectorSVG,
	"application/pdf": VectorPDF,
	"image/png":       RasterPNG,
	"image/jpeg":      RasterJPEG,
	"image/jpg":       RasterJPEG,
}

var extensions = map[string]FileType{
	"svg":  VectorSVG,
	"pdf":  VectorPDF,
	"ai":   VectorAI,
	"eps":  VectorEPS,
	"png":  RasterPNG,
	"jpg":  RasterJPEG,
	"jpeg": RasterJPEG,
}

// FileTypeOf determines the file type from a mime type, falling back to the
// filename extension. Postscript mime types are ambiguous between AI and
// EPS and are resolved by extension.
func FileTypeOf(mimeType, filename string) FileType {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i+1:])
	}

	switch mimeType {
	case "application/postscript", "application/illustrator", "application/x-illustrator":
		if ext == "ai" {
			return VectorAI
		}
		return VectorEPS
	}
	if ft, ok := mimeTypes[mimeType]; ok {
		return ft
	}
	if ft, ok := extensions[ext]; ok {
		return ft
	}
	return UnknownFile
}

// IsVector reports whether the file type is a vector format.
func (ft FileType) IsVector() bool {
	return lo.Contains([]FileType{VectorSVG, VectorPDF, VectorAI, VectorEPS}, ft)
}

// IsRaster reports whether the file type is a raster format.
func (ft FileType) IsRaster() bool {
	return ft == RasterPNG || ft == RasterJPEG
}

// DetectColorSpace inspects free-form color data (literals, metadata,
// catalog labels) for color-model keywords. CMYK indicators win over RGB,
// which win over spot-color names.
func DetectColorSpace(colorData string) ColorSpace {
	if strings.TrimSpace(colorData) == "" {
		return SpaceUnknown
	}
	data := strings.ToLower(colorData)

	for _, kw := range []string{"cmyk", "cyan", "magenta", "yellow", "black"} {
		if strings.Contains(data, kw) {
			return SpaceCMYK
		}
	}
	for _, kw := range []string{"rgb", "#", "red", "green", "blue"} {
		if strings.Contains(data, kw) {
			return SpaceRGB
		}
	}
	for _, kw := range []string{"pantone", "spot", "pms"} {
		if strings.Contains(data, kw) {
			return SpaceSpot
		}
	}
	return SpaceUnknown
}

// Options is the recommended color handling for one upload.
type Options struct {
	// PreserveCMYK keeps authoritative device-cmyk values verbatim instead
	// of round-tripping them through RGB.
	PreserveCMYK bool `json:"preserve_cmyk" yaml:"preserve_cmyk"`
	// ConvertToCMYK runs the RGB separation for print output.
	ConvertToCMYK bool `json:"convert_to_cmyk" yaml:"convert_to_cmyk"`
	// AllowRasterConversion permits rasterizing the artwork downstream.
	// Never set for vector files.
	AllowRasterConversion bool `json:"allow_raster_conversion" yaml:"allow_raster_conversion"`
}

// ShouldPreserveCMYK reports whether a file's CMYK values are kept as-is:
// only vector files that actually carry CMYK colors qualify.
func ShouldPreserveCMYK(ft FileType, hasCMYKColors bool) bool {
	return ft.IsVector() && hasCMYKColors
}

// OptionsFor returns the recommended workflow for a file type.
func OptionsFor(ft FileType, hasCMYKColors bool) Options {
	if ft.IsVector() {
		return Options{
			PreserveCMYK:          ShouldPreserveCMYK(ft, hasCMYKColors),
			ConvertToCMYK:         !hasCMYKColors,
			AllowRasterConversion: false,
		}
	}
	return Options{
		PreserveCMYK:          false,
		ConvertToCMYK:         true,
		AllowRasterConversion: true,
	}
}

// Validate checks a workflow configuration against the file it is applied
// to and returns human-readable issues, empty when consistent.
func Validate(ft FileType, hasCMYKColors bool, opts Options) []string {
	var issues []string
	if ft.IsVector() && opts.AllowRasterConversion {
		issues = append(issues, "vector file should not be rasterized")
	}
	if opts.PreserveCMYK && !hasCMYKColors {
		issues = append(issues, "cannot preserve CMYK on a file without CMYK colors")
	}
	if opts.PreserveCMYK && opts.ConvertToCMYK {
		issues = append(issues, "cannot both preserve and convert CMYK")
	}
	return issues
}
