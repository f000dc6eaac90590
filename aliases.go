package artcore

import (
	"github.com/inkprep/artcore/api"
	"github.com/inkprep/artcore/bounds"
	"github.com/inkprep/artcore/color"
	"github.com/inkprep/artcore/dimension"
	"github.com/inkprep/artcore/pathdata"
	"github.com/inkprep/artcore/scan"
)

// Type aliases so callers can stay on the root package for common work.
type (
	Point2D             = api.Point2D
	BoundingBox         = api.BoundingBox
	RGB                 = api.RGB
	CMYK                = api.CMYK
	ColorEntry          = api.ColorEntry
	FontUsage           = api.FontUsage
	DimensionResult     = api.DimensionResult
	CorrectedDimensions = api.CorrectedDimensions
	DisplayUpdate       = api.DisplayUpdate
	DocumentShape       = api.DocumentShape
	Catalog             = color.Catalog
	PantoneMatch        = color.PantoneMatch
	Heuristics          = bounds.Heuristics
)

const (
	ShapeStandard        = api.ShapeStandard
	ShapeTextHeavy       = api.ShapeTextHeavy
	ShapeLargeVectorized = api.ShapeLargeVectorized
)

// Function aliases for the individual pipeline stages.
var (
	ExtractCoordinates = pathdata.ExtractCoordinates
	RGBToCMYK          = color.RGBToCMYK
	NearestPantone     = color.NearestPantone
	CatalogColors      = color.CatalogColors
	ParseDocument      = scan.Parse
	PxToMm             = dimension.PxToMm
	MmToPx             = dimension.MmToPx
	MmToPt             = dimension.MmToPt
	PtToMm             = dimension.PtToMm
)

// ContentBounds computes the tight content box with default heuristics.
func ContentBounds(markup string) *api.BoundingBox {
	return bounds.NewCalculator().ContentBounds(markup)
}

// CorrectForExport reconciles a tight-content viewBox against the
// oversized threshold with default configuration.
func CorrectForExport(widthPx, heightPx float64) api.CorrectedDimensions {
	return dimension.NewNormalizer().CorrectForExport(widthPx, heightPx)
}
