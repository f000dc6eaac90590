package color

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkprep/artcore/api"
)

func TestCatalogColors_Basic(t *testing.T) {
	cat, err := CatalogColors(`<svg viewBox="0 0 100 100">
    <rect width="10" height="10" fill="#ff0000"/>
    <rect width="10" height="10" fill="#ff0000"/>
    <circle cx="5" cy="5" r="2" fill="rgb(0, 0, 255)" stroke="#00ff00"/>
</svg>`)
	require.NoError(t, err)

	require.Len(t, cat.Colors, 3)

	red := cat.Colors[0]
	assert.Equal(t, "#ff0000", red.Canonical)
	assert.Equal(t, "#ff0000", red.Original)
	assert.Equal(t, 2, red.Occurrences)
	assert.Equal(t, api.AttributeFill, red.Attribute)
	require.NotNil(t, red.CMYK)
	assert.Equal(t, api.CMYK{M: 100, Y: 100}, *red.CMYK)

	blue := cat.Colors[1]
	assert.Equal(t, "#0000ff", blue.Canonical)
	assert.Equal(t, "rgb(0, 0, 255)", blue.Original)

	green := cat.Colors[2]
	assert.Equal(t, api.AttributeStroke, green.Attribute)
}

func TestCatalogColors_OriginalLiteralPreserved(t *testing.T) {
	markup := `<svg viewBox="0 0 10 10"><path d="M0 0" style="fill: rgb(100%, 0%, 0%)"/></svg>`

	cat, err := CatalogColors(markup)
	require.NoError(t, err)
	require.Len(t, cat.Colors, 1)

	// The literal must be usable for exact find/replace in the source.
	assert.Contains(t, markup, cat.Colors[0].Original)
}

func TestCatalogColors_DeviceCMYKStaysDistinct(t *testing.T) {
	// Same displayed color, different underlying ink values: two entries.
	cat, err := CatalogColors(`<svg viewBox="0 0 10 10">
    <rect width="1" height="1" fill="#cccccc"/>
    <rect width="1" height="1" fill="device-cmyk(0.2, 0.2, 0.2, 0)"/>
</svg>`)
	require.NoError(t, err)

	require.Len(t, cat.Colors, 2)
	assert.Equal(t, cat.Colors[0].Canonical, cat.Colors[1].Canonical)
	assert.NotEqual(t, *cat.Colors[0].CMYK, *cat.Colors[1].CMYK)
}

func TestCatalogColors_BackgroundPaintSkipped(t *testing.T) {
	cat, err := CatalogColors(`<svg viewBox="0 0 10 10">
    <rect width="1" height="1" fill="none"/>
    <rect width="1" height="1" fill="transparent" stroke="#112233"/>
    <rect width="1" height="1" fill="#ffffff"/>
</svg>`)
	require.NoError(t, err)

	// none/transparent are dropped; white survives as printable content.
	require.Len(t, cat.Colors, 2)
	assert.Equal(t, "#112233", cat.Colors[0].Canonical)
	assert.Equal(t, "#ffffff", cat.Colors[1].Canonical)
}

func TestCatalogColors_UnparsableLiteralGetsNilCMYK(t *testing.T) {
	cat, err := CatalogColors(`<svg viewBox="0 0 10 10">
    <rect width="1" height="1" fill="url(#gradient)"/>
</svg>`)
	require.NoError(t, err)

	require.Len(t, cat.Colors, 1)
	assert.Nil(t, cat.Colors[0].CMYK)
	assert.Equal(t, "url(#gradient)", cat.Colors[0].Original)
	assert.Empty(t, cat.Colors[0].PantoneMatch)
}

func TestCatalogColors_PantoneNearestMatch(t *testing.T) {
	cat, err := CatalogColors(`<svg viewBox="0 0 10 10">
    <rect width="1" height="1" fill="#ED2939"/>
</svg>`)
	require.NoError(t, err)

	require.Len(t, cat.Colors, 1)
	assert.Equal(t, "PANTONE Red 032 C", cat.Colors[0].PantoneMatch)
	assert.Equal(t, 0.0, cat.Colors[0].PantoneDistance)
}

func TestCatalogColors_MetadataHintBeatsNearestMatch(t *testing.T) {
	cat, err := CatalogColors(`<svg viewBox="0 0 10 10">
    <metadata>printed with pantone 300 C</metadata>
    <rect width="1" height="1" fill="#ED2939"/>
</svg>`)
	require.NoError(t, err)

	require.Len(t, cat.Colors, 1)
	assert.Equal(t, []string{"PANTONE 300 C"}, cat.PantoneHints)
	// The explicit hint wins over the RGB nearest match.
	assert.Equal(t, "PANTONE 300 C", cat.Colors[0].PantoneMatch)
	assert.Equal(t, 0.0, cat.Colors[0].PantoneDistance)
}

func TestCatalogColors_PMSHintForm(t *testing.T) {
	cat, err := CatalogColors(`<svg viewBox="0 0 10 10">
    <desc>PMS 186</desc>
    <rect width="1" height="1" fill="#C8102E"/>
</svg>`)
	require.NoError(t, err)

	assert.Equal(t, []string{"PANTONE 186"}, cat.PantoneHints)
}

func TestCatalogColors_FontsAndOutlining(t *testing.T) {
	cat, err := CatalogColors(`<svg viewBox="0 0 100 100">
    <text x="0" y="10" font-family="Futura" font-size="18" fill="#000000">ACME</text>
</svg>`)
	require.NoError(t, err)

	require.Len(t, cat.Fonts, 1)
	assert.Equal(t, "Futura", cat.Fonts[0].FontFamily)
	assert.Equal(t, 18.0, cat.Fonts[0].FontSize)
	assert.Equal(t, "ACME", cat.Fonts[0].TextContent)
	assert.True(t, cat.HasLiveText)
	assert.True(t, cat.NeedsOutlining)
	assert.False(t, cat.GlyphsOutlined)
}

func TestCatalogColors_OutlinedGlyphsNoWarning(t *testing.T) {
	cat, err := CatalogColors(`<svg viewBox="0 0 10 10">
    <defs><glyph id="g1" d="M0 0 L1 1"/></defs>
    <path d="M1 1 L2 2" fill="#000000"/>
</svg>`)
	require.NoError(t, err)

	assert.False(t, cat.HasLiveText)
	assert.True(t, cat.GlyphsOutlined)
	assert.False(t, cat.NeedsOutlining)
}

func TestCatalogColors_InvalidMarkup(t *testing.T) {
	_, err := CatalogColors("just plain text")
	assert.Error(t, err)
}

func TestCatalogColors_ManyElementsBounded(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<svg viewBox="0 0 10 10">`)
	for i := 0; i < 500; i++ {
		sb.WriteString(`<rect width="1" height="1" fill="#123456"/>`)
	}
	sb.WriteString(`</svg>`)

	cat, err := CatalogColors(sb.String())
	require.NoError(t, err)

	require.Len(t, cat.Colors, 1)
	assert.LessOrEqual(t, cat.Colors[0].Occurrences, 200)
}
