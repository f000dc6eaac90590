package bounds

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkprep/artcore/api"
	"github.com/inkprep/artcore/scan"
)

func TestContentBounds_ExcludesFullCanvasBackground(t *testing.T) {
	// A white page-frame rectangle plus one real 100x80 logo rectangle:
	// the frame must not leak into the content box.
	markup := `<svg viewBox="0 0 1000 1000">
    <rect x="0" y="0" width="1000" height="1000" fill="#ffffff"/>
    <rect x="450" y="460" width="100" height="80" fill="#cc0000"/>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	assert.InDelta(t, 450, box.MinX, 1)
	assert.InDelta(t, 460, box.MinY, 1)
	assert.InDelta(t, 550, box.MaxX, 1)
	assert.InDelta(t, 540, box.MaxY, 1)
	assert.InDelta(t, 100, box.Width, 1)
	assert.InDelta(t, 80, box.Height, 1)
}

func TestContentBounds_WhiteShapeIsContent(t *testing.T) {
	// White ink on a colored garment is real content; only none and
	// transparent count as background paint.
	markup := `<svg viewBox="0 0 1000 1000">
    <rect x="100" y="100" width="50" height="50" fill="#ffffff"/>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	assert.InDelta(t, 100, box.MinX, 0.01)
	assert.InDelta(t, 50, box.Width, 0.01)
}

func TestContentBounds_UnspecifiedFillCountsAsPainted(t *testing.T) {
	// A path with no paint attributes renders with the initial black fill;
	// it must extend the content box like any other filled shape.
	markup := `<svg viewBox="0 0 600 600">
    <rect x="100" y="100" width="50" height="50" fill="#ffffff"/>
    <path d="M 400 400 L 500 400 L 500 500 L 400 500 Z"/>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	assert.InDelta(t, 100, box.MinX, 0.01)
	assert.InDelta(t, 100, box.MinY, 0.01)
	assert.InDelta(t, 500, box.MaxX, 0.01)
	assert.InDelta(t, 500, box.MaxY, 0.01)
}

func TestContentBounds_NilForUnparsableInput(t *testing.T) {
	assert.Nil(t, NewCalculator().ContentBounds("not markup in any sense"))
	assert.Nil(t, NewCalculator().ContentBounds(`{"json": true}`))
}

func TestContentBounds_FallbackForOversizedInput(t *testing.T) {
	big := `<svg viewBox="0 0 10 10">` + strings.Repeat("<!-- pad -->", scan.MaxDocumentBytes/12) + `</svg>`

	box := NewCalculator().ContentBounds(big)
	require.NotNil(t, box)

	h := DefaultHeuristics()
	assert.Equal(t, h.TextFallbackWidth, box.Width)
	assert.Equal(t, h.TextFallbackHeight, box.Height)
}

func TestContentBounds_Idempotent(t *testing.T) {
	markup := `<svg viewBox="0 0 900 900">
    <path d="M 100 100 L 300 100 L 300 300 L 100 300 Z" fill="#123456"/>
    <circle cx="500" cy="500" r="40" fill="#654321"/>
</svg>`

	c := NewCalculator()
	first := c.ContentBounds(markup)
	second := c.ContentBounds(markup)

	require.NotNil(t, first)
	assert.Equal(t, *first, *second)
}

func TestContentBounds_BoxConsistency(t *testing.T) {
	markup := `<svg viewBox="0 0 500 500">
    <path d="M 50 60 L 200 60 L 200 180 Z" fill="#0000aa"/>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	assert.Equal(t, box.Width, box.MaxX-box.MinX)
	assert.Equal(t, box.Height, box.MaxY-box.MinY)
	assert.GreaterOrEqual(t, box.Width, 0.0)
	assert.GreaterOrEqual(t, box.Height, 0.0)
}

func TestContentBounds_SmallRawBoxAcceptedDirectly(t *testing.T) {
	markup := `<svg viewBox="0 0 800 800">
    <rect x="200" y="200" width="150" height="100" fill="#00aa00"/>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	assert.InDelta(t, 150, box.Width, 0.01)
	assert.InDelta(t, 100, box.Height, 0.01)
}

func TestStandardBounds_DensityClusterShrinksContaminatedBox(t *testing.T) {
	// A dense logo cluster around (450,450) plus scattered speckles out to
	// the canvas corners: the density pass should find the cluster.
	var sb strings.Builder
	sb.WriteString(`<svg viewBox="0 0 1000 1000">`)
	for i := 0; i < 60; i++ {
		x := 430 + (i%8)*5
		y := 430 + (i/8)*5
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="2" height="2" fill="#222222"/>`, x, y)
	}
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="2" height="2" fill="#333333"/>`, i*160+10, i*160+10)
	}
	sb.WriteString(`</svg>`)

	box := NewCalculator().ContentBounds(sb.String())
	require.NotNil(t, box)

	// The cluster sits around 430..472; stray speckles cover the canvas.
	assert.Less(t, box.Width, 200.0)
	assert.Greater(t, box.MinX, 300.0)
	assert.Less(t, box.MaxX, 600.0)
}

func TestContentBounds_ContainedInRawBounds(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<svg viewBox="0 0 1000 1000">`)
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="3" height="3" fill="#444444"/>`, 480+(i%5)*4, 480+(i/5)*4)
	}
	fmt.Fprintf(&sb, `<rect x="20" y="20" width="3" height="3" fill="#555555"/>`)
	fmt.Fprintf(&sb, `<rect x="950" y="950" width="3" height="3" fill="#555555"/>`)
	sb.WriteString(`</svg>`)

	c := NewCalculator()
	doc, err := scan.Parse(sb.String())
	require.NoError(t, err)

	raw, ok := api.BoundsOf(c.collectPoints(doc, collectOptions{}), api.UnitPx)
	require.True(t, ok)

	focused := c.ContentBoundsDocument(doc)
	require.NotNil(t, focused)
	assert.True(t, raw.Contains(*focused), "focused %s not inside raw %s", focused, raw)
}

func TestTextHeavyBounds_ExcludesDefsGeometry(t *testing.T) {
	// Glyph outlines in defs span the whole canvas; only the visible
	// colored path may contribute to the box.
	markup := `<svg viewBox="0 0 500 500">
    <defs>
        <glyph id="g0" d="M 0 0 L 500 500"/>
        <path id="outline" d="M 0 0 L 499 499" fill="#000000"/>
    </defs>
    <use xlink:href="#g0" x="10" y="10"/>
    <path d="M 200 200 L 260 200 L 260 240 L 200 240 Z" fill="#112233"/>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	assert.InDelta(t, 200, box.MinX, 30)
	assert.InDelta(t, 260, box.MaxX, 30)
	assert.Less(t, box.Width, 200.0)
}

func TestTextHeavyBounds_FallbackWhenNoColoredPaths(t *testing.T) {
	markup := `<svg viewBox="0 0 500 500">
    <text x="10" y="20" font-family="Arial">Just text</text>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	h := DefaultHeuristics()
	assert.Equal(t, h.TextFallbackWidth, box.Width)
	assert.Equal(t, h.TextFallbackHeight, box.Height)
}

func TestLargeVectorizedBounds_EdgePaddingTrimmed(t *testing.T) {
	// A traced image on a 2000-unit canvas: many filled paths, with a few
	// stray points hugging the bounding edges.
	var sb strings.Builder
	sb.WriteString(`<svg viewBox="0 0 2000 2000"><metadata>created by vectorizer.io</metadata>`)
	for i := 0; i < 60; i++ {
		x := 500 + (i%10)*40
		y := 500 + (i/10)*40
		fmt.Fprintf(&sb, `<path d="M %d %d L %d %d L %d %d Z" fill="#3355aa"/>`, x, y, x+20, y, x, y+20)
	}
	sb.WriteString(`<path d="M 2 2 L 4 4" fill="#3355aa"/>`)
	sb.WriteString(`<path d="M 1996 1996 L 1998 1998" fill="#3355aa"/>`)
	sb.WriteString(`</svg>`)

	c := NewCalculator()
	doc, err := scan.Parse(sb.String())
	require.NoError(t, err)
	require.Equal(t, api.ShapeLargeVectorized, c.Classify(doc))

	box := c.ContentBoundsDocument(doc)
	require.NotNil(t, box)

	// Corner strays are inside the 3% edge margin of the raw box and get
	// trimmed; the box tightens to the traced cluster.
	assert.Greater(t, box.MinX, 400.0)
	assert.Less(t, box.MaxX, 1000.0)
}

func TestLargeVectorized_StrokeOnlySecondaryPass(t *testing.T) {
	markup := `<svg viewBox="0 0 1500 1500">
    <metadata>image trace output</metadata>
    <path d="M 300 300 L 700 300 L 700 700 Z" fill="none" stroke="#000000"/>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	assert.InDelta(t, 300, box.MinX, 30)
	assert.InDelta(t, 700, box.MaxX, 30)
}

func TestLargeVectorized_MinimumBoxFloor(t *testing.T) {
	markup := `<svg viewBox="0 0 1200 1200">
    <metadata>potrace 1.16</metadata>
    <path d="M 600 600 L 602 602" fill="#000000"/>
</svg>`

	box := NewCalculator().ContentBounds(markup)
	require.NotNil(t, box)

	h := DefaultHeuristics()
	assert.GreaterOrEqual(t, box.Width, h.MinBoxSize)
	assert.GreaterOrEqual(t, box.Height, h.MinBoxSize)
}

func TestClassify(t *testing.T) {
	c := NewCalculator()

	for _, tc := range []struct {
		name   string
		markup string
		want   api.DocumentShape
	}{
		{
			name:   "plain art",
			markup: `<svg viewBox="0 0 100 100"><rect width="10" height="10" fill="#000"/></svg>`,
			want:   api.ShapeStandard,
		},
		{
			name:   "live text",
			markup: `<svg viewBox="0 0 100 100"><text x="1" y="1">Hi</text></svg>`,
			want:   api.ShapeTextHeavy,
		},
		{
			name:   "glyph defs",
			markup: `<svg viewBox="0 0 100 100"><defs><glyph id="a" d="M0 0"/></defs></svg>`,
			want:   api.ShapeTextHeavy,
		},
		{
			name:   "large canvas with marker",
			markup: `<svg viewBox="0 0 3000 3000"><metadata>vector magic</metadata><path d="M1 1" fill="#000"/></svg>`,
			want:   api.ShapeLargeVectorized,
		},
		{
			name:   "large canvas without markers stays standard",
			markup: `<svg viewBox="0 0 3000 3000"><rect width="10" height="10" fill="#000"/></svg>`,
			want:   api.ShapeStandard,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := scan.Parse(tc.markup)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Classify(doc))
		})
	}
}

func TestContentBounds_DegenerateButParseable(t *testing.T) {
	// Parseable markup with no geometry still yields a usable box.
	box := NewCalculator().ContentBounds(`<svg viewBox="0 0 100 100"></svg>`)
	require.NotNil(t, box)
	assert.Greater(t, box.Width, 0.0)
}
