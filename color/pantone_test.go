package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestPantone_ExactSwatch(t *testing.T) {
	match := NearestPantone("#ED2939")

	require.NotNil(t, match)
	assert.Equal(t, "PANTONE Red 032 C", match.Name)
	assert.Equal(t, 0.0, match.Distance)
}

func TestNearestPantone_CloseColor(t *testing.T) {
	// Slightly off-red still lands on a red swatch at a small distance.
	match := NearestPantone("#EE2A3A")

	require.NotNil(t, match)
	assert.Equal(t, "PANTONE Red 032 C", match.Name)
	assert.Greater(t, match.Distance, 0.0)
	assert.Less(t, match.Distance, 10.0)
}

func TestNearestPantone_FirstMinimalWins(t *testing.T) {
	// Equidistant candidates resolve to the earlier palette entry; probing
	// every swatch against itself must always return that same swatch.
	for _, swatch := range Palette() {
		match := NearestPantone(swatch.Hex)
		require.NotNil(t, match)
		assert.Equal(t, 0.0, match.Distance, "swatch %s", swatch.Name)
	}
}

func TestNearestPantone_Unparsable(t *testing.T) {
	assert.Nil(t, NearestPantone("url(#gradient)"))
	assert.Nil(t, NearestPantone(""))
}

func TestNearestPantone_AcceptsRGBLiterals(t *testing.T) {
	match := NearestPantone("rgb(237, 41, 57)")

	require.NotNil(t, match)
	assert.Equal(t, "PANTONE Red 032 C", match.Name)
	assert.Equal(t, 0.0, match.Distance)
}
