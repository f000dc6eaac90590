package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkprep/artcore/api"
)

func TestFindGarmentColor_ExactHex(t *testing.T) {
	c, ok := FindGarmentColor("#0047AB")
	require.True(t, ok)
	assert.Equal(t, "Royal Blue", c.Name)
	assert.Equal(t, "Gildan", c.Manufacturer)
	assert.Equal(t, api.CMYK{C: 100, M: 58, K: 33}, c.CMYK)
}

func TestFindGarmentColor_NormalizesInput(t *testing.T) {
	c, ok := FindGarmentColor("b71234")
	require.True(t, ok)
	assert.Equal(t, "Cardinal Red", c.Name)

	_, ok = FindGarmentColor("#123456")
	assert.False(t, ok)
}

func TestClosestGarmentColor(t *testing.T) {
	// Near-black resolves to Black at a small distance.
	c, ok := ClosestGarmentColor("#050505")
	require.True(t, ok)
	assert.Equal(t, "Black", c.Name)

	_, ok = ClosestGarmentColor("not-a-color")
	assert.False(t, ok)
}

func TestGarmentColorsByManufacturer(t *testing.T) {
	gildan := GarmentColorsByManufacturer("gildan")
	fotl := GarmentColorsByManufacturer("Fruit of the Loom")

	assert.Len(t, gildan, 27)
	assert.Len(t, fotl, 15)
}

func TestCMYKLabel(t *testing.T) {
	c, _ := FindGarmentColor("#000000")
	assert.Equal(t, "C:0 M:0 Y:0 K:100", c.CMYKLabel())
}

func TestAllGarmentColors_IncludesSpecialty(t *testing.T) {
	all := AllGarmentColors()

	var metallic int
	for _, c := range all {
		if c.Specialty == "metallic" {
			metallic++
		}
	}
	assert.Equal(t, 2, metallic)
	assert.Equal(t, 27+15+4+5+4, len(all))
}
