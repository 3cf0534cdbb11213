package scene

import (
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// DimmedOpacity is the opacity of objects pushed into the background by a
// selection or an active highlight.
const DimmedOpacity = 0.1

// Material is the surface appearance of one object.
//
// ID is the grouping key used by the vector compositor: two materials with
// equal colors are still distinct groups.
type Material struct {
	ID          uuid.UUID
	Color       colorful.Color
	Opacity     float64
	Transparent bool
}

// NewMaterial returns an opaque material with a fresh identity.
func NewMaterial(c colorful.Color) *Material {
	return &Material{
		ID:      uuid.New(),
		Color:   c,
		Opacity: 1,
	}
}

// Hex returns the material color as "#rrggbb".
func (m *Material) Hex() string {
	return m.Color.Clamped().Hex()
}
