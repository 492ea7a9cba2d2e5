package component

import (
	"image/color"

	"github.com/milk9111/fpsdemo/render"
)

// Mesh is drawn at the entity's Transform.
type Mesh struct {
	Geometry *render.Geometry
	Color    color.RGBA
	Unlit    bool
	Hidden   bool
}

var MeshComponent = NewComponent[*Mesh]()
