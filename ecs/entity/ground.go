package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/milk9111/fpsdemo/render"
	"golang.org/x/image/colornames"
)

// NewGround creates the static floor. Its top face sits at y = 0.
func NewGround(w *ecs.World, pw *physics.World, spec prefabs.GroundSpec) (ecs.Entity, error) {
	h := spec.HalfExtents
	if h.Y() <= 0 {
		h = mgl64.Vec3{h.X(), 0.5, h.Z()}
	}
	ent, _, err := newBodyEntity(w, pw, physics.BodyDesc{
		Type:     physics.BodyStatic,
		Shape:    physics.Box(h),
		Position: mgl64.Vec3{0, -h.Y(), 0},
		Friction: 1,
	}, spec.Color.RGBAOr(colornames.Olivedrab))
	if err != nil {
		return 0, fmt.Errorf("ground: %w", err)
	}
	if mesh, ok := ecs.Get(w, ent, component.MeshComponent); ok {
		mesh.Geometry = render.PlaneGeometry(h, spec.Tiles)
	}
	if err := ecs.Add(w, ent, component.StaticTagComponent, component.StaticTag{}); err != nil {
		return 0, fmt.Errorf("ground: add static tag: %w", err)
	}
	return ent, nil
}
