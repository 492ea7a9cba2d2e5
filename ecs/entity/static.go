package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"golang.org/x/image/colornames"
)

// NewStatic creates a fixed piece of level geometry. The StaticSpec position and
// yaw are relative to origin, which is itself turned by originYaw.
func NewStatic(w *ecs.World, pw *physics.World, spec prefabs.StaticSpec, origin mgl64.Vec3, originYaw float64) (ecs.Entity, error) {
	shape, err := shapeFromSpec(spec.Shape)
	if err != nil {
		return 0, fmt.Errorf("static %q: %w", spec.Name, err)
	}
	pos := origin.Add(mgl64.QuatRotate(originYaw, mgl64.Vec3{0, 1, 0}).Rotate(spec.Position))
	ent, _, err := newBodyEntity(w, pw, physics.BodyDesc{
		Type:     physics.BodyStatic,
		Shape:    shape,
		Position: pos,
		Yaw:      originYaw + spec.Yaw,
		Friction: 0.8,
	}, spec.Color.RGBAOr(colornames.Gray))
	if err != nil {
		return 0, fmt.Errorf("static %q: %w", spec.Name, err)
	}
	if err := ecs.Add(w, ent, component.StaticTagComponent, component.StaticTag{}); err != nil {
		return 0, fmt.Errorf("static %q: add static tag: %w", spec.Name, err)
	}
	return ent, nil
}
