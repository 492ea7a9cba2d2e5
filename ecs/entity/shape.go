package entity

import (
	"fmt"

	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/milk9111/fpsdemo/render"
)

const curveSegments = 12

func shapeFromSpec(s prefabs.ShapeSpec) (physics.ShapeDesc, error) {
	if err := s.Validate(); err != nil {
		return physics.ShapeDesc{}, err
	}
	switch s.Kind {
	case "box":
		return physics.Box(s.HalfExtents), nil
	case "ramp":
		return physics.Ramp(s.HalfExtents), nil
	case "sphere":
		return physics.Sphere(s.Radius), nil
	case "capsule":
		return physics.Capsule(s.HalfHeight, s.Radius), nil
	}
	return physics.ShapeDesc{}, fmt.Errorf("%w: unknown shape kind %q", prefabs.ErrInvalidSpec, s.Kind)
}

// GeometryFor builds the mesh drawn for a collider. Capsules are drawn as the
// upright cylinder they collide as.
func GeometryFor(shape physics.ShapeDesc) *render.Geometry {
	switch shape.Kind {
	case physics.ShapeRamp:
		return render.RampGeometry(shape.HalfExtents)
	case physics.ShapeSphere:
		return render.SphereGeometry(shape.Radius, curveSegments, curveSegments/2)
	case physics.ShapeCapsule:
		return render.CylinderGeometry(shape.Radius, shape.HalfHeight+shape.Radius, curveSegments)
	default:
		return render.BoxGeometry(shape.HalfExtents)
	}
}
