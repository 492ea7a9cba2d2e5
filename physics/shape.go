package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCapsule
	// ShapeRamp is a box footprint whose top rises linearly along the local +X
	// axis, from its bottom at -X to its full height at +X.
	ShapeRamp
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCapsule:
		return "capsule"
	case ShapeRamp:
		return "ramp"
	default:
		return "unknown"
	}
}

// ShapeDesc describes a collider. Spheres and capsules are upright cylinders in
// the horizontal plane, which is what the character and the projectiles need.
type ShapeDesc struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3
	Radius      float64
	// HalfHeight is the half length of a capsule's straight section.
	HalfHeight float64
}

func Box(halfExtents mgl64.Vec3) ShapeDesc {
	return ShapeDesc{Kind: ShapeBox, HalfExtents: halfExtents}
}

func Sphere(radius float64) ShapeDesc {
	return ShapeDesc{Kind: ShapeSphere, Radius: radius}
}

func Capsule(halfHeight, radius float64) ShapeDesc {
	return ShapeDesc{Kind: ShapeCapsule, HalfHeight: halfHeight, Radius: radius}
}

func Ramp(halfExtents mgl64.Vec3) ShapeDesc {
	return ShapeDesc{Kind: ShapeRamp, HalfExtents: halfExtents}
}

// VerticalHalfExtent is the distance from the body's center to its bottom.
func (s ShapeDesc) VerticalHalfExtent() float64 {
	switch s.Kind {
	case ShapeSphere:
		return s.Radius
	case ShapeCapsule:
		return s.HalfHeight + s.Radius
	default:
		return s.HalfExtents.Y()
	}
}

// FootprintRadius is the radius of the smallest circle around the footprint.
func (s ShapeDesc) FootprintRadius() float64 {
	switch s.Kind {
	case ShapeSphere, ShapeCapsule:
		return s.Radius
	default:
		return math.Hypot(s.HalfExtents.X(), s.HalfExtents.Z())
	}
}

// SlopeAngle is the incline of a ramp's top in radians, zero for anything else.
func (s ShapeDesc) SlopeAngle() float64 {
	if s.Kind != ShapeRamp || s.HalfExtents.X() <= 0 {
		return 0
	}
	return math.Atan2(s.HalfExtents.Y(), s.HalfExtents.X())
}

func (s ShapeDesc) newShape(body *cp.Body) *cp.Shape {
	switch s.Kind {
	case ShapeSphere, ShapeCapsule:
		return cp.NewCircle(body, s.Radius, cp.Vector{})
	default:
		return cp.NewBox(body, 2*s.HalfExtents.X(), 2*s.HalfExtents.Z(), 0)
	}
}

func (s ShapeDesc) moment(mass float64) float64 {
	switch s.Kind {
	case ShapeSphere, ShapeCapsule:
		return cp.MomentForCircle(mass, 0, s.Radius, cp.Vector{})
	default:
		return cp.MomentForBox(mass, 2*s.HalfExtents.X(), 2*s.HalfExtents.Z())
	}
}
