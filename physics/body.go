package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

type BodyType int

const (
	BodyStatic BodyType = iota
	BodyDynamic
	BodyKinematic
)

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "static"
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// BodyDesc configures a body at creation. Position is the body's center.
type BodyDesc struct {
	Type        BodyType
	Shape       ShapeDesc
	Position    mgl64.Vec3
	Yaw         float64
	Mass        float64
	Friction    float64
	Restitution float64
	Sensor      bool
	UserData    any
}

var worldUp = mgl64.Vec3{0, 1, 0}

// Body pairs a Chipmunk body and shape with the vertical state the adapter
// integrates itself. Chipmunk's plane is the world's X/Z plane: world X maps
// to cp X and world Z maps to cp Y.
type Body struct {
	world *World

	typ   BodyType
	shape ShapeDesc

	cpBody  *cp.Body
	cpShape *cp.Shape

	y           float64
	vy          float64
	restitution float64
	sensor      bool
	grounded    bool
	removed     bool

	UserData any
}

func (b *Body) Type() BodyType   { return b.typ }
func (b *Body) Shape() ShapeDesc { return b.shape }
func (b *Body) IsDynamic() bool  { return b.typ == BodyDynamic }
func (b *Body) Sensor() bool     { return b.sensor }
func (b *Body) Removed() bool    { return b.removed }

// Grounded reports whether a dynamic body rested on a surface after the last step.
func (b *Body) Grounded() bool { return b.grounded }

func (b *Body) Position() mgl64.Vec3 {
	p := b.cpBody.Position()
	return mgl64.Vec3{p.X, b.y, p.Y}
}

// SetPosition teleports the body. Kinematic bodies are moved this way by the
// character controller every frame.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.y = p.Y()
	v := cp.Vector{X: p.X(), Y: p.Z()}
	if b.typ == BodyStatic && b.world != nil && !b.removed {
		// static shapes are indexed once; re-add to refresh the index
		space := b.world.space
		space.RemoveShape(b.cpShape)
		b.cpBody.SetPosition(v)
		space.AddShape(b.cpShape)
		return
	}
	b.cpBody.SetPosition(v)
}

// Yaw is the rotation about world +Y. Chipmunk's angle runs the other way
// once its Y axis is mapped onto world Z.
func (b *Body) Yaw() float64 {
	return -b.cpBody.Angle()
}

func (b *Body) SetYaw(yaw float64) {
	b.cpBody.SetAngle(-yaw)
}

func (b *Body) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(b.Yaw(), worldUp)
}

func (b *Body) LinearVelocity() mgl64.Vec3 {
	v := b.cpBody.Velocity()
	return mgl64.Vec3{v.X, b.vy, v.Y}
}

func (b *Body) SetLinearVelocity(v mgl64.Vec3) {
	b.cpBody.SetVelocityVector(cp.Vector{X: v.X(), Y: v.Z()})
	b.vy = v.Y()
	if b.vy > 0 {
		b.grounded = false
	}
}

// AngularVelocity is the yaw rate in radians per second.
func (b *Body) AngularVelocity() float64 {
	return -b.cpBody.AngularVelocity()
}

func (b *Body) SetAngularVelocity(w float64) {
	b.cpBody.SetAngularVelocity(-w)
}

func (b *Body) Mass() float64 {
	if b.typ != BodyDynamic {
		return math.Inf(1)
	}
	return b.cpBody.Mass()
}

// ApplyImpulse applies impulse at a world point. The horizontal part goes
// through Chipmunk so off-center hits spin the body; the vertical part
// changes the elevation velocity directly.
func (b *Body) ApplyImpulse(impulse, point mgl64.Vec3) {
	if b.typ != BodyDynamic || b.removed {
		return
	}
	b.cpBody.ApplyImpulseAtWorldPoint(
		cp.Vector{X: impulse.X(), Y: impulse.Z()},
		cp.Vector{X: point.X(), Y: point.Z()},
	)
	b.vy += impulse.Y() / b.cpBody.Mass()
	if b.vy > 0 {
		b.grounded = false
	}
}

// ApplyTorqueImpulse spins the body about world +Y.
func (b *Body) ApplyTorqueImpulse(yawImpulse float64) {
	if b.typ != BodyDynamic || b.removed {
		return
	}
	moment := b.cpBody.Moment()
	if moment <= 0 || math.IsInf(moment, 1) {
		return
	}
	b.cpBody.SetAngularVelocity(b.cpBody.AngularVelocity() - yawImpulse/moment)
}

func (b *Body) Bottom() float64 {
	return b.y - b.shape.VerticalHalfExtent()
}

// Top is the highest point of the body.
func (b *Body) Top() float64 {
	if b.shape.Kind == ShapeRamp {
		return b.Bottom() + 2*b.shape.HalfExtents.Y()
	}
	return b.y + b.shape.VerticalHalfExtent()
}

// TopAt returns the height of the body's top surface above world (x, z).
// Only ramps vary; points outside a ramp's footprint are clamped onto it.
func (b *Body) TopAt(x, z float64) float64 {
	if b.shape.Kind != ShapeRamp {
		return b.Top()
	}
	local := b.cpBody.WorldToLocal(cp.Vector{X: x, Y: z})
	return b.rampHeight(local.X)
}

func (b *Body) rampHeight(localX float64) float64 {
	hx := b.shape.HalfExtents.X()
	if hx <= 0 {
		return b.Top()
	}
	t := (localX + hx) / (2 * hx)
	t = math.Max(0, math.Min(1, t))
	return b.Bottom() + 2*b.shape.HalfExtents.Y()*t
}

// SurfaceNormalAt is the normal of the top surface above world (x, z).
func (b *Body) SurfaceNormalAt(x, z float64) mgl64.Vec3 {
	if b.shape.Kind != ShapeRamp || b.shape.HalfExtents.X() <= 0 {
		return worldUp
	}
	slope := b.shape.HalfExtents.Y() / b.shape.HalfExtents.X()
	rot := b.cpBody.Rotation()
	return mgl64.Vec3{-slope * rot.X, 1, -slope * rot.Y}.Normalize()
}

// topLine returns the top surface along the horizontal segment a->c as
// a0 + a1*t. The expression is unclamped; the footprint bounds t anyway.
func (b *Body) topLine(a, c cp.Vector) (a0, a1 float64) {
	if b.shape.Kind != ShapeRamp || b.shape.HalfExtents.X() <= 0 {
		return b.Top(), 0
	}
	hx := b.shape.HalfExtents.X()
	scale := 2 * b.shape.HalfExtents.Y() / (2 * hx)
	la := b.cpBody.WorldToLocal(a)
	lc := b.cpBody.WorldToLocal(c)
	a0 = b.Bottom() + (la.X+hx)*scale
	a1 = (lc.X - la.X) * scale
	return a0, a1
}

const verticalSlop = 1e-3

// overlapsVertically reports whether the two bodies share any height where
// their footprints meet.
func (b *Body) overlapsVertically(o *Body) bool {
	bp := b.cpBody.Position()
	op := o.cpBody.Position()
	return b.Bottom() < o.TopAt(bp.X, bp.Y)-verticalSlop &&
		o.Bottom() < b.TopAt(op.X, op.Y)-verticalSlop
}

func bodyOf(shape *cp.Shape) *Body {
	if shape == nil {
		return nil
	}
	b, _ := shape.UserData.(*Body)
	return b
}
