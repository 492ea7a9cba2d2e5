package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const collisionTypeBody cp.CollisionType = 1

// World owns the Chipmunk space and every body created through it.
type World struct {
	space  *cp.Space
	cfg    Config
	bodies []*Body
}

func NewWorld(cfg Config) *World {
	space := cp.NewSpace()
	space.Iterations = uint(max(cfg.Iterations, 1))
	// the plane has no gravity; elevation is integrated in Step
	space.SetGravity(cp.Vector{})

	w := &World{space: space, cfg: cfg}
	w.setupHandlers()
	return w
}

func (w *World) Space() *cp.Space { return w.space }
func (w *World) Config() Config   { return w.cfg }

func (w *World) SetConfig(cfg Config) {
	w.cfg = cfg
	w.space.Iterations = uint(max(cfg.Iterations, 1))
}

// Bodies returns the live bodies in creation order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *World) CreateBody(desc BodyDesc) *Body {
	b := &Body{
		world:       w,
		typ:         desc.Type,
		shape:       desc.Shape,
		y:           desc.Position.Y(),
		restitution: desc.Restitution,
		sensor:      desc.Sensor,
		UserData:    desc.UserData,
	}

	switch desc.Type {
	case BodyDynamic:
		mass := desc.Mass
		if mass <= 0 {
			mass = 1
		}
		b.cpBody = cp.NewBody(mass, desc.Shape.moment(mass))
		b.cpBody.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, _ float64, dt float64) {
			d := w.cfg.AirDamping
			if b.grounded {
				d = w.cfg.GroundDamping
			}
			cp.BodyUpdateVelocity(body, gravity, math.Pow(d, dt), dt)
		})
	case BodyKinematic:
		b.cpBody = cp.NewKinematicBody()
	default:
		b.cpBody = cp.NewStaticBody()
	}
	b.cpBody.UserData = b
	b.cpBody.SetPosition(cp.Vector{X: desc.Position.X(), Y: desc.Position.Z()})
	b.cpBody.SetAngle(-desc.Yaw)

	b.cpShape = desc.Shape.newShape(b.cpBody)
	b.cpShape.UserData = b
	b.cpShape.SetSensor(desc.Sensor)
	b.cpShape.SetFriction(desc.Friction)
	b.cpShape.SetElasticity(desc.Restitution)
	b.cpShape.SetCollisionType(collisionTypeBody)

	w.space.AddBody(b.cpBody)
	w.space.AddShape(b.cpShape)
	w.bodies = append(w.bodies, b)
	return b
}

// RemoveBody detaches b from the space. It reports true only the first time.
func (w *World) RemoveBody(b *Body) bool {
	if b == nil || b.removed || b.world != w {
		return false
	}
	w.space.RemoveShape(b.cpShape)
	w.space.RemoveBody(b.cpBody)
	b.removed = true
	b.grounded = false
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	return true
}

// Step advances the horizontal simulation, then settles every dynamic body
// vertically onto whatever it stands on.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
	for _, b := range w.bodies {
		if b.typ != BodyDynamic {
			continue
		}
		w.integrateVertical(b, dt)
	}
}

func (w *World) integrateVertical(b *Body, dt float64) {
	half := b.shape.VerticalHalfExtent()
	bottom := b.Bottom()
	support, ok := w.supportUnder(b, bottom+w.cfg.SupportTolerance)

	if ok && b.grounded && b.vy <= 0 && bottom-support <= w.cfg.SupportTolerance {
		b.y = support + half
		b.vy = 0
		return
	}

	b.vy -= w.cfg.Gravity * dt
	next := bottom + b.vy*dt
	if ok && next <= support {
		b.y = support + half
		rebound := -b.vy * b.restitution
		if rebound > w.cfg.RestSpeed {
			b.vy = rebound
			b.grounded = false
		} else {
			b.vy = 0
			b.grounded = true
		}
		return
	}
	b.y += b.vy * dt
	b.grounded = false
}

// supportUnder returns the highest surface under b's footprint that is no
// higher than limit.
func (w *World) supportUnder(b *Body, limit float64) (float64, bool) {
	p := b.cpBody.Position()
	best := math.Inf(-1)
	found := false
	w.space.BBQuery(b.cpShape.BB(), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		o := bodyOf(shape)
		if o == nil || o == b || o.sensor || !footprintsOverlap(b, o) {
			return
		}
		top := o.TopAt(p.X, p.Y)
		if top <= limit && top > best {
			best = top
			found = true
		}
	}, nil)
	return best, found
}

const footprintSlop = 1e-6

// footprintsOverlap reports whether the X/Z footprints of a and b share area.
// Chipmunk finds no contact between coincident polygons, so containment of
// either center is checked first.
func footprintsOverlap(a, b *Body) bool {
	pa, pb := a.cpBody.Position(), b.cpBody.Position()
	if a.cpShape.PointQuery(pb).Distance < 0 || b.cpShape.PointQuery(pa).Distance < 0 {
		return true
	}
	set := cp.ShapesCollide(a.cpShape, b.cpShape)
	for i := 0; i < set.Count; i++ {
		if set.Points[i].Distance < -footprintSlop {
			return true
		}
	}
	return false
}

// QuerySphere calls fn for every body overlapping the sphere. Callbacks run
// after the space query so fn may create or remove bodies.
func (w *World) QuerySphere(center mgl64.Vec3, radius float64, fn func(*Body)) {
	c := cp.Vector{X: center.X(), Y: center.Z()}
	var hits []*Body
	seen := make(map[*Body]struct{})
	w.space.BBQuery(cp.NewBBForCircle(c, radius), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		o := bodyOf(shape)
		if o == nil {
			return
		}
		if _, dup := seen[o]; dup {
			return
		}
		if shape.PointQuery(c).Distance > radius {
			return
		}
		if o.Bottom() > center.Y()+radius || o.Top() < center.Y()-radius {
			return
		}
		seen[o] = struct{}{}
		hits = append(hits, o)
	}, nil)
	for _, o := range hits {
		fn(o)
	}
}

func (w *World) setupHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		shapeA, shapeB := arb.Shapes()
		a, b := bodyOf(shapeA), bodyOf(shapeB)
		if a == nil || b == nil {
			return true
		}
		return a.overlapsVertically(b)
	}
}
