package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

type Hit struct {
	Body     *Body
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

type hitCause int

const (
	causeInside hitCause = iota
	causeSide
	causeTop
	causeBottom
)

const rayEpsilon = 1e-9

// Raycast returns the closest body hit by the ray within maxDist, ignoring
// exclude and sensors. Bodies are treated as their footprint extruded between
// bottom and top, with ramps sloping along their top.
func (w *World) Raycast(origin, dir mgl64.Vec3, maxDist float64, exclude *Body) (Hit, bool) {
	if maxDist <= 0 || dir.Len() < rayEpsilon {
		return Hit{}, false
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mul(maxDist))
	a := cp.Vector{X: origin.X(), Y: origin.Z()}
	c := cp.Vector{X: end.X(), Y: end.Z()}

	bb := cp.BB{
		L: math.Min(a.X, c.X) - 0.01,
		B: math.Min(a.Y, c.Y) - 0.01,
		R: math.Max(a.X, c.X) + 0.01,
		T: math.Max(a.Y, c.Y) + 0.01,
	}
	var candidates []*Body
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		o := bodyOf(shape)
		if o == nil || o == exclude || o.sensor || o.removed {
			return
		}
		candidates = append(candidates, o)
	}, nil)

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, o := range candidates {
		t, cause, side, ok := o.rayEntry(origin, dir, maxDist, a, c)
		if !ok {
			continue
		}
		dist := t * maxDist
		if dist >= best.Distance {
			continue
		}
		point := origin.Add(dir.Mul(dist))
		var n mgl64.Vec3
		switch cause {
		case causeSide:
			n = mgl64.Vec3{side.X, 0, side.Y}
		case causeTop:
			n = o.SurfaceNormalAt(point.X(), point.Z())
		case causeBottom:
			n = mgl64.Vec3{0, -1, 0}
		default:
			n = dir.Mul(-1)
		}
		best = Hit{Body: o, Point: point, Normal: n, Distance: dist}
		found = true
	}
	return best, found
}

// rayEntry intersects the segment with the body's prism and returns the entry
// parameter in [0, 1] along with the face that produced it.
func (b *Body) rayEntry(origin, dir mgl64.Vec3, maxDist float64, a, c cp.Vector) (float64, hitCause, cp.Vector, bool) {
	enter, exit := 0.0, 1.0
	cause := causeInside
	var side cp.Vector

	if a.Distance(c) < rayEpsilon {
		if b.cpShape.PointQuery(a).Distance > 0 {
			return 0, 0, cp.Vector{}, false
		}
	} else {
		if b.cpShape.PointQuery(a).Distance > 0 {
			var info cp.SegmentQueryInfo
			if !b.cpShape.SegmentQuery(a, c, 0, &info) {
				return 0, 0, cp.Vector{}, false
			}
			enter = info.Alpha
			cause = causeSide
			side = info.Normal
		}
		if b.cpShape.PointQuery(c).Distance > 0 {
			var info cp.SegmentQueryInfo
			if b.cpShape.SegmentQuery(c, a, 0, &info) {
				exit = 1 - info.Alpha
			} else {
				exit = enter
			}
		}
	}

	// y(t) = oy + dy*t must stay within [bottom, top(t)]
	oy := origin.Y()
	dy := dir.Y() * maxDist
	a0, a1 := b.topLine(a, c)

	constraints := []struct {
		p, q  float64
		cause hitCause
	}{
		{b.Bottom() - oy, -dy, causeBottom},
		{oy - a0, dy - a1, causeTop},
	}
	for _, k := range constraints {
		if math.Abs(k.q) < rayEpsilon {
			if k.p > 0 {
				return 0, 0, cp.Vector{}, false
			}
			continue
		}
		t := -k.p / k.q
		if k.q > 0 {
			exit = math.Min(exit, t)
		} else if t > enter {
			enter = t
			cause = k.cause
		}
	}

	if enter > exit || enter > 1 || exit < 0 {
		return 0, 0, cp.Vector{}, false
	}
	return math.Max(enter, 0), cause, side, true
}
