package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fpsdemo/physics"
	"golang.org/x/image/colornames"
)

const ringSegments = 16

// Segment is a world-space line.
type Segment [2]mgl64.Vec3

type marker struct {
	point, normal mgl64.Vec3
}

// DebugOverlay draws collider wireframes, shot trajectories and hit markers.
// Hiding it keeps everything it tracks; Clear drops it all.
type DebugOverlay struct {
	MaxTrajectories int
	MaxMarkers      int

	ColliderColor   color.RGBA
	TrajectoryColor color.RGBA
	MarkerColor     color.RGBA

	visible      bool
	tracked      []*physics.Body
	trajectories [][]mgl64.Vec3
	markers      []marker
}

func NewDebugOverlay(maxTrajectories, maxMarkers int) *DebugOverlay {
	return &DebugOverlay{
		MaxTrajectories: maxTrajectories,
		MaxMarkers:      maxMarkers,
		ColliderColor:   colornames.Lime,
		TrajectoryColor: colornames.Orange,
		MarkerColor:     colornames.Red,
	}
}

func (d *DebugOverlay) Visible() bool     { return d.visible }
func (d *DebugOverlay) SetVisible(v bool) { d.visible = v }

// Toggle flips visibility and returns the new state.
func (d *DebugOverlay) Toggle() bool {
	d.visible = !d.visible
	return d.visible
}

// GeometryCount is the number of tracked colliders, trajectories and markers.
func (d *DebugOverlay) GeometryCount() int {
	return len(d.tracked) + len(d.trajectories) + len(d.markers)
}

func (d *DebugOverlay) TrackedCount() int    { return len(d.tracked) }
func (d *DebugOverlay) TrajectoryCount() int { return len(d.trajectories) }
func (d *DebugOverlay) MarkerCount() int     { return len(d.markers) }

// Track mirrors b's collider. It reports false if b was already tracked.
func (d *DebugOverlay) Track(b *physics.Body) bool {
	if b == nil {
		return false
	}
	for _, t := range d.tracked {
		if t == b {
			return false
		}
	}
	d.tracked = append(d.tracked, b)
	return true
}

func (d *DebugOverlay) Untrack(b *physics.Body) bool {
	for i, t := range d.tracked {
		if t == b {
			d.tracked = append(d.tracked[:i], d.tracked[i+1:]...)
			return true
		}
	}
	return false
}

// Prune drops tracked colliders whose bodies were removed and reports how
// many went.
func (d *DebugOverlay) Prune() int {
	kept := d.tracked[:0]
	for _, b := range d.tracked {
		if !b.Removed() {
			kept = append(kept, b)
		}
	}
	n := len(d.tracked) - len(kept)
	d.tracked = kept
	return n
}

// AddTrajectory keeps a copy of points, dropping the oldest trajectory past
// MaxTrajectories.
func (d *DebugOverlay) AddTrajectory(points []mgl64.Vec3) {
	if len(points) < 2 {
		return
	}
	d.trajectories = append(d.trajectories, append([]mgl64.Vec3(nil), points...))
	if d.MaxTrajectories > 0 && len(d.trajectories) > d.MaxTrajectories {
		d.trajectories = d.trajectories[len(d.trajectories)-d.MaxTrajectories:]
	}
}

func (d *DebugOverlay) AddMarker(point, normal mgl64.Vec3) {
	d.markers = append(d.markers, marker{point: point, normal: normal})
	if d.MaxMarkers > 0 && len(d.markers) > d.MaxMarkers {
		d.markers = d.markers[len(d.markers)-d.MaxMarkers:]
	}
}

// Clear drops every tracked collider, trajectory and marker.
func (d *DebugOverlay) Clear() {
	d.tracked = nil
	d.trajectories = nil
	d.markers = nil
}

func (d *DebugOverlay) Draw(dst *ebiten.Image, cam *Camera) {
	if !d.visible {
		return
	}
	for _, b := range d.tracked {
		if b.Removed() {
			continue
		}
		for _, s := range WireSegments(b.Shape(), b.Position(), b.Rotation()) {
			drawSegment(dst, cam, s, d.ColliderColor)
		}
	}
	for _, t := range d.trajectories {
		for i := 1; i < len(t); i++ {
			drawSegment(dst, cam, Segment{t[i-1], t[i]}, d.TrajectoryColor)
		}
	}
	for _, m := range d.markers {
		for _, s := range axisMarker(m.point, 0.08) {
			drawSegment(dst, cam, s, d.MarkerColor)
		}
		drawSegment(dst, cam, Segment{m.point, m.point.Add(m.normal.Mul(0.3))}, d.MarkerColor)
	}
}

func drawSegment(dst *ebiten.Image, cam *Camera, s Segment, clr color.RGBA) {
	a, b, ok := cam.clipSegment(cam.ToView(s[0]), cam.ToView(s[1]))
	if !ok {
		return
	}
	x0, y0 := cam.ViewToScreen(a)
	x1, y1 := cam.ViewToScreen(b)
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1.5, clr, true)
}

// WireSegments approximates a collider with lines: boxes and ramps by their
// edges, spheres by three rings, capsules by end rings joined by rails.
// Anything else gets an axis marker.
func WireSegments(shape physics.ShapeDesc, pos mgl64.Vec3, rot mgl64.Quat) []Segment {
	var local []Segment
	switch shape.Kind {
	case physics.ShapeBox:
		local = boxEdges(shape.HalfExtents)
	case physics.ShapeRamp:
		local = rampEdges(shape.HalfExtents)
	case physics.ShapeSphere:
		r := shape.Radius
		local = append(local, ring(mgl64.Vec3{}, r, 0)...)
		local = append(local, ring(mgl64.Vec3{}, r, 1)...)
		local = append(local, ring(mgl64.Vec3{}, r, 2)...)
	case physics.ShapeCapsule:
		r, hh := shape.Radius, shape.HalfHeight
		top, bottom := mgl64.Vec3{0, hh, 0}, mgl64.Vec3{0, -hh, 0}
		local = append(local, ring(top, r, 1)...)
		local = append(local, ring(bottom, r, 1)...)
		for _, o := range []mgl64.Vec3{{r, 0, 0}, {-r, 0, 0}, {0, 0, r}, {0, 0, -r}} {
			local = append(local, Segment{top.Add(o), bottom.Add(o)})
		}
	default:
		return axisMarker(pos, 0.5)
	}
	out := make([]Segment, len(local))
	for i, s := range local {
		out[i] = Segment{pos.Add(rot.Rotate(s[0])), pos.Add(rot.Rotate(s[1]))}
	}
	return out
}

func axisMarker(p mgl64.Vec3, size float64) []Segment {
	return []Segment{
		{p.Sub(mgl64.Vec3{size, 0, 0}), p.Add(mgl64.Vec3{size, 0, 0})},
		{p.Sub(mgl64.Vec3{0, size, 0}), p.Add(mgl64.Vec3{0, size, 0})},
		{p.Sub(mgl64.Vec3{0, 0, size}), p.Add(mgl64.Vec3{0, 0, size})},
	}
}

func boxEdges(h mgl64.Vec3) []Segment {
	c := func(sx, sy, sz float64) mgl64.Vec3 { return mgl64.Vec3{sx * h.X(), sy * h.Y(), sz * h.Z()} }
	var out []Segment
	for _, sy := range []float64{-1, 1} {
		out = append(out,
			Segment{c(-1, sy, -1), c(1, sy, -1)},
			Segment{c(1, sy, -1), c(1, sy, 1)},
			Segment{c(1, sy, 1), c(-1, sy, 1)},
			Segment{c(-1, sy, 1), c(-1, sy, -1)},
		)
	}
	for _, sx := range []float64{-1, 1} {
		for _, sz := range []float64{-1, 1} {
			out = append(out, Segment{c(sx, -1, sz), c(sx, 1, sz)})
		}
	}
	return out
}

func rampEdges(h mgl64.Vec3) []Segment {
	x, y, z := h.X(), h.Y(), h.Z()
	lowN, lowF := mgl64.Vec3{-x, -y, z}, mgl64.Vec3{-x, -y, -z}
	bn, bf := mgl64.Vec3{x, -y, z}, mgl64.Vec3{x, -y, -z}
	tn, tf := mgl64.Vec3{x, y, z}, mgl64.Vec3{x, y, -z}
	return []Segment{
		{lowN, lowF}, {lowN, bn}, {lowF, bf}, {bn, bf},
		{bn, tn}, {bf, tf}, {tn, tf},
		{lowN, tn}, {lowF, tf},
	}
}

// ring is a circle around center in the plane normal to axis 0 (X), 1 (Y) or 2 (Z).
func ring(center mgl64.Vec3, r float64, axis int) []Segment {
	point := func(i int) mgl64.Vec3 {
		a := 2 * math.Pi * float64(i) / ringSegments
		u, v := r*math.Cos(a), r*math.Sin(a)
		switch axis {
		case 0:
			return center.Add(mgl64.Vec3{0, u, v})
		case 1:
			return center.Add(mgl64.Vec3{u, 0, v})
		default:
			return center.Add(mgl64.Vec3{u, v, 0})
		}
	}
	out := make([]Segment, 0, ringSegments)
	for i := 0; i < ringSegments; i++ {
		out = append(out, Segment{point(i), point(i + 1)})
	}
	return out
}
