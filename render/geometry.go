package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a convex planar polygon in local space.
type Face struct {
	Vertices []mgl64.Vec3
	Normal   mgl64.Vec3
	// Tint scales the instance color, which gives planes their checker.
	Tint float64
}

type Geometry struct {
	Faces []Face
}

func quad(a, b, c, d, n mgl64.Vec3) Face {
	return Face{Vertices: []mgl64.Vec3{a, b, c, d}, Normal: n, Tint: 1}
}

func BoxGeometry(h mgl64.Vec3) *Geometry {
	x, y, z := h.X(), h.Y(), h.Z()
	v := func(sx, sy, sz float64) mgl64.Vec3 { return mgl64.Vec3{sx * x, sy * y, sz * z} }
	return &Geometry{Faces: []Face{
		quad(v(-1, 1, -1), v(-1, 1, 1), v(1, 1, 1), v(1, 1, -1), mgl64.Vec3{0, 1, 0}),
		quad(v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1), v(-1, -1, 1), mgl64.Vec3{0, -1, 0}),
		quad(v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1), mgl64.Vec3{0, 0, 1}),
		quad(v(1, -1, -1), v(-1, -1, -1), v(-1, 1, -1), v(1, 1, -1), mgl64.Vec3{0, 0, -1}),
		quad(v(1, -1, 1), v(1, -1, -1), v(1, 1, -1), v(1, 1, 1), mgl64.Vec3{1, 0, 0}),
		quad(v(-1, -1, -1), v(-1, -1, 1), v(-1, 1, 1), v(-1, 1, -1), mgl64.Vec3{-1, 0, 0}),
	}}
}

// RampGeometry is a wedge whose top rises along +X, matching physics.Ramp.
func RampGeometry(h mgl64.Vec3) *Geometry {
	x, y, z := h.X(), h.Y(), h.Z()
	lowN, lowF := mgl64.Vec3{-x, -y, z}, mgl64.Vec3{-x, -y, -z}
	bn, bf := mgl64.Vec3{x, -y, z}, mgl64.Vec3{x, -y, -z}
	tn, tf := mgl64.Vec3{x, y, z}, mgl64.Vec3{x, y, -z}
	slope := mgl64.Vec3{-2 * y, 2 * x, 0}.Normalize()
	return &Geometry{Faces: []Face{
		quad(lowF, lowN, tn, tf, slope),
		quad(lowF, bf, bn, lowN, mgl64.Vec3{0, -1, 0}),
		quad(bn, bf, tf, tn, mgl64.Vec3{1, 0, 0}),
		{Vertices: []mgl64.Vec3{lowN, bn, tn}, Normal: mgl64.Vec3{0, 0, 1}, Tint: 1},
		{Vertices: []mgl64.Vec3{bf, lowF, tf}, Normal: mgl64.Vec3{0, 0, -1}, Tint: 1},
	}}
}

// PlaneGeometry is the top of a box split into a tiles x tiles checkerboard.
// The tiles keep painter's sorting stable against small objects.
func PlaneGeometry(h mgl64.Vec3, tiles int) *Geometry {
	tiles = max(tiles, 1)
	g := &Geometry{}
	sx := 2 * h.X() / float64(tiles)
	sz := 2 * h.Z() / float64(tiles)
	for i := 0; i < tiles; i++ {
		for j := 0; j < tiles; j++ {
			x0 := -h.X() + float64(i)*sx
			z0 := -h.Z() + float64(j)*sz
			f := quad(
				mgl64.Vec3{x0, h.Y(), z0},
				mgl64.Vec3{x0, h.Y(), z0 + sz},
				mgl64.Vec3{x0 + sx, h.Y(), z0 + sz},
				mgl64.Vec3{x0 + sx, h.Y(), z0},
				mgl64.Vec3{0, 1, 0},
			)
			if (i+j)%2 == 1 {
				f.Tint = 0.85
			}
			g.Faces = append(g.Faces, f)
		}
	}
	return g
}

// SphereGeometry is a UV sphere with flat faces.
func SphereGeometry(radius float64, segments, rings int) *Geometry {
	segments = max(segments, 3)
	rings = max(rings, 2)
	point := func(ring, seg int) mgl64.Vec3 {
		theta := math.Pi * float64(ring) / float64(rings)
		phi := 2 * math.Pi * float64(seg) / float64(segments)
		return mgl64.Vec3{
			radius * math.Sin(theta) * math.Cos(phi),
			radius * math.Cos(theta),
			radius * math.Sin(theta) * math.Sin(phi),
		}
	}
	g := &Geometry{}
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a, b := point(r, s), point(r, s+1)
			c, d := point(r+1, s+1), point(r+1, s)
			var verts []mgl64.Vec3
			switch r {
			case 0:
				verts = []mgl64.Vec3{a, c, d}
			case rings - 1:
				verts = []mgl64.Vec3{a, b, d}
			default:
				verts = []mgl64.Vec3{a, b, c, d}
			}
			center := mgl64.Vec3{}
			for _, v := range verts {
				center = center.Add(v)
			}
			g.Faces = append(g.Faces, Face{Vertices: verts, Normal: center.Normalize(), Tint: 1})
		}
	}
	return g
}

// CylinderGeometry is an upright cylinder of the given half height.
func CylinderGeometry(radius, halfHeight float64, segments int) *Geometry {
	segments = max(segments, 3)
	g := &Geometry{}
	top := make([]mgl64.Vec3, 0, segments)
	bottom := make([]mgl64.Vec3, 0, segments)
	for s := 0; s < segments; s++ {
		phi0 := 2 * math.Pi * float64(s) / float64(segments)
		phi1 := 2 * math.Pi * float64(s+1) / float64(segments)
		p0 := mgl64.Vec3{radius * math.Cos(phi0), 0, radius * math.Sin(phi0)}
		p1 := mgl64.Vec3{radius * math.Cos(phi1), 0, radius * math.Sin(phi1)}
		mid := (phi0 + phi1) / 2
		n := mgl64.Vec3{math.Cos(mid), 0, math.Sin(mid)}
		g.Faces = append(g.Faces, quad(
			p0.Add(mgl64.Vec3{0, -halfHeight, 0}),
			p1.Add(mgl64.Vec3{0, -halfHeight, 0}),
			p1.Add(mgl64.Vec3{0, halfHeight, 0}),
			p0.Add(mgl64.Vec3{0, halfHeight, 0}),
			n,
		))
		top = append(top, p0.Add(mgl64.Vec3{0, halfHeight, 0}))
		bottom = append(bottom, p0.Add(mgl64.Vec3{0, -halfHeight, 0}))
	}
	g.Faces = append(g.Faces,
		Face{Vertices: top, Normal: mgl64.Vec3{0, 1, 0}, Tint: 1},
		Face{Vertices: bottom, Normal: mgl64.Vec3{0, -1, 0}, Tint: 1},
	)
	return g
}

// Merge appends the faces of o moved by offset.
func (g *Geometry) Merge(o *Geometry, offset mgl64.Vec3) *Geometry {
	for _, f := range o.Faces {
		verts := make([]mgl64.Vec3, len(f.Vertices))
		for i, v := range f.Vertices {
			verts[i] = v.Add(offset)
		}
		g.Faces = append(g.Faces, Face{Vertices: verts, Normal: f.Normal, Tint: f.Tint})
	}
	return g
}
