package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var up = mgl64.Vec3{0, 1, 0}

// Camera is a first-person perspective camera. Yaw 0 looks down -Z and
// positive pitch looks up.
type Camera struct {
	Position   mgl64.Vec3
	Yaw, Pitch float64
	FovY       float64
	Near, Far  float64
	Width      int
	Height     int

	view, proj mgl64.Mat4
}

func NewCamera(fovYDeg float64, width, height int) *Camera {
	c := &Camera{
		FovY:   mgl64.DegToRad(fovYDeg),
		Near:   0.05,
		Far:    500,
		Width:  width,
		Height: height,
	}
	c.Update()
	return c
}

func (c *Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{-math.Sin(c.Yaw) * cp, math.Sin(c.Pitch), -math.Cos(c.Yaw) * cp}
}

func (c *Camera) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(c.Yaw), 0, -math.Sin(c.Yaw)}
}

func (c *Camera) Up() mgl64.Vec3 {
	return c.Right().Cross(c.Forward())
}

// Orientation rotates local -Z onto the view direction.
func (c *Camera) Orientation() mgl64.Quat {
	return mgl64.QuatRotate(c.Yaw, up).Mul(mgl64.QuatRotate(c.Pitch, mgl64.Vec3{1, 0, 0}))
}

// Update recomputes the matrices; call it after moving the camera.
func (c *Camera) Update() {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	c.view = mgl64.LookAtV(c.Position, c.Position.Add(c.Forward()), up)
	c.proj = mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ToView transforms a world point into view space, where the camera looks
// down -Z.
func (c *Camera) ToView(p mgl64.Vec3) mgl64.Vec3 {
	return c.view.Mul4x1(p.Vec4(1)).Vec3()
}

// ViewToScreen projects a view-space point in front of the near plane.
func (c *Camera) ViewToScreen(v mgl64.Vec3) (x, y float64) {
	clip := c.proj.Mul4x1(v.Vec4(1))
	w := clip.W()
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	return (ndcX + 1) / 2 * float64(c.Width), (1 - ndcY) / 2 * float64(c.Height)
}

// Project maps a world point to screen pixels. ok is false behind the near plane.
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	v := c.ToView(p)
	if -v.Z() < c.Near {
		return 0, 0, 0, false
	}
	x, y = c.ViewToScreen(v)
	return x, y, -v.Z(), true
}

// HorizonY is the screen row of the horizon for the current pitch.
func (c *Camera) HorizonY() float64 {
	half := float64(c.Height) / 2
	focal := half / math.Tan(c.FovY/2)
	return half + math.Tan(c.Pitch)*focal
}

// clipNear clips a view-space polygon to the part in front of the near plane.
func (c *Camera) clipNear(poly []mgl64.Vec3, out []mgl64.Vec3) []mgl64.Vec3 {
	out = out[:0]
	inside := func(v mgl64.Vec3) bool { return -v.Z() >= c.Near }
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		ain, bin := inside(a), inside(b)
		if ain {
			out = append(out, a)
		}
		if ain != bin {
			t := (-c.Near - a.Z()) / (b.Z() - a.Z())
			out = append(out, a.Add(b.Sub(a).Mul(t)))
		}
	}
	return out
}

// clipSegment clips a view-space segment to the near plane.
func (c *Camera) clipSegment(a, b mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, bool) {
	ain, bin := -a.Z() >= c.Near, -b.Z() >= c.Near
	switch {
	case ain && bin:
		return a, b, true
	case !ain && !bin:
		return a, b, false
	}
	t := (-c.Near - a.Z()) / (b.Z() - a.Z())
	p := a.Add(b.Sub(a).Mul(t))
	if ain {
		return a, p, true
	}
	return p, b, true
}
