package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// GunView is the first-person gun model held in front of the camera.
type GunView struct {
	Geometry *Geometry
	Color    color.RGBA
	// Offset is the gun's resting position in camera space (x right, y up, -z forward).
	Offset   mgl64.Vec3
	KickBack float64

	recoil *gween.Tween
	kick   float32
}

func NewGunView() *GunView {
	g := &Geometry{}
	g.Merge(BoxGeometry(mgl64.Vec3{0.04, 0.05, 0.22}), mgl64.Vec3{})
	g.Merge(BoxGeometry(mgl64.Vec3{0.035, 0.09, 0.04}), mgl64.Vec3{0, -0.11, 0.12})
	g.Merge(CylinderGeometry(0.02, 0.01, 8), mgl64.Vec3{0, 0.02, -0.23})
	return &GunView{
		Geometry: g,
		Color:    color.RGBA{R: 60, G: 62, B: 70, A: 255},
		Offset:   mgl64.Vec3{0.22, -0.2, -0.45},
		KickBack: 0.08,
	}
}

// Kick starts the recoil animation.
func (g *GunView) Kick() {
	g.recoil = gween.New(1, 0, 0.18, ease.OutCubic)
	g.kick = 1
}

func (g *GunView) Update(dt float64) {
	if g.recoil == nil {
		return
	}
	v, done := g.recoil.Update(float32(dt))
	g.kick = v
	if done {
		g.recoil = nil
		g.kick = 0
	}
}

// Recoil is the current kick in [0, 1].
func (g *GunView) Recoil() float64 { return float64(g.kick) }

// Instance places the gun relative to cam.
func (g *GunView) Instance(cam *Camera) Instance {
	rot := cam.Orientation()
	local := g.Offset.Add(mgl64.Vec3{0, 0.3 * g.KickBack * float64(g.kick), g.KickBack * float64(g.kick)})
	return Instance{
		Geometry: g.Geometry,
		Position: cam.Position.Add(rot.Rotate(local)),
		Rotation: rot.Mul(mgl64.QuatRotate(0.15*float64(g.kick), mgl64.Vec3{1, 0, 0})),
		Color:    g.Color,
	}
}
