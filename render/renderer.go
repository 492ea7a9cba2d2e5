package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Instance places a geometry in the world for one frame.
type Instance struct {
	Geometry *Geometry
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Color    color.RGBA
	// Unlit skips shading, for things like tracers.
	Unlit bool
}

type polygon struct {
	xs, ys []float32
	depth  float64
	color  color.RGBA
}

// Renderer draws flat-shaded convex faces back to front.
type Renderer struct {
	Light   mgl64.Vec3
	Ambient float64

	polys []polygon
	view  []mgl64.Vec3
	clip  []mgl64.Vec3
	white *ebiten.Image
}

func NewRenderer() *Renderer {
	return &Renderer{
		Light:   mgl64.Vec3{0.4, 1, 0.3}.Normalize(),
		Ambient: 0.35,
	}
}

// Begin drops the faces queued for the previous frame.
func (r *Renderer) Begin() {
	r.polys = r.polys[:0]
}

// Len is the number of faces queued.
func (r *Renderer) Len() int { return len(r.polys) }

// Submit queues the visible faces of inst.
func (r *Renderer) Submit(cam *Camera, inst Instance) {
	if inst.Geometry == nil {
		return
	}
	rot := inst.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	for _, f := range inst.Geometry.Faces {
		if len(f.Vertices) < 3 {
			continue
		}
		n := rot.Rotate(f.Normal)
		world0 := inst.Position.Add(rot.Rotate(f.Vertices[0]))
		if n.Dot(cam.Position.Sub(world0)) <= 0 {
			continue
		}

		r.view = r.view[:0]
		for _, v := range f.Vertices {
			r.view = append(r.view, cam.ToView(inst.Position.Add(rot.Rotate(v))))
		}
		r.clip = cam.clipNear(r.view, r.clip)
		if len(r.clip) < 3 {
			continue
		}

		p := polygon{
			xs: make([]float32, len(r.clip)),
			ys: make([]float32, len(r.clip)),
		}
		for i, v := range r.clip {
			x, y := cam.ViewToScreen(v)
			p.xs[i], p.ys[i] = float32(x), float32(y)
			p.depth += -v.Z()
		}
		p.depth /= float64(len(r.clip))

		shade := 1.0
		if !inst.Unlit {
			shade = r.Ambient + (1-r.Ambient)*math.Max(0, n.Dot(r.Light))
		}
		tint := f.Tint
		if tint == 0 {
			tint = 1
		}
		p.color = scale(inst.Color, shade*tint)
		r.polys = append(r.polys, p)
	}
}

// Flush draws the queued faces, farthest first.
func (r *Renderer) Flush(dst *ebiten.Image) {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	sort.SliceStable(r.polys, func(i, j int) bool { return r.polys[i].depth > r.polys[j].depth })
	for _, p := range r.polys {
		fillConvexPolygon(dst, r.white, p.xs, p.ys, p.color)
	}
}

func fillConvexPolygon(dst, src *ebiten.Image, xs, ys []float32, clr color.RGBA) {
	if len(xs) < 3 {
		return
	}
	indices := make([]uint16, 0, (len(xs)-2)*3)
	for i := 2; i < len(xs); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}
	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255
	vertices := make([]ebiten.Vertex, len(xs))
	for i := range xs {
		vertices[i] = ebiten.Vertex{
			DstX:   xs[i],
			DstY:   ys[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.FillRule = ebiten.FillAll
	dst.DrawTriangles(vertices, indices, src, op)
}

func scale(c color.RGBA, k float64) color.RGBA {
	f := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Max(0, float64(v)*k)))
	}
	return color.RGBA{R: f(c.R), G: f(c.G), B: f(c.B), A: c.A}
}
