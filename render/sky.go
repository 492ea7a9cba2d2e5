package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// Sky paints a vertical gradient that follows the horizon.
type Sky struct {
	Zenith  color.RGBA
	Horizon color.RGBA
	Ground  color.RGBA

	white *ebiten.Image
}

func NewSky() *Sky {
	return &Sky{
		Zenith:  colornames.Steelblue,
		Horizon: colornames.Lightskyblue,
		Ground:  colornames.Darkslategray,
	}
}

func (s *Sky) Draw(dst *ebiten.Image, cam *Camera) {
	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	w := float32(cam.Width)
	h := float32(cam.Height)
	horizon := float32(cam.HorizonY())

	s.band(dst, w, float32(min(0, horizon-h)), horizon, s.Zenith, s.Horizon)
	s.band(dst, w, horizon, float32(max(h, horizon+h)), s.Horizon, s.Ground)
}

func (s *Sky) band(dst *ebiten.Image, w, y0, y1 float32, top, bottom color.RGBA) {
	if y1 <= y0 {
		return
	}
	vtx := func(x, y float32, c color.RGBA) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: x, DstY: y, SrcX: 1, SrcY: 1,
			ColorR: float32(c.R) / 255, ColorG: float32(c.G) / 255,
			ColorB: float32(c.B) / 255, ColorA: float32(c.A) / 255,
		}
	}
	vertices := []ebiten.Vertex{
		vtx(0, y0, top), vtx(w, y0, top),
		vtx(w, y1, bottom), vtx(0, y1, bottom),
	}
	dst.DrawTriangles(vertices, []uint16{0, 1, 2, 0, 2, 3}, s.white, &ebiten.DrawTrianglesOptions{})
}
