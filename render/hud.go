package render

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

// HUDStats is what the HUD shows besides the crosshair.
type HUDStats struct {
	State    string
	Speed    float64
	Shots    int
	Overlay  bool
	Position [3]float64
}

type HUD struct {
	face *text.GoTextFace
}

func NewHUD() (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("render: load hud font: %w", err)
	}
	return &HUD{face: &text.GoTextFace{Source: src, Size: 14}}, nil
}

func (h *HUD) Draw(dst *ebiten.Image, stats HUDStats) {
	w, ht := dst.Bounds().Dx(), dst.Bounds().Dy()
	cx, cy := float32(w)/2, float32(ht)/2
	vector.StrokeLine(dst, cx-8, cy, cx-3, cy, 2, colornames.White, true)
	vector.StrokeLine(dst, cx+3, cy, cx+8, cy, 2, colornames.White, true)
	vector.StrokeLine(dst, cx, cy-8, cx, cy-3, 2, colornames.White, true)
	vector.StrokeLine(dst, cx, cy+3, cx, cy+8, 2, colornames.White, true)

	if h == nil || h.face == nil {
		return
	}
	lines := []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("state %s  speed %.2f", stats.State, stats.Speed),
		fmt.Sprintf("pos %.2f %.2f %.2f  shots %d", stats.Position[0], stats.Position[1], stats.Position[2], stats.Shots),
	}
	if stats.Overlay {
		lines = append(lines, "debug overlay on (F3 toggle, F4 clear)")
	}
	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, 10+float64(i)*18)
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(dst, l, h.face, op)
	}
}
