package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/render"
)

// RenderSystem draws the world from the player's eyes: sky, meshes, the gun,
// the debug overlay and the HUD, in that order.
type RenderSystem struct {
	DT float64

	Camera   *render.Camera
	Renderer *render.Renderer
	Sky      *render.Sky
	HUD      *render.HUD
	Overlay  *render.DebugOverlay

	playerEntity ecs.Entity
}

func NewRenderSystem(dt float64, cam *render.Camera, sky *render.Sky, hud *render.HUD, overlay *render.DebugOverlay) *RenderSystem {
	return &RenderSystem{
		DT:       dt,
		Camera:   cam,
		Renderer: render.NewRenderer(),
		Sky:      sky,
		HUD:      hud,
		Overlay:  overlay,
	}
}

// Update advances the gun animations.
func (r *RenderSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.GunComponent, func(_ ecs.Entity, gun *component.Gun) {
		if gun.View != nil {
			gun.View.Update(r.DT)
		}
	})
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || r.Camera == nil {
		return
	}

	player := r.player(w)
	cam := r.Camera
	b := screen.Bounds()
	cam.Width, cam.Height = b.Dx(), b.Dy()
	if player != nil && player.Controller != nil {
		cam.Position = player.Controller.EyePosition()
		cam.Yaw = player.Controller.Yaw()
		cam.Pitch = player.Controller.Pitch()
	}
	cam.Update()

	if r.Sky != nil {
		r.Sky.Draw(screen, cam)
	}

	r.Renderer.Begin()
	for _, e := range w.Query(component.MeshComponent.Kind(), component.TransformComponent.Kind()) {
		mesh, _ := ecs.Get(w, e, component.MeshComponent)
		t, _ := ecs.Get(w, e, component.TransformComponent)
		if mesh == nil || t == nil || mesh.Hidden {
			continue
		}
		r.Renderer.Submit(cam, render.Instance{
			Geometry: mesh.Geometry,
			Position: t.Position,
			Rotation: t.Rotation,
			Color:    mesh.Color,
			Unlit:    mesh.Unlit,
		})
	}
	r.Renderer.Flush(screen)

	// The gun is drawn after the world so it never sinks into walls.
	r.Renderer.Begin()
	ecs.ForEach(w, component.GunComponent, func(_ ecs.Entity, gun *component.Gun) {
		if gun.View != nil {
			r.Renderer.Submit(cam, gun.View.Instance(cam))
		}
	})
	r.Renderer.Flush(screen)

	if r.Overlay != nil {
		r.Overlay.Draw(screen, cam)
	}
	if r.HUD != nil {
		r.HUD.Draw(screen, r.stats(player))
	}
}

func (r *RenderSystem) player(w *ecs.World) *component.Player {
	if !w.IsAlive(r.playerEntity) || !ecs.Has(w, r.playerEntity, component.PlayerComponent) {
		e, ok := w.First(component.PlayerComponent.Kind())
		if !ok {
			return nil
		}
		r.playerEntity = e
	}
	p, _ := ecs.Get(w, r.playerEntity, component.PlayerComponent)
	return p
}

func (r *RenderSystem) stats(player *component.Player) render.HUDStats {
	var s render.HUDStats
	if r.Overlay != nil {
		s.Overlay = r.Overlay.Visible()
	}
	if player == nil || player.Controller == nil {
		return s
	}
	c := player.Controller
	s.State = c.State().String()
	s.Speed = c.HorizontalSpeed()
	p := c.Position()
	s.Position = [3]float64{p.X(), p.Y(), p.Z()}
	if player.Weapon != nil {
		s.Shots = len(player.Weapon.Shots())
	}
	return s
}
