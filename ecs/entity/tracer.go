package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/render"
	"github.com/milk9111/fpsdemo/weapon"
	"golang.org/x/image/colornames"
)

var tracerGeometry = render.SphereGeometry(0.04, 6, 4)

// NewTracer creates the visible stand-in for shot. It has no body.
func NewTracer(w *ecs.World, shot *weapon.Shot) (ecs.Entity, error) {
	if w == nil || shot == nil {
		return 0, fmt.Errorf("tracer: world or shot is nil")
	}
	ent := w.CreateEntity()
	if err := ecs.Add(w, ent, component.TracerComponent, &component.Tracer{Shot: shot}); err != nil {
		w.DestroyEntity(ent)
		return 0, fmt.Errorf("tracer: add tracer: %w", err)
	}
	if err := ecs.Add(w, ent, component.TransformComponent, &component.Transform{Position: shot.Position, Rotation: mgl64.QuatIdent()}); err != nil {
		w.DestroyEntity(ent)
		return 0, fmt.Errorf("tracer: add transform: %w", err)
	}
	if err := ecs.Add(w, ent, component.MeshComponent, &component.Mesh{Geometry: tracerGeometry, Color: colornames.Yellow, Unlit: true}); err != nil {
		w.DestroyEntity(ent)
		return 0, fmt.Errorf("tracer: add mesh: %w", err)
	}
	return ent, nil
}
