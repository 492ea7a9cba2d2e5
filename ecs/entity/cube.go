package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/physics"
)

// NewCube creates a dynamic box that remembers where it spawned.
func NewCube(w *ecs.World, pw *physics.World, pos mgl64.Vec3, halfExtent, mass float64, clr color.RGBA) (ecs.Entity, error) {
	ent, _, err := newBodyEntity(w, pw, physics.BodyDesc{
		Type:        physics.BodyDynamic,
		Shape:       physics.Box(mgl64.Vec3{halfExtent, halfExtent, halfExtent}),
		Position:    pos,
		Mass:        mass,
		Friction:    0.6,
		Restitution: 0.2,
	}, clr)
	if err != nil {
		return 0, fmt.Errorf("cube: %w", err)
	}
	if err := ecs.Add(w, ent, component.CubeComponent, &component.Cube{Spawn: pos}); err != nil {
		return 0, fmt.Errorf("cube: add cube: %w", err)
	}
	return ent, nil
}
