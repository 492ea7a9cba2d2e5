package system

import (
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/physics"
)

// PhysicsSystem advances the physics world by a fixed step each frame.
type PhysicsSystem struct {
	World *physics.World
	DT    float64
}

func NewPhysicsSystem(world *physics.World, dt float64) *PhysicsSystem {
	return &PhysicsSystem{World: world, DT: dt}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil || s.World == nil {
		return
	}
	s.World.Step(s.DT)
}
