package system

import (
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/physics"
)

// PushSystem lets players shove the dynamic bodies around them.
type PushSystem struct {
	World *physics.World
}

func NewPushSystem(world *physics.World) *PushSystem {
	return &PushSystem{World: world}
}

func (s *PushSystem) Update(w *ecs.World) {
	if w == nil || s.World == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent, func(e ecs.Entity, player *component.Player) {
		if player.Pusher == nil || player.Controller == nil {
			return
		}
		player.Pusher.Update(s.World, player.Controller)
	})
}
