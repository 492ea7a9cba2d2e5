package system

import (
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
)

// PlayerControllerSystem feeds each player's polled input to its controller.
type PlayerControllerSystem struct {
	DT float64
}

func NewPlayerControllerSystem(dt float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{DT: dt}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent, component.InputComponent, func(_ ecs.Entity, player *component.Player, input *component.Input) {
		if player == nil || player.Controller == nil || input == nil {
			return
		}
		player.Controller.Update(p.DT, input.Input)
	})
}
