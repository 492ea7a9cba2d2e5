package system

import (
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/ecs/entity"
	"github.com/milk9111/fpsdemo/weapon"
	"github.com/rs/zerolog/log"
)

// WeaponSystem fires player weapons from the eye along the look direction
// and advances their shots. Shots are mirrored by tracer entities.
type WeaponSystem struct {
	DT float64

	visuals map[*ecs.World]*tracerVisuals
}

func NewWeaponSystem(dt float64) *WeaponSystem {
	return &WeaponSystem{DT: dt, visuals: make(map[*ecs.World]*tracerVisuals)}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	vis := s.visualsFor(w)

	ecs.ForEach2(w, component.PlayerComponent, component.InputComponent, func(_ ecs.Entity, player *component.Player, input *component.Input) {
		if player == nil || player.Weapon == nil || player.Controller == nil || input == nil {
			return
		}
		player.Weapon.SetVisuals(vis)

		if input.Fire {
			if shot, ok := player.Weapon.Fire(player.Controller.EyePosition(), player.Controller.LookDirection()); ok {
				w.Events().Push(ecs.Event{Type: ecs.EventShotFired, Data: shot})
				ecs.ForEach(w, component.GunComponent, func(_ ecs.Entity, gun *component.Gun) {
					if gun.View != nil {
						gun.View.Kick()
					}
				})
			}
		}

		for _, hit := range player.Weapon.Update(s.DT) {
			w.Events().Push(ecs.Event{Type: ecs.EventShotHit, Data: hit})
		}
	})
}

func (s *WeaponSystem) visualsFor(w *ecs.World) *tracerVisuals {
	if s.visuals == nil {
		s.visuals = make(map[*ecs.World]*tracerVisuals)
	}
	v := s.visuals[w]
	if v == nil {
		v = &tracerVisuals{world: w, tracers: make(map[uint64]ecs.Entity)}
		s.visuals[w] = v
	}
	return v
}

// tracerVisuals keeps one tracer entity per live shot.
type tracerVisuals struct {
	world   *ecs.World
	tracers map[uint64]ecs.Entity
}

func (v *tracerVisuals) Spawn(shot *weapon.Shot) {
	e, err := entity.NewTracer(v.world, shot)
	if err != nil {
		log.Debug().Err(err).Uint64("shot", shot.ID).Msg("tracer not spawned")
		return
	}
	v.tracers[shot.ID] = e
}

func (v *tracerVisuals) Move(shot *weapon.Shot) {
	e, ok := v.tracers[shot.ID]
	if !ok {
		return
	}
	if t, ok := ecs.Get(v.world, e, component.TransformComponent); ok {
		t.Position = shot.Position
	}
}

func (v *tracerVisuals) Release(shot *weapon.Shot) {
	if e, ok := v.tracers[shot.ID]; ok {
		v.world.DestroyEntity(e)
		delete(v.tracers, shot.ID)
	}
	v.world.Events().Push(ecs.Event{Type: ecs.EventShotEnded, Data: shot})
}
