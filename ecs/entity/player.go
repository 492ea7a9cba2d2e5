package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/controller"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/milk9111/fpsdemo/weapon"
)

// PlayerTuning is the part of the game tuning a player needs at creation.
type PlayerTuning struct {
	Controller controller.Config
	Push       controller.PushConfig
	Weapon     weapon.Config
	Seed       uint64
}

// NewPlayer creates the kinematic player capsule with its controller, pusher
// and weapon. spec.Spawn is the position of the player's feet.
func NewPlayer(w *ecs.World, pw *physics.World, spec prefabs.PlayerSpec, tuning PlayerTuning) (ecs.Entity, error) {
	if w == nil || pw == nil {
		return 0, fmt.Errorf("player: world is nil")
	}
	shape := physics.Capsule(spec.HalfHeight, spec.Radius)
	ent := w.CreateEntity()
	body := pw.CreateBody(physics.BodyDesc{
		Type:     physics.BodyKinematic,
		Shape:    shape,
		Position: spec.Spawn.Add(mgl64.Vec3{0, shape.VerticalHalfExtent(), 0}),
		Yaw:      spec.Yaw,
		UserData: ent,
	})

	mover := physics.NewCharacterController(pw, tuning.Controller.Character)
	ctrl := controller.NewFPSController(body, mover, tuning.Controller)
	ctrl.SetLook(spec.Yaw, 0)
	player := &component.Player{
		Controller: ctrl,
		Pusher:     controller.NewPusher(tuning.Push),
		Weapon:     weapon.NewManager(pw, body, nil, tuning.Weapon, tuning.Seed),
	}

	if err := ecs.Add(w, ent, component.PhysicsBodyComponent, &component.PhysicsBody{Body: body}); err != nil {
		destroy(w, pw, ent, body)
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, ent, component.TransformComponent, &component.Transform{Position: body.Position(), Rotation: body.Rotation()}); err != nil {
		destroy(w, pw, ent, body)
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, ent, component.PlayerComponent, player); err != nil {
		destroy(w, pw, ent, body)
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, ent, component.InputComponent, &component.Input{}); err != nil {
		destroy(w, pw, ent, body)
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, ent, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
		destroy(w, pw, ent, body)
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	return ent, nil
}
