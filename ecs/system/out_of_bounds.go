package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/rs/zerolog/log"
)

// OutOfBoundsSystem returns cubes that fell below KillY to their spawn pose,
// at rest.
type OutOfBoundsSystem struct {
	KillY float64
}

func NewOutOfBoundsSystem(killY float64) *OutOfBoundsSystem {
	return &OutOfBoundsSystem{KillY: killY}
}

func (s *OutOfBoundsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.CubeComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		cube, _ := ecs.Get(w, e, component.CubeComponent)
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if cube == nil || pb == nil || pb.Body == nil || pb.Body.Removed() {
			continue
		}
		if pb.Body.Position().Y() >= s.KillY {
			continue
		}

		pb.Body.SetPosition(cube.Spawn)
		pb.Body.SetYaw(cube.SpawnYaw)
		pb.Body.SetLinearVelocity(mgl64.Vec3{})
		pb.Body.SetAngularVelocity(0)
		cube.Resets++
		w.Events().Push(ecs.Event{Type: ecs.EventCubeReset, Data: e})
		log.Debug().Object("cube", e).Int("resets", cube.Resets).Msg("cube fell out of bounds")
	}
}
