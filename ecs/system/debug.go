package system

import (
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/render"
	"github.com/milk9111/fpsdemo/weapon"
)

// DebugSystem keeps the debug overlay in step with the world: it tracks new
// colliders, drops removed ones, and records hit markers and finished shot
// trajectories. F3 toggles the overlay and F4 clears it. A cleared collider
// stays cleared; only bodies created afterwards are tracked again.
type DebugSystem struct {
	Overlay *render.DebugOverlay

	seen map[ecs.Entity]bool
}

func NewDebugSystem(overlay *render.DebugOverlay) *DebugSystem {
	return &DebugSystem{Overlay: overlay, seen: make(map[ecs.Entity]bool)}
}

func (s *DebugSystem) Update(w *ecs.World) {
	if w == nil || s.Overlay == nil {
		return
	}
	if s.seen == nil {
		s.seen = make(map[ecs.Entity]bool)
	}

	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, in *component.Input) {
		if in.ToggleOverlay {
			s.Overlay.Toggle()
		}
		if in.ClearOverlay {
			s.Overlay.Clear()
		}
	})

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind()) {
		if s.seen[e] || ecs.Has(w, e, component.PlayerTagComponent) {
			continue
		}
		s.seen[e] = true
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && pb.Body != nil {
			s.Overlay.Track(pb.Body)
		}
	}
	for e := range s.seen {
		if w.IsAlive(e) {
			continue
		}
		delete(s.seen, e)
	}
	s.Overlay.Prune()

	for _, evt := range w.Events().Of(ecs.EventShotHit) {
		if hit, ok := evt.Data.(weapon.HitEvent); ok {
			s.Overlay.AddMarker(hit.Point, hit.Normal)
		}
	}
	for _, evt := range w.Events().Of(ecs.EventShotEnded) {
		if shot, ok := evt.Data.(*weapon.Shot); ok {
			s.Overlay.AddTrajectory(shot.Trajectory())
		}
	}
}
