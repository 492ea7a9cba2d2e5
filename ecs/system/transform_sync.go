package system

import (
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
)

// TransformSyncSystem mirrors every body's pose into its entity's Transform.
// It is the only writer of those transforms.
type TransformSyncSystem struct{}

func NewTransformSyncSystem() *TransformSyncSystem {
	return &TransformSyncSystem{}
}

func (s *TransformSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		t, _ := ecs.Get(w, e, component.TransformComponent)
		if pb == nil || pb.Body == nil || t == nil {
			continue
		}
		t.Position = pb.Body.Position()
		t.Rotation = pb.Body.Rotation()
	}
}
