package entity

import (
	"fmt"

	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/render"
)

// NewGun creates the first-person gun model. It has no body and no
// Transform; the renderer places it relative to the camera.
func NewGun(w *ecs.World) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("gun: world is nil")
	}
	ent := w.CreateEntity()
	if err := ecs.Add(w, ent, component.GunComponent, &component.Gun{View: render.NewGunView()}); err != nil {
		w.DestroyEntity(ent)
		return 0, fmt.Errorf("gun: add gun: %w", err)
	}
	return ent, nil
}
