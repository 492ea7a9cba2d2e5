package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/physics"
)

// newBodyEntity creates an entity holding a new body, its transform and a
// mesh matching the collider. The body's UserData is the entity.
func newBodyEntity(w *ecs.World, pw *physics.World, desc physics.BodyDesc, clr color.RGBA) (ecs.Entity, *physics.Body, error) {
	if w == nil || pw == nil {
		return 0, nil, fmt.Errorf("world is nil")
	}
	ent := w.CreateEntity()
	desc.UserData = ent
	body := pw.CreateBody(desc)

	if err := ecs.Add(w, ent, component.PhysicsBodyComponent, &component.PhysicsBody{Body: body}); err != nil {
		destroy(w, pw, ent, body)
		return 0, nil, fmt.Errorf("add physics body: %w", err)
	}
	transform := &component.Transform{Position: body.Position(), Rotation: body.Rotation()}
	if err := ecs.Add(w, ent, component.TransformComponent, transform); err != nil {
		destroy(w, pw, ent, body)
		return 0, nil, fmt.Errorf("add transform: %w", err)
	}
	mesh := &component.Mesh{Geometry: GeometryFor(desc.Shape), Color: clr}
	if err := ecs.Add(w, ent, component.MeshComponent, mesh); err != nil {
		destroy(w, pw, ent, body)
		return 0, nil, fmt.Errorf("add mesh: %w", err)
	}
	return ent, body, nil
}

// Destroy removes e and its body, if it has one.
func Destroy(w *ecs.World, pw *physics.World, e ecs.Entity) bool {
	var body *physics.Body
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && pb != nil {
		body = pb.Body
	}
	return destroy(w, pw, e, body)
}

func destroy(w *ecs.World, pw *physics.World, e ecs.Entity, body *physics.Body) bool {
	if body != nil && pw != nil {
		pw.RemoveBody(body)
	}
	return w.DestroyEntity(e)
}
