package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the render-facing pose of an entity. Only TransformSyncSystem
// writes it for entities that carry a PhysicsBody.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[*Transform]()
