package component

import "github.com/go-gl/mathgl/mgl64"

// Cube is a pushable prop that returns to its spawn pose when it falls out of
// the world.
type Cube struct {
	Spawn    mgl64.Vec3
	SpawnYaw float64
	Resets   int
}

var CubeComponent = NewComponent[*Cube]()
