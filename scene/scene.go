// Package scene assembles the playground from its prefab documents.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/entity"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/colornames"
)

const DefaultScene = "scene.yaml"

var ErrNoModel = errors.New("scene: no model to load")

// Scene holds what Build created.
type Scene struct {
	Spec    prefabs.SceneSpec
	Player  ecs.Entity
	Ground  ecs.Entity
	Gun     ecs.Entity
	Cubes   []ecs.Entity
	Statics []ecs.Entity
	Model   []ecs.Entity
}

// LoadSpec reads a scene document from path on disk, or the embedded scene
// when path is empty.
func LoadSpec(path string) (prefabs.SceneSpec, error) {
	data, err := prefabs.LoadPath(path, DefaultScene)
	if err != nil {
		return prefabs.SceneSpec{}, fmt.Errorf("scene: load %s: %w", nameOr(path, DefaultScene), err)
	}
	spec, err := prefabs.DecodeSpec[prefabs.SceneSpec](nameOr(path, DefaultScene), data)
	if err != nil {
		return spec, err
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("scene: %w", err)
	}
	return spec, nil
}

// Build creates the ground, statics, cubes, player and gun of spec.
func Build(w *ecs.World, pw *physics.World, spec prefabs.SceneSpec, player entity.PlayerTuning) (*Scene, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s := &Scene{Spec: spec}

	var err error
	if s.Ground, err = entity.NewGround(w, pw, spec.Ground); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	for _, st := range spec.Statics {
		e, err := entity.NewStatic(w, pw, st, mgl64.Vec3{}, 0)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		s.Statics = append(s.Statics, e)
	}
	for _, grid := range spec.Cubes {
		cubes, err := buildCubes(w, pw, grid)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		s.Cubes = append(s.Cubes, cubes...)
	}
	if s.Player, err = entity.NewPlayer(w, pw, spec.Player, player); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if s.Gun, err = entity.NewGun(w); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	log.Debug().
		Str("scene", spec.Name).
		Int("statics", len(s.Statics)).
		Int("cubes", len(s.Cubes)).
		Msg("scene built")
	return s, nil
}

// CubePositions lays out the cube centers of grid, bottom layer first.
func CubePositions(grid prefabs.CubeGridSpec) []mgl64.Vec3 {
	spacing := grid.Spacing
	if spacing < 2*grid.HalfExtent {
		spacing = 2 * grid.HalfExtent
	}
	var out []mgl64.Vec3
	for l := 0; l < max(grid.Layers, 1); l++ {
		for r := 0; r < grid.Rows; r++ {
			for c := 0; c < grid.Cols; c++ {
				out = append(out, grid.Origin.Add(mgl64.Vec3{
					float64(c) * spacing,
					float64(l) * 2 * grid.HalfExtent,
					float64(r) * spacing,
				}))
			}
		}
	}
	return out
}

func buildCubes(w *ecs.World, pw *physics.World, grid prefabs.CubeGridSpec) ([]ecs.Entity, error) {
	clr := grid.Color.RGBAOr(colornames.Firebrick)
	var out []ecs.Entity
	for _, pos := range CubePositions(grid) {
		e, err := entity.NewCube(w, pw, pos, grid.HalfExtent, grid.Mass, clr)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

func nameOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
