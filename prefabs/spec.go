package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

func DecodeSpec[T any](name string, data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

// ShapeSpec names a collider. Kind is box, ramp, sphere or capsule.
type ShapeSpec struct {
	Kind        string     `yaml:"kind"`
	HalfExtents mgl64.Vec3 `yaml:"half_extents"`
	Radius      float64    `yaml:"radius"`
	HalfHeight  float64    `yaml:"half_height"`
}

func (s ShapeSpec) Validate() error {
	switch s.Kind {
	case "box", "ramp":
		if s.HalfExtents.X() <= 0 || s.HalfExtents.Y() <= 0 || s.HalfExtents.Z() <= 0 {
			return fmt.Errorf("%w: %s needs positive half_extents", ErrInvalidSpec, s.Kind)
		}
	case "sphere", "capsule":
		if s.Radius <= 0 {
			return fmt.Errorf("%w: %s needs a positive radius", ErrInvalidSpec, s.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown shape kind %q", ErrInvalidSpec, s.Kind)
	}
	return nil
}

type StaticSpec struct {
	Name     string     `yaml:"name"`
	Shape    ShapeSpec  `yaml:"shape"`
	Position mgl64.Vec3 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
	Color    YAMLColor  `yaml:"color"`
}

type GroundSpec struct {
	HalfExtents mgl64.Vec3 `yaml:"half_extents"`
	Tiles       int        `yaml:"tiles"`
	Color       YAMLColor  `yaml:"color"`
}

type PlayerSpec struct {
	Spawn      mgl64.Vec3 `yaml:"spawn"`
	Yaw        float64    `yaml:"yaw"`
	HalfHeight float64    `yaml:"half_height"`
	Radius     float64    `yaml:"radius"`
}

// CubeGridSpec lays cubes out in rows x cols, stacked layers high.
type CubeGridSpec struct {
	Origin     mgl64.Vec3 `yaml:"origin"`
	Rows       int        `yaml:"rows"`
	Cols       int        `yaml:"cols"`
	Layers     int        `yaml:"layers"`
	Spacing    float64    `yaml:"spacing"`
	HalfExtent float64    `yaml:"half_extent"`
	Mass       float64    `yaml:"mass"`
	Color      YAMLColor  `yaml:"color"`
}

type ModelRefSpec struct {
	Path     string     `yaml:"path"`
	Position mgl64.Vec3 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
}

type SceneSpec struct {
	Name    string         `yaml:"name"`
	Ground  GroundSpec     `yaml:"ground"`
	Player  PlayerSpec     `yaml:"player"`
	Cubes   []CubeGridSpec `yaml:"cubes"`
	Statics []StaticSpec   `yaml:"statics"`
	Model   *ModelRefSpec  `yaml:"model"`
}

func (s SceneSpec) Validate() error {
	if s.Ground.HalfExtents.X() <= 0 || s.Ground.HalfExtents.Z() <= 0 {
		return fmt.Errorf("%w: ground needs positive half_extents", ErrInvalidSpec)
	}
	if s.Player.Radius <= 0 {
		return fmt.Errorf("%w: player needs a positive radius", ErrInvalidSpec)
	}
	for i, c := range s.Cubes {
		if c.HalfExtent <= 0 || c.Mass <= 0 {
			return fmt.Errorf("%w: cubes[%d] needs positive half_extent and mass", ErrInvalidSpec, i)
		}
	}
	for _, st := range s.Statics {
		if err := st.Shape.Validate(); err != nil {
			return fmt.Errorf("statics %q: %w", st.Name, err)
		}
	}
	return nil
}

// ModelSpec is a static prop assembled from parts placed relative to the
// model origin.
type ModelSpec struct {
	Name  string       `yaml:"name"`
	Parts []StaticSpec `yaml:"parts"`
}

func (m ModelSpec) Validate() error {
	if len(m.Parts) == 0 {
		return fmt.Errorf("%w: model %q has no parts", ErrInvalidSpec, m.Name)
	}
	for _, p := range m.Parts {
		if err := p.Shape.Validate(); err != nil {
			return fmt.Errorf("model %q part %q: %w", m.Name, p.Name, err)
		}
	}
	return nil
}

// YAMLColor accepts #rrggbb, #rrggbbaa or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// RGBAOr returns the color premultiplied, or fallback when unset.
func (c YAMLColor) RGBAOr(fallback color.RGBA) color.RGBA {
	if c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}
