// Package config layers the game's tuning: built-in defaults, then the
// embedded prefabs/tuning.yaml, then an optional file on disk.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/milk9111/fpsdemo/controller"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/milk9111/fpsdemo/weapon"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const embeddedName = "tuning.yaml"

var ErrInvalidTuning = errors.New("config: invalid tuning")

type RenderConfig struct {
	// FOV is the vertical field of view in degrees.
	FOV        float64           `yaml:"fov"`
	SkyZenith  prefabs.YAMLColor `yaml:"sky_zenith"`
	SkyHorizon prefabs.YAMLColor `yaml:"sky_horizon"`
}

type DebugConfig struct {
	StartVisible    bool `yaml:"start_visible"`
	MaxTrajectories int  `yaml:"max_trajectories"`
	MaxMarkers      int  `yaml:"max_markers"`
}

type CubeConfig struct {
	// KillY is the height under which a cube returns to its spawn.
	KillY float64 `yaml:"kill_y"`
}

type Tuning struct {
	Physics physics.Config        `yaml:"physics"`
	Player  controller.Config     `yaml:"player"`
	Push    controller.PushConfig `yaml:"push"`
	Weapon  weapon.Config         `yaml:"weapon"`
	Render  RenderConfig          `yaml:"render"`
	Debug   DebugConfig           `yaml:"debug"`
	Cubes   CubeConfig            `yaml:"cubes"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Physics: physics.DefaultConfig(),
		Player:  controller.DefaultConfig(),
		Push:    controller.DefaultPushConfig(),
		Weapon:  weapon.DefaultConfig(),
		Render: RenderConfig{
			FOV:        75,
			SkyZenith:  prefabs.YAMLColor{Color: colornames.Steelblue},
			SkyHorizon: prefabs.YAMLColor{Color: colornames.Lightskyblue},
		},
		Debug: DebugConfig{MaxTrajectories: 32, MaxMarkers: 64},
		Cubes: CubeConfig{KillY: -30},
	}
}

// Load returns the defaults overlaid with the embedded tuning and then with
// the file at path, when path is set.
func Load(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := prefabs.PrefabsFS.ReadFile(embeddedName)
	if err != nil {
		return t, fmt.Errorf("config: read embedded %s: %w", embeddedName, err)
	}
	if err := t.overlay(embeddedName, data); err != nil {
		return t, err
	}
	if path == "" {
		return t, t.Validate()
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := t.overlay(path, data); err != nil {
		return t, err
	}
	return t, t.Validate()
}

// Parse overlays data on the defaults.
func Parse(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := t.overlay("tuning", data); err != nil {
		return t, err
	}
	return t, t.Validate()
}

func (t *Tuning) overlay(name string, data []byte) error {
	if err := yaml.Unmarshal(data, t); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", name, err)
	}
	return nil
}

func (t Tuning) Validate() error {
	switch {
	case t.Physics.Iterations < 1:
		return fmt.Errorf("%w: physics.iterations must be at least 1", ErrInvalidTuning)
	case t.Player.WalkSpeed <= 0 || t.Player.SprintSpeed < t.Player.WalkSpeed:
		return fmt.Errorf("%w: player speeds must be positive with sprint >= walk", ErrInvalidTuning)
	case t.Player.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: player.max_fall_speed must be positive", ErrInvalidTuning)
	case t.Push.Interval < 1:
		return fmt.Errorf("%w: push.interval must be at least 1", ErrInvalidTuning)
	case t.Weapon.SubStep <= 0 || t.Weapon.FireInterval < 0:
		return fmt.Errorf("%w: weapon.sub_step must be positive and fire_interval not negative", ErrInvalidTuning)
	case t.Render.FOV <= 0 || t.Render.FOV >= 180:
		return fmt.Errorf("%w: render.fov must be in (0, 180)", ErrInvalidTuning)
	}
	return nil
}

func (r RenderConfig) Zenith() color.RGBA  { return r.SkyZenith.RGBAOr(colornames.Steelblue) }
func (r RenderConfig) Horizon() color.RGBA { return r.SkyHorizon.RGBAOr(colornames.Lightskyblue) }
