package controller

import (
	"math"

	"github.com/milk9111/fpsdemo/physics"
)

// Config tunes the first-person controller. Times are in seconds, speeds in
// units per second and angles in radians.
type Config struct {
	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`

	GroundAccel float64 `yaml:"ground_accel"`
	GroundDecel float64 `yaml:"ground_decel"`
	AirAccel    float64 `yaml:"air_accel"`
	AirDecel    float64 `yaml:"air_decel"`

	JumpVelocity float64 `yaml:"jump_velocity"`
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	// GroundVerticalDecay is how fast vertical velocity returns to zero on the ground.
	GroundVerticalDecay float64 `yaml:"ground_vertical_decay"`

	CoyoteTime     float64 `yaml:"coyote_time"`
	JumpBufferTime float64 `yaml:"jump_buffer_time"`
	JumpCooldown   float64 `yaml:"jump_cooldown"`

	// CeilingTolerance is the share of an upward move that must happen for
	// the controller to keep rising.
	CeilingTolerance float64 `yaml:"ceiling_tolerance"`

	LookSensitivity float64 `yaml:"look_sensitivity"`
	MaxPitch        float64 `yaml:"max_pitch"`
	// EyeHeight is measured from the feet.
	EyeHeight float64 `yaml:"eye_height"`

	Character physics.CharacterConfig `yaml:"character"`
}

func DefaultConfig() Config {
	return Config{
		WalkSpeed:           5,
		SprintSpeed:         8.5,
		GroundAccel:         60,
		GroundDecel:         40,
		AirAccel:            12,
		AirDecel:            4,
		JumpVelocity:        7.5,
		Gravity:             20,
		MaxFallSpeed:        30,
		GroundVerticalDecay: 40,
		CoyoteTime:          0.12,
		JumpBufferTime:      0.15,
		JumpCooldown:        0.25,
		CeilingTolerance:    0.5,
		LookSensitivity:     0.0025,
		MaxPitch:            math.Pi/2 - 0.05,
		EyeHeight:           1.6,
		Character:           physics.DefaultCharacterConfig(),
	}
}

// PushConfig tunes how the player shoves nearby dynamic bodies.
type PushConfig struct {
	Radius float64 `yaml:"radius"`
	// Interval is the number of frames between pushes.
	Interval    int     `yaml:"interval"`
	MinSpeed    float64 `yaml:"min_speed"`
	Strength    float64 `yaml:"strength"`
	MinDistance float64 `yaml:"min_distance"`
}

func DefaultPushConfig() PushConfig {
	return PushConfig{
		Radius:      1.2,
		Interval:    5,
		MinSpeed:    1,
		Strength:    0.4,
		MinDistance: 0.25,
	}
}
