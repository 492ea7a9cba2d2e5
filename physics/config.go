package physics

// Config holds the tunables of the physics adapter.
type Config struct {
	// Gravity is the downward acceleration applied to airborne dynamic bodies.
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
	// GroundDamping and AirDamping are the fraction of horizontal velocity a
	// dynamic body keeps after one second, picked by its grounded state.
	GroundDamping float64 `yaml:"ground_damping"`
	AirDamping    float64 `yaml:"air_damping"`
	// SupportTolerance is how far above a body's bottom a surface may sit and
	// still count as the surface it rests on.
	SupportTolerance float64 `yaml:"support_tolerance"`
	// RestSpeed is the rebound speed under which a landing body stops bouncing.
	RestSpeed float64 `yaml:"rest_speed"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:          20,
		Iterations:       10,
		GroundDamping:    0.15,
		AirDamping:       0.9,
		SupportTolerance: 0.05,
		RestSpeed:        1.0,
	}
}
