package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/common"
)

type MovementState int

const (
	Grounded MovementState = iota
	Jumping
	Falling
	Sliding
)

func (s MovementState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case Falling:
		return "falling"
	case Sliding:
		return "sliding"
	default:
		return "unknown"
	}
}

// movementState holds the per-state rules of the controller.
type movementState interface {
	State() MovementState
	// control returns the horizontal acceleration and deceleration.
	control(cfg Config) (accel, decel float64)
	// vertical integrates vertical velocity for one frame.
	vertical(c *FPSController, dt float64)
}

// State singletons (avoid allocations on transitions).
var (
	stateGrounded movementState = groundedState{}
	stateJumping  movementState = jumpingState{}
	stateFalling  movementState = fallingState{}
	stateSliding  movementState = slidingState{}
)

type groundedState struct{}

type jumpingState struct{}

type fallingState struct{}

type slidingState struct{}

func (groundedState) State() MovementState { return Grounded }
func (groundedState) control(cfg Config) (float64, float64) {
	return cfg.GroundAccel, cfg.GroundDecel
}
func (groundedState) vertical(c *FPSController, dt float64) {
	c.velocity[1] = common.MoveToward(c.velocity[1], 0, c.cfg.GroundVerticalDecay*dt)
}

func (jumpingState) State() MovementState { return Jumping }
func (jumpingState) control(cfg Config) (float64, float64) {
	return cfg.AirAccel, cfg.AirDecel
}
func (jumpingState) vertical(c *FPSController, dt float64) {
	c.velocity[1] -= c.cfg.Gravity * dt
}

func (fallingState) State() MovementState { return Falling }
func (fallingState) control(cfg Config) (float64, float64) {
	return cfg.AirAccel, cfg.AirDecel
}
func (fallingState) vertical(c *FPSController, dt float64) {
	c.velocity[1] -= c.cfg.Gravity * dt
}

func (slidingState) State() MovementState { return Sliding }
func (slidingState) control(cfg Config) (float64, float64) {
	return cfg.AirAccel, cfg.AirDecel
}
func (slidingState) vertical(c *FPSController, dt float64) {
	c.velocity[1] = common.MoveToward(c.velocity[1], 0, c.cfg.GroundVerticalDecay*dt)
	downhill := mgl64.Vec2{c.groundNormal.X(), c.groundNormal.Z()}
	if downhill.Len() < 1e-9 {
		return
	}
	a := downhill.Normalize().Mul(c.cfg.Gravity * math.Sin(c.slope) * dt)
	c.velocity[0] += a.X()
	c.velocity[2] += a.Y()
}

// nextState picks the state from the latest ground contact. Slopes between
// the slide and climb limits only slide the player while they stand still.
func nextState(c *FPSController, wishing bool) movementState {
	ch := c.cfg.Character
	if c.grounded {
		if c.slope > ch.MaxSlopeClimbAngle || (!wishing && c.slope > ch.MinSlopeSlideAngle) {
			return stateSliding
		}
		return stateGrounded
	}
	if c.velocity.Y() > 0 {
		return stateJumping
	}
	return stateFalling
}

func moveTowardVec2(from, to mgl64.Vec2, maxDelta float64) mgl64.Vec2 {
	d := to.Sub(from)
	l := d.Len()
	if l <= maxDelta || l < 1e-12 {
		return to
	}
	return from.Add(d.Mul(maxDelta / l))
}
