package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/common"
	"github.com/milk9111/fpsdemo/physics"
)

// Mover resolves a desired translation against the world.
type Mover interface {
	ComputeMovement(body *physics.Body, desired mgl64.Vec3) physics.Movement
}

// FPSController drives a kinematic body from polled input: look, walk,
// sprint, jump with buffering and coyote time, gravity and ceiling bumps.
// Its clock is the sum of the frame deltas it was given.
type FPSController struct {
	cfg   Config
	body  *physics.Body
	mover Mover

	yaw, pitch float64
	velocity   mgl64.Vec3
	state      movementState

	grounded     bool
	slope        float64
	groundNormal mgl64.Vec3

	now          float64
	lastJump     float64
	lastGrounded float64
	jumpBuffered bool
	bufferedAt   float64
}

func NewFPSController(body *physics.Body, mover Mover, cfg Config) *FPSController {
	return &FPSController{
		cfg:          cfg,
		body:         body,
		mover:        mover,
		state:        stateFalling,
		groundNormal: mgl64.Vec3{0, 1, 0},
		lastJump:     math.Inf(-1),
		lastGrounded: math.Inf(-1),
	}
}

func (c *FPSController) Config() Config { return c.cfg }

// SetConfig replaces the tuning. The character settings are passed on to the
// mover when it accepts them.
func (c *FPSController) SetConfig(cfg Config) {
	c.cfg = cfg
	c.pitch = common.Clamp(c.pitch, -cfg.MaxPitch, cfg.MaxPitch)
	if m, ok := c.mover.(interface {
		SetConfig(physics.CharacterConfig)
	}); ok {
		m.SetConfig(cfg.Character)
	}
}

func (c *FPSController) Body() *physics.Body      { return c.body }
func (c *FPSController) State() MovementState     { return c.state.State() }
func (c *FPSController) Velocity() mgl64.Vec3     { return c.velocity }
func (c *FPSController) Yaw() float64             { return c.yaw }
func (c *FPSController) Pitch() float64           { return c.pitch }
func (c *FPSController) Grounded() bool           { return c.grounded }
func (c *FPSController) SlopeAngle() float64      { return c.slope }
func (c *FPSController) Position() mgl64.Vec3     { return c.body.Position() }
func (c *FPSController) Now() float64             { return c.now }
func (c *FPSController) GroundNormal() mgl64.Vec3 { return c.groundNormal }

func (c *FPSController) HorizontalSpeed() float64 {
	return math.Hypot(c.velocity.X(), c.velocity.Z())
}

func (c *FPSController) EyePosition() mgl64.Vec3 {
	p := c.body.Position()
	return mgl64.Vec3{p.X(), c.body.Bottom() + c.cfg.EyeHeight, p.Z()}
}

// LookDirection is the unit view vector. Yaw 0 looks down -Z.
func (c *FPSController) LookDirection() mgl64.Vec3 {
	cp := math.Cos(c.pitch)
	return mgl64.Vec3{
		-math.Sin(c.yaw) * cp,
		math.Sin(c.pitch),
		-math.Cos(c.yaw) * cp,
	}
}

// CanJump holds while grounded or within the coyote window, once the
// cooldown since the last jump has passed.
func (c *FPSController) CanJump() bool {
	onGround := c.grounded || c.now-c.lastGrounded <= c.cfg.CoyoteTime
	return onGround && c.now-c.lastJump >= c.cfg.JumpCooldown
}

// SetLook points the controller; pitch is clamped.
func (c *FPSController) SetLook(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = common.Clamp(pitch, -c.cfg.MaxPitch, c.cfg.MaxPitch)
	c.body.SetYaw(c.yaw)
}

func (c *FPSController) Update(dt float64, in Input) {
	if c == nil || c.body == nil || c.mover == nil || dt <= 0 {
		return
	}
	c.now += dt

	c.SetLook(c.yaw-in.LookDX*c.cfg.LookSensitivity, c.pitch-in.LookDY*c.cfg.LookSensitivity)

	if in.JumpPressed {
		c.jumpBuffered = true
		c.bufferedAt = c.now
	}
	if c.jumpBuffered && c.now-c.bufferedAt > c.cfg.JumpBufferTime {
		c.jumpBuffered = false
	}

	wish := c.wishDirection(in)
	wishing := wish.Len() > 0
	speed := c.cfg.WalkSpeed
	if in.Sprint && c.state == stateGrounded {
		speed = c.cfg.SprintSpeed
	}
	accel, decel := c.state.control(c.cfg)
	rate := decel
	if wishing {
		rate = accel
	}
	h := moveTowardVec2(mgl64.Vec2{c.velocity.X(), c.velocity.Z()}, wish.Mul(speed), rate*dt)
	c.velocity[0], c.velocity[2] = h.X(), h.Y()

	if c.jumpBuffered && c.CanJump() {
		c.velocity[1] = c.cfg.JumpVelocity
		c.lastJump = c.now
		c.lastGrounded = math.Inf(-1)
		c.jumpBuffered = false
		c.grounded = false
		c.state = stateJumping
	} else {
		c.state.vertical(c, dt)
	}
	c.clampFall()

	desired := c.velocity.Mul(dt)
	m := c.mover.ComputeMovement(c.body, desired)
	c.body.SetPosition(c.body.Position().Add(m.Translation))

	if c.velocity.Y() > 0 && m.Translation.Y() < desired.Y()*c.cfg.CeilingTolerance {
		c.velocity[1] = 0
	}
	if m.Grounded && c.velocity.Y() < 0 {
		c.velocity[1] = 0
	}
	if len(m.Collisions) > 0 {
		c.velocity[0] = m.Translation.X() / dt
		c.velocity[2] = m.Translation.Z() / dt
	}
	c.clampFall()

	c.grounded = m.Grounded
	c.slope = m.SlopeAngle
	c.groundNormal = m.GroundNormal
	if c.grounded {
		c.lastGrounded = c.now
	}
	c.state = nextState(c, wishing)
}

func (c *FPSController) clampFall() {
	if c.velocity.Y() < -c.cfg.MaxFallSpeed {
		c.velocity[1] = -c.cfg.MaxFallSpeed
	}
}

// wishDirection maps the input axes onto the horizontal plane by yaw. The
// result is at most unit length.
func (c *FPSController) wishDirection(in Input) mgl64.Vec2 {
	sin, cos := math.Sincos(c.yaw)
	forward := mgl64.Vec2{-sin, -cos}
	right := mgl64.Vec2{cos, -sin}
	wish := forward.Mul(in.Forward).Add(right.Mul(in.Right))
	if l := wish.Len(); l > 1 {
		wish = wish.Mul(1 / l)
	}
	return wish
}
