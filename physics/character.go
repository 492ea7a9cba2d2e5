package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Movement is the corrected result of a character move.
type Movement struct {
	Translation  mgl64.Vec3
	Grounded     bool
	GroundNormal mgl64.Vec3
	SlopeAngle   float64
	// Collisions lists the bodies that blocked the horizontal move.
	Collisions []*Body
}

// CharacterConfig tunes the kinematic character controller.
type CharacterConfig struct {
	// Offset is the skin gap kept between the character and obstacles.
	Offset               float64 `yaml:"offset"`
	MaxSlopeClimbAngle   float64 `yaml:"max_slope_climb_angle"`
	MinSlopeSlideAngle   float64 `yaml:"min_slope_slide_angle"`
	AutostepMaxHeight    float64 `yaml:"autostep_max_height"`
	AutostepMinWidth     float64 `yaml:"autostep_min_width"`
	SnapToGroundDistance float64 `yaml:"snap_to_ground_distance"`
	MaxIterations        int     `yaml:"max_iterations"`
}

func DefaultCharacterConfig() CharacterConfig {
	return CharacterConfig{
		Offset:               0.01,
		MaxSlopeClimbAngle:   45 * math.Pi / 180,
		MinSlopeSlideAngle:   30 * math.Pi / 180,
		AutostepMaxHeight:    0.5,
		AutostepMinWidth:     0.2,
		SnapToGroundDistance: 0.5,
		MaxIterations:        4,
	}
}

// CharacterController moves a kinematic body through the world without
// letting it pass through other bodies. It remembers the ground it stood on
// so slope limits and snapping work across frames.
type CharacterController struct {
	world *World
	cfg   CharacterConfig

	sweepBody *cp.Body
	sweep     *cp.Shape
	sweepFor  float64

	grounded bool
	normal   mgl64.Vec3
	slope    float64
}

func NewCharacterController(w *World, cfg CharacterConfig) *CharacterController {
	return &CharacterController{
		world:     w,
		cfg:       cfg,
		sweepBody: cp.NewKinematicBody(),
		normal:    worldUp,
	}
}

func (c *CharacterController) Config() CharacterConfig { return c.cfg }

func (c *CharacterController) SetConfig(cfg CharacterConfig) {
	c.cfg = cfg
	c.sweep = nil
}

func (c *CharacterController) Grounded() bool { return c.grounded }

func (c *CharacterController) sweepShape(radius float64) *cp.Shape {
	if c.sweep == nil || c.sweepFor != radius {
		c.sweep = cp.NewCircle(c.sweepBody, radius+c.cfg.Offset, cp.Vector{})
		c.sweepFor = radius
	}
	return c.sweep
}

// ComputeMovement turns the desired translation of body into one that does
// not penetrate anything. The body is not moved.
func (c *CharacterController) ComputeMovement(body *Body, desired mgl64.Vec3) Movement {
	pos := body.Position()
	feet := body.Bottom()
	height := body.Top() - feet
	sweep := c.sweepShape(body.shape.FootprintRadius())

	horiz := cp.Vector{X: desired.X(), Y: desired.Z()}
	if c.grounded && c.slope > c.cfg.MaxSlopeClimbAngle {
		downhill := cp.Vector{X: c.normal.X(), Y: c.normal.Z()}
		if downhill.Length() > rayEpsilon {
			downhill = downhill.Normalize()
			if along := horiz.Dot(downhill); along < 0 {
				horiz = horiz.Sub(downhill.Mult(along))
			}
		}
	}

	allowance := c.cfg.Offset
	if c.grounded {
		allowance = math.Max(c.cfg.AutostepMaxHeight, c.cfg.Offset)
	}
	head := feet + height

	start := cp.Vector{X: pos.X(), Y: pos.Z()}
	target := start.Add(horiz)
	var blockers []*Body
	iterations := max(c.cfg.MaxIterations, 1)
	for i := 0; i < iterations; i++ {
		c.sweepBody.SetPosition(target)
		var push cp.Vector
		c.world.space.ShapeQuery(sweep, func(shape *cp.Shape, set *cp.ContactPointSet) {
			o := bodyOf(shape)
			if o == nil || o == body || o.sensor || set.Count == 0 {
				return
			}
			if !c.blocks(o, target, feet, head, allowance) {
				return
			}
			depth := 0.0
			for j := 0; j < set.Count; j++ {
				depth = math.Min(depth, set.Points[j].Distance)
			}
			if depth >= 0 {
				return
			}
			// the normal points from the sweep circle into o
			push = push.Add(set.Normal.Mult(depth))
			blockers = appendUnique(blockers, o)
		})
		if push.Length() < rayEpsilon {
			break
		}
		target = target.Add(push)
	}

	targetFeet := feet + desired.Y()
	c.sweepBody.SetPosition(target)
	groundTop, ground, hasGround := math.Inf(-1), (*Body)(nil), false
	ceiling, hasCeiling := math.Inf(1), false
	c.world.space.ShapeQuery(sweep, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		o := bodyOf(shape)
		if o == nil || o == body || o.sensor {
			return
		}
		top := o.TopAt(target.X, target.Y)
		reach := feet + c.cfg.Offset
		if o.typ == BodyStatic {
			reach = feet + allowance
		}
		if top <= reach && top > groundTop {
			groundTop, ground, hasGround = top, o, true
		}
		if bottom := o.Bottom(); bottom >= head-c.cfg.Offset && bottom < ceiling {
			ceiling, hasCeiling = bottom, true
		}
	})

	grounded := false
	if hasGround {
		switch {
		case targetFeet <= groundTop+c.cfg.Offset:
			targetFeet = groundTop
			grounded = true
		case c.grounded && desired.Y() <= 0 && targetFeet-groundTop <= c.cfg.SnapToGroundDistance:
			targetFeet = groundTop
			grounded = true
		}
	}
	if hasCeiling && targetFeet+height > ceiling {
		targetFeet = math.Max(feet, ceiling-height)
	}

	normal := worldUp
	if grounded {
		normal = ground.SurfaceNormalAt(target.X, target.Y)
	}
	slope := math.Acos(mgl64.Clamp(normal.Y(), -1, 1))

	c.grounded = grounded
	c.normal = normal
	c.slope = slope

	return Movement{
		Translation:  mgl64.Vec3{target.X - start.X, targetFeet - feet, target.Y - start.Y},
		Grounded:     grounded,
		GroundNormal: normal,
		SlopeAngle:   slope,
		Collisions:   blockers,
	}
}

// blocks reports whether o stops horizontal motion at target. Surfaces at
// foot level and low static steps are walked onto instead.
func (c *CharacterController) blocks(o *Body, target cp.Vector, feet, head, allowance float64) bool {
	if o.Bottom() >= head-c.cfg.Offset {
		return false
	}
	top := o.TopAt(target.X, target.Y)
	if top <= feet+c.cfg.Offset {
		return false
	}
	if o.typ == BodyStatic && top <= feet+allowance && o.shape.minWidth() >= c.cfg.AutostepMinWidth {
		return false
	}
	return true
}

func (s ShapeDesc) minWidth() float64 {
	switch s.Kind {
	case ShapeSphere, ShapeCapsule:
		return 2 * s.Radius
	default:
		return 2 * math.Min(s.HalfExtents.X(), s.HalfExtents.Z())
	}
}

func appendUnique(list []*Body, b *Body) []*Body {
	for _, o := range list {
		if o == b {
			return list
		}
	}
	return append(list, b)
}
