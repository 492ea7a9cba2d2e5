// Package weapon simulates ballistic shots. Each shot is advanced by the frame
// loop in fixed sub-steps; every sub-step integrates gravity and casts a short
// ray from the previous position to the next one.
package weapon

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/physics"
)

type Config struct {
	// FireInterval is the minimum time between two shots.
	FireInterval float64 `yaml:"fire_interval"`
	MuzzleSpeed  float64 `yaml:"muzzle_speed"`
	Gravity      float64 `yaml:"gravity"`
	SubStep      float64 `yaml:"sub_step"`
	Lifetime     float64 `yaml:"lifetime"`
	// ImpulseScale converts shot velocity at impact into impulse.
	ImpulseScale  float64 `yaml:"impulse_scale"`
	TorqueImpulse float64 `yaml:"torque_impulse"`
	// Shots below KillY or outside BoundsHalfExtent on X or Z are dropped.
	KillY            float64 `yaml:"kill_y"`
	BoundsHalfExtent float64 `yaml:"bounds_half_extent"`
	MaxTrajectory    int     `yaml:"max_trajectory"`
}

func DefaultConfig() Config {
	return Config{
		FireInterval:     0.15,
		MuzzleSpeed:      60,
		Gravity:          9.8,
		SubStep:          1.0 / 240.0,
		Lifetime:         2,
		ImpulseScale:     0.05,
		TorqueImpulse:    0.3,
		KillY:            -20,
		BoundsHalfExtent: 100,
		MaxTrajectory:    256,
	}
}

// Raycaster is the part of the physics world shots need.
type Raycaster interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64, exclude *physics.Body) (physics.Hit, bool)
}

// Visuals mirrors shots in the scene. Release is called exactly once per shot.
type Visuals interface {
	Spawn(s *Shot)
	Move(s *Shot)
	Release(s *Shot)
}

type EndReason int

const (
	Live EndReason = iota
	Hit
	Expired
	OutOfBounds
)

func (r EndReason) String() string {
	switch r {
	case Live:
		return "live"
	case Hit:
		return "hit"
	case Expired:
		return "expired"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

type Shot struct {
	ID       uint64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Age      float64

	trajectory []mgl64.Vec3
	acc        float64
	reason     EndReason
	released   bool
}

func (s *Shot) Reason() EndReason { return s.reason }
func (s *Shot) Done() bool        { return s.reason != Live }

// Trajectory returns the positions the shot has passed through.
func (s *Shot) Trajectory() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(s.trajectory))
	copy(out, s.trajectory)
	return out
}

type HitEvent struct {
	ShotID   uint64
	Body     *physics.Body
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Velocity mgl64.Vec3
}

// Manager owns the live shots of one shooter.
type Manager struct {
	cfg     Config
	world   Raycaster
	owner   *physics.Body
	visuals Visuals
	rng     *rand.Rand

	now      float64
	lastFire float64
	nextID   uint64
	shots    []*Shot
}

// NewManager creates a manager whose shots never hit owner. visuals may be nil.
func NewManager(world Raycaster, owner *physics.Body, visuals Visuals, cfg Config, seed uint64) *Manager {
	return &Manager{
		cfg:      cfg,
		world:    world,
		owner:    owner,
		visuals:  visuals,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		lastFire: math.Inf(-1),
	}
}

func (m *Manager) Config() Config           { return m.cfg }
func (m *Manager) SetConfig(cfg Config)     { m.cfg = cfg }
func (m *Manager) SetVisuals(v Visuals)     { m.visuals = v }
func (m *Manager) Owner() *physics.Body     { return m.owner }
func (m *Manager) Shots() []*Shot           { return append([]*Shot(nil), m.shots...) }
func (m *Manager) CanFire() bool            { return m.now-m.lastFire >= m.cfg.FireInterval }
func (m *Manager) SetOwner(b *physics.Body) { m.owner = b }

// Fire launches a shot from origin along dir. It does nothing and returns
// false while the fire interval since the last shot has not elapsed.
func (m *Manager) Fire(origin, dir mgl64.Vec3) (*Shot, bool) {
	if !m.CanFire() || dir.Len() < 1e-9 {
		return nil, false
	}
	m.nextID++
	s := &Shot{
		ID:         m.nextID,
		Position:   origin,
		Velocity:   dir.Normalize().Mul(m.cfg.MuzzleSpeed),
		trajectory: []mgl64.Vec3{origin},
	}
	m.lastFire = m.now
	m.shots = append(m.shots, s)
	if m.visuals != nil {
		m.visuals.Spawn(s)
	}
	return s, true
}

// Update advances the clock and every live shot by dt. Finished shots are
// released and dropped; hits on dynamic bodies receive an impulse.
func (m *Manager) Update(dt float64) []HitEvent {
	if dt <= 0 {
		return nil
	}
	m.now += dt

	var hits []HitEvent
	alive := m.shots[:0]
	for _, s := range m.shots {
		if ev, ok := m.advance(s, dt); ok {
			hits = append(hits, ev)
		}
		if s.Done() {
			m.release(s)
			continue
		}
		if m.visuals != nil {
			m.visuals.Move(s)
		}
		alive = append(alive, s)
	}
	for i := len(alive); i < len(m.shots); i++ {
		m.shots[i] = nil
	}
	m.shots = alive
	return hits
}

// Clear releases every live shot.
func (m *Manager) Clear() {
	for _, s := range m.shots {
		if s.reason == Live {
			s.reason = Expired
		}
		m.release(s)
	}
	m.shots = nil
}

func (m *Manager) release(s *Shot) {
	if s.released {
		return
	}
	s.released = true
	if m.visuals != nil {
		m.visuals.Release(s)
	}
}

func (m *Manager) advance(s *Shot, dt float64) (HitEvent, bool) {
	step := m.cfg.SubStep
	if step <= 0 {
		step = dt
	}
	s.acc += dt
	for s.acc >= step && !s.Done() {
		s.acc -= step
		if ev, ok := m.subStep(s, step); ok {
			return ev, true
		}
	}
	return HitEvent{}, false
}

func (m *Manager) subStep(s *Shot, h float64) (HitEvent, bool) {
	prev := s.Position
	s.Velocity[1] -= m.cfg.Gravity * h
	next := prev.Add(s.Velocity.Mul(h))
	seg := next.Sub(prev)

	if hit, ok := m.world.Raycast(prev, seg, seg.Len(), m.owner); ok {
		s.Position = hit.Point
		s.record(hit.Point, m.cfg.MaxTrajectory)
		s.reason = Hit
		if hit.Body != nil && hit.Body.IsDynamic() {
			hit.Body.ApplyImpulse(s.Velocity.Mul(m.cfg.ImpulseScale), hit.Point)
			hit.Body.ApplyTorqueImpulse((m.rng.Float64()*2 - 1) * m.cfg.TorqueImpulse)
		}
		return HitEvent{
			ShotID:   s.ID,
			Body:     hit.Body,
			Point:    hit.Point,
			Normal:   hit.Normal,
			Velocity: s.Velocity,
		}, true
	}

	s.Position = next
	s.Age += h
	s.record(next, m.cfg.MaxTrajectory)
	switch {
	case s.Age >= m.cfg.Lifetime:
		s.reason = Expired
	case m.outOfBounds(next):
		s.reason = OutOfBounds
	}
	return HitEvent{}, false
}

func (m *Manager) outOfBounds(p mgl64.Vec3) bool {
	b := m.cfg.BoundsHalfExtent
	return p.Y() < m.cfg.KillY || math.Abs(p.X()) > b || math.Abs(p.Z()) > b
}

func (s *Shot) record(p mgl64.Vec3, limit int) {
	s.trajectory = append(s.trajectory, p)
	if limit > 0 && len(s.trajectory) > limit {
		s.trajectory = append(s.trajectory[:0], s.trajectory[len(s.trajectory)-limit:]...)
	}
}
