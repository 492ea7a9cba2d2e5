package controller

import (
	"math"

	"github.com/milk9111/fpsdemo/physics"
)

// Pusher shoves dynamic bodies near the player away from it. It only runs
// every Interval frames and only while the player moves fast enough.
type Pusher struct {
	cfg   PushConfig
	frame int
}

func NewPusher(cfg PushConfig) *Pusher {
	return &Pusher{cfg: cfg}
}

func (p *Pusher) Config() PushConfig       { return p.cfg }
func (p *Pusher) SetConfig(cfg PushConfig) { p.cfg = cfg }

// Update advances the frame counter and returns how many bodies were pushed.
func (p *Pusher) Update(w *physics.World, c *FPSController) int {
	if p == nil || w == nil || c == nil {
		return 0
	}
	p.frame++
	if p.cfg.Interval > 1 && p.frame%p.cfg.Interval != 0 {
		return 0
	}
	speed := c.HorizontalSpeed()
	if speed < p.cfg.MinSpeed {
		return 0
	}

	self := c.Body()
	origin := self.Position()
	fallback := c.Velocity()
	fallback[1] = 0

	pushed := 0
	w.QuerySphere(origin, p.cfg.Radius, func(b *physics.Body) {
		if b == self || !b.IsDynamic() {
			return
		}
		away := b.Position().Sub(origin)
		away[1] = 0
		dist := away.Len()
		if dist < 1e-6 {
			away = fallback
		}
		if away.Len() < 1e-6 {
			return
		}
		dist = math.Max(dist, p.cfg.MinDistance)
		impulse := away.Normalize().Mul(p.cfg.Strength * speed / dist)
		b.ApplyImpulse(impulse, b.Position())
		pushed++
	})
	return pushed
}
