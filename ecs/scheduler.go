package ecs

import (
	"fmt"
	"strings"
	"time"
)

// SystemTiming is the wall time a system's last Update took.
type SystemTiming struct {
	Name     string
	Duration time.Duration
}

// Scheduler runs systems in the order they were added, once per frame, and
// keeps how long each one took.
type Scheduler struct {
	systems []System
	names   []string
	timings []time.Duration
	frames  uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.names = append(s.names, systemName(system))
	s.timings = append(s.timings, 0)
}

// Update runs every system once in order and then drops the frame's events.
func (s *Scheduler) Update(w *World) {
	for i, system := range s.systems {
		start := time.Now()
		system.Update(w)
		s.timings[i] = time.Since(start)
	}
	s.frames++
	w.Events().flush()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// Frames is the number of completed Update calls.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Timings reports the last Update's per-system durations in run order.
func (s *Scheduler) Timings() []SystemTiming {
	out := make([]SystemTiming, len(s.systems))
	for i := range s.systems {
		out[i] = SystemTiming{Name: s.names[i], Duration: s.timings[i]}
	}
	return out
}

func systemName(system System) string {
	name := fmt.Sprintf("%T", system)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
