package weapon

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

type recordingVisuals struct {
	spawned  map[uint64]int
	moved    map[uint64]int
	released map[uint64]int
}

func newRecordingVisuals() *recordingVisuals {
	return &recordingVisuals{
		spawned:  map[uint64]int{},
		moved:    map[uint64]int{},
		released: map[uint64]int{},
	}
}

func (v *recordingVisuals) Spawn(s *Shot)   { v.spawned[s.ID]++ }
func (v *recordingVisuals) Move(s *Shot)    { v.moved[s.ID]++ }
func (v *recordingVisuals) Release(s *Shot) { v.released[s.ID]++ }

type testScene struct {
	world   *physics.World
	shooter *physics.Body
	cube    *physics.Body
}

func newTestScene(t *testing.T) testScene {
	t.Helper()
	w := physics.NewWorld(physics.DefaultConfig())
	w.CreateBody(physics.BodyDesc{Type: physics.BodyStatic, Shape: physics.Box(mgl64.Vec3{20, 0.5, 20}), Position: mgl64.Vec3{0, -0.5, 0}})
	shooter := w.CreateBody(physics.BodyDesc{Type: physics.BodyKinematic, Shape: physics.Capsule(0.5, 0.4), Position: mgl64.Vec3{0, 0.9, 0}})
	cube := w.CreateBody(physics.BodyDesc{Type: physics.BodyDynamic, Shape: physics.Box(mgl64.Vec3{0.5, 0.5, 0.5}), Position: mgl64.Vec3{0, 0.5, -5}, Mass: 1})
	return testScene{world: w, shooter: shooter, cube: cube}
}

func TestFireInterval(t *testing.T) {
	sc := newTestScene(t)
	cfg := DefaultConfig()
	cfg.FireInterval = 0.25
	vis := newRecordingVisuals()
	m := NewManager(sc.world, sc.shooter, vis, cfg, 1)

	origin := mgl64.Vec3{0, 1.5, 0}
	up := mgl64.Vec3{0, 1, 0}

	_, ok := m.Fire(origin, up)
	require.True(t, ok)
	require.Len(t, m.Shots(), 1)

	s, ok := m.Fire(origin, up)
	require.False(t, ok)
	require.Nil(t, s)
	require.Len(t, m.Shots(), 1, "a throttled shot creates nothing")
	require.Len(t, vis.spawned, 1)

	for m.Update(dt); !m.CanFire(); m.Update(dt) {
		_, ok := m.Fire(origin, up)
		require.False(t, ok)
	}
	_, ok = m.Fire(origin, up)
	require.True(t, ok)
	require.Len(t, vis.spawned, 2)
}

func TestFireRejectsZeroDirection(t *testing.T) {
	sc := newTestScene(t)
	m := NewManager(sc.world, sc.shooter, nil, DefaultConfig(), 1)
	_, ok := m.Fire(mgl64.Vec3{}, mgl64.Vec3{})
	require.False(t, ok)
}

func TestShotHitsDynamicBody(t *testing.T) {
	sc := newTestScene(t)
	vis := newRecordingVisuals()
	m := NewManager(sc.world, sc.shooter, vis, DefaultConfig(), 7)

	// fired from inside the shooter's own collider
	shot, ok := m.Fire(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 0, -1})
	require.True(t, ok)

	var hits []HitEvent
	for i := 0; i < 60 && len(hits) == 0; i++ {
		hits = append(hits, m.Update(dt)...)
	}

	require.Len(t, hits, 1)
	require.Same(t, sc.cube, hits[0].Body)
	require.Equal(t, shot.ID, hits[0].ShotID)
	require.InDelta(t, -4.5, hits[0].Point.Z(), 1e-6)
	require.InDelta(t, 1, hits[0].Normal.Z(), 1e-6)
	require.Equal(t, Hit, shot.Reason())

	require.Less(t, sc.cube.LinearVelocity().Z(), 0.0)
	require.NotZero(t, sc.cube.AngularVelocity())
	require.Empty(t, m.Shots())
	require.Equal(t, 1, vis.released[shot.ID])

	m.Update(dt)
	m.Clear()
	require.Equal(t, 1, vis.released[shot.ID], "released exactly once")
}

func TestShotEnds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		origin mgl64.Vec3
		dir    mgl64.Vec3
		frames int
		want   EndReason
	}{
		{
			name:   "lifetime",
			mutate: func(c *Config) { c.Lifetime = 0.2; c.Gravity = 0 },
			origin: mgl64.Vec3{0, 5, 0}, dir: mgl64.Vec3{0, 1, 0}, frames: 30,
			want: Expired,
		},
		{
			name:   "world_bounds",
			mutate: func(c *Config) { c.BoundsHalfExtent = 5; c.Gravity = 0 },
			origin: mgl64.Vec3{0, 5, 0}, dir: mgl64.Vec3{1, 0, 0}, frames: 30,
			want: OutOfBounds,
		},
		{
			name:   "kill_plane",
			mutate: func(c *Config) { c.KillY = -1 },
			origin: mgl64.Vec3{30, 5, 0}, dir: mgl64.Vec3{0, -1, 0}, frames: 30,
			want: OutOfBounds,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc := newTestScene(t)
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			vis := newRecordingVisuals()
			m := NewManager(sc.world, sc.shooter, vis, cfg, 1)

			shot, ok := m.Fire(tc.origin, tc.dir)
			require.True(t, ok)
			for i := 0; i < tc.frames; i++ {
				require.Empty(t, m.Update(dt))
			}
			require.Equal(t, tc.want, shot.Reason())
			require.Empty(t, m.Shots())
			require.Equal(t, 1, vis.released[shot.ID])
			require.Positive(t, vis.moved[shot.ID])
		})
	}
}

func TestTrajectoryIsCapped(t *testing.T) {
	sc := newTestScene(t)
	cfg := DefaultConfig()
	cfg.MaxTrajectory = 8
	m := NewManager(sc.world, sc.shooter, nil, cfg, 1)

	shot, ok := m.Fire(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0})
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		m.Update(dt)
	}
	traj := shot.Trajectory()
	require.Len(t, traj, 8)
	require.Equal(t, shot.Position, traj[len(traj)-1])
}

func TestClearReleasesLiveShots(t *testing.T) {
	sc := newTestScene(t)
	vis := newRecordingVisuals()
	m := NewManager(sc.world, sc.shooter, vis, DefaultConfig(), 1)
	shot, _ := m.Fire(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0})

	m.Clear()
	m.Clear()
	require.Empty(t, m.Shots())
	require.Equal(t, 1, vis.released[shot.ID])
	require.Equal(t, Expired, shot.Reason())
}
