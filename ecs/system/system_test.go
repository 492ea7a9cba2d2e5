package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsdemo/controller"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/ecs/entity"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/milk9111/fpsdemo/render"
	"github.com/milk9111/fpsdemo/weapon"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

const testDT = 1.0 / 60

type fixture struct {
	w      *ecs.World
	pw     *physics.World
	player ecs.Entity
	cube   ecs.Entity
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	w := ecs.NewWorld()
	pw := physics.NewWorld(physics.DefaultConfig())

	_, err := entity.NewGround(w, pw, prefabs.GroundSpec{HalfExtents: mgl64.Vec3{20, 0.5, 20}})
	require.NoError(t, err)
	cube, err := entity.NewCube(w, pw, mgl64.Vec3{0, 0.5, -5}, 0.5, 1, colornames.Red)
	require.NoError(t, err)
	player, err := entity.NewPlayer(w, pw, prefabs.PlayerSpec{HalfHeight: 0.5, Radius: 0.4}, entity.PlayerTuning{
		Controller: controller.DefaultConfig(),
		Push:       controller.DefaultPushConfig(),
		Weapon:     weapon.DefaultConfig(),
		Seed:       7,
	})
	require.NoError(t, err)
	return fixture{w: w, pw: pw, player: player, cube: cube}
}

func bodyOf(t *testing.T, w *ecs.World, e ecs.Entity) *physics.Body {
	t.Helper()
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	require.True(t, ok)
	return pb.Body
}

func TestTransformSyncMirrorsBodies(t *testing.T) {
	f := newFixture(t)
	body := bodyOf(t, f.w, f.cube)
	body.SetPosition(mgl64.Vec3{3, 4, 5})
	body.SetYaw(0.6)

	NewTransformSyncSystem().Update(f.w)

	for _, e := range f.w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		tr, _ := ecs.Get(f.w, e, component.TransformComponent)
		b := bodyOf(t, f.w, e)
		require.Equal(t, b.Position(), tr.Position)
		require.True(t, b.Rotation().ApproxEqual(tr.Rotation))
	}
}

func TestOutOfBoundsResetsCube(t *testing.T) {
	tests := []struct {
		name      string
		y         float64
		wantReset bool
	}{
		{"above_kill_plane", -5, false},
		{"below_kill_plane", -31, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			body := bodyOf(t, f.w, f.cube)
			body.SetPosition(mgl64.Vec3{40, tc.y, 40})
			body.SetLinearVelocity(mgl64.Vec3{1, -10, 2})

			NewOutOfBoundsSystem(-30).Update(f.w)

			cube, _ := ecs.Get(f.w, f.cube, component.CubeComponent)
			if !tc.wantReset {
				require.Zero(t, cube.Resets)
				require.Empty(t, f.w.Events().Peek())
				return
			}
			require.Equal(t, 1, cube.Resets)
			require.Equal(t, cube.Spawn, body.Position())
			require.Equal(t, mgl64.Vec3{}, body.LinearVelocity())
			evts := f.w.Events().Peek()
			require.Len(t, evts, 1)
			require.Equal(t, ecs.EventCubeReset, evts[0].Type)
			require.Equal(t, f.cube, evts[0].Data)
		})
	}
}

func TestPlayerControllerSystemAppliesInput(t *testing.T) {
	f := newFixture(t)
	in := &InputSystem{Source: controller.InputFunc(func() controller.Input {
		return controller.Input{Forward: 1}
	})}
	sched := ecs.NewScheduler(in, NewPhysicsSystem(f.pw, testDT), NewPlayerControllerSystem(testDT))

	start := bodyOf(t, f.w, f.player).Position()
	for i := 0; i < 60; i++ {
		sched.Update(f.w)
	}
	end := bodyOf(t, f.w, f.player).Position()
	require.Less(t, end.Z(), start.Z()-1, "forward walks towards -Z at yaw 0")

	player, _ := ecs.Get(f.w, f.player, component.PlayerComponent)
	require.Equal(t, controller.Grounded, player.Controller.State())
}

func TestWeaponSystemTracersAndEvents(t *testing.T) {
	f := newFixture(t)
	fire := true
	in := &InputSystem{Source: controller.InputFunc(func() controller.Input {
		return controller.Input{Fire: fire}
	})}
	_, err := entity.NewGun(f.w)
	require.NoError(t, err)
	overlay := render.NewDebugOverlay(8, 8)
	ws := NewWeaponSystem(testDT)
	sched := ecs.NewScheduler(in, NewPhysicsSystem(f.pw, testDT), NewPlayerControllerSystem(testDT), ws, NewDebugSystem(overlay))

	// Settle on the ground so the eye is at a steady height.
	fire = false
	for i := 0; i < 30; i++ {
		sched.Update(f.w)
	}
	fire = true
	in.Update(f.w)
	ws.Update(f.w)

	fired := 0
	for _, evt := range f.w.Events().Peek() {
		if evt.Type == ecs.EventShotFired {
			fired++
		}
	}
	require.Equal(t, 1, fired)
	require.Len(t, f.w.Query(component.TracerComponent.Kind()), 1, "one tracer per live shot")

	gun, ok := f.w.First(component.GunComponent.Kind())
	require.True(t, ok)
	g, _ := ecs.Get(f.w, gun, component.GunComponent)
	require.Greater(t, g.View.Recoil(), 0.0)

	fire = false
	for i := 0; i < 180; i++ {
		sched.Update(f.w)
	}
	require.Empty(t, f.w.Query(component.TracerComponent.Kind()), "tracers go with their shots")
	require.Equal(t, 1, overlay.TrajectoryCount(), "the finished shot left its trajectory")
	require.Equal(t, 2, overlay.TrackedCount())
}

func TestDebugSystemToggleAndClear(t *testing.T) {
	f := newFixture(t)
	overlay := render.NewDebugOverlay(8, 8)
	toggle, clearAll := false, false
	in := &InputSystem{Source: controller.InputFunc(func() controller.Input { return controller.Input{} })}
	ds := NewDebugSystem(overlay)

	ds.Update(f.w)
	require.Equal(t, 2, overlay.GeometryCount(), "ground and cube, never the player")

	setFlags := func() {
		in.Update(f.w)
		ecs.ForEach(f.w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
			input.ToggleOverlay, input.ClearOverlay = toggle, clearAll
		})
		ds.Update(f.w)
	}

	toggle = true
	setFlags()
	require.True(t, overlay.Visible())
	setFlags()
	require.False(t, overlay.Visible())
	require.Equal(t, 2, overlay.GeometryCount())

	toggle, clearAll = false, true
	setFlags()
	require.Zero(t, overlay.GeometryCount())
	clearAll = false
	setFlags()
	require.Zero(t, overlay.GeometryCount(), "cleared colliders are not tracked again")

	_, err := entity.NewCube(f.w, f.pw, mgl64.Vec3{3, 0.5, 0}, 0.5, 1, colornames.Blue)
	require.NoError(t, err)
	setFlags()
	require.Equal(t, 1, overlay.GeometryCount(), "new bodies are tracked")

	require.True(t, entity.Destroy(f.w, f.pw, f.cube))
	setFlags()
	require.Equal(t, 1, overlay.GeometryCount())
}

func TestPushSystemMovesNearbyCube(t *testing.T) {
	f := newFixture(t)
	body := bodyOf(t, f.w, f.player)
	cube := bodyOf(t, f.w, f.cube)
	cube.SetPosition(mgl64.Vec3{body.Position().X(), 0.5, body.Position().Z() - 1})

	in := &InputSystem{Source: controller.InputFunc(func() controller.Input {
		return controller.Input{Forward: 1}
	})}
	sched := ecs.NewScheduler(in, NewPhysicsSystem(f.pw, testDT), NewPlayerControllerSystem(testDT), NewPushSystem(f.pw))
	start := cube.Position()
	for i := 0; i < 20; i++ {
		sched.Update(f.w)
	}
	require.Less(t, cube.Position().Z(), start.Z(), "the cube is shoved away along -Z")
}
