package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

// newCharacter puts a capsule character with its feet at feetY on the test ground.
func newCharacter(t *testing.T, w *World, feetY float64) (*Body, *CharacterController) {
	t.Helper()
	body := w.CreateBody(BodyDesc{Type: BodyKinematic, Shape: Capsule(0.5, 0.4), Position: mgl64.Vec3{0, feetY + 0.9, 0}})
	return body, NewCharacterController(w, DefaultCharacterConfig())
}

func settle(t *testing.T, c *CharacterController, body *Body) {
	t.Helper()
	m := c.ComputeMovement(body, mgl64.Vec3{0, -0.01, 0})
	require.True(t, m.Grounded)
	body.SetPosition(body.Position().Add(m.Translation))
}

func TestCharacterLandsOnGround(t *testing.T) {
	w, ground := newTestWorld(t)
	body, c := newCharacter(t, w, 0.2)

	m := c.ComputeMovement(body, mgl64.Vec3{0, -0.3, 0})
	require.True(t, m.Grounded)
	require.InDelta(t, -0.2, m.Translation.Y(), 1e-9)
	require.Equal(t, mgl64.Vec3{0, 1, 0}, m.GroundNormal)
	require.Zero(t, m.SlopeAngle)
	require.NotContains(t, m.Collisions, ground)
}

func TestCharacterStaysAirborneWhenFarAboveGround(t *testing.T) {
	w, _ := newTestWorld(t)
	body, c := newCharacter(t, w, 3)

	m := c.ComputeMovement(body, mgl64.Vec3{0, -0.1, 0})
	require.False(t, m.Grounded)
	require.InDelta(t, -0.1, m.Translation.Y(), 1e-9)
}

func TestCharacterBlockedByWall(t *testing.T) {
	w, _ := newTestWorld(t)
	wall := w.CreateBody(BodyDesc{Type: BodyStatic, Shape: Box(mgl64.Vec3{0.5, 2, 2}), Position: mgl64.Vec3{2, 2, 0}})
	body, c := newCharacter(t, w, 0)
	settle(t, c, body)

	m := c.ComputeMovement(body, mgl64.Vec3{1.2, -0.01, 0})
	require.Contains(t, m.Collisions, wall)
	require.LessOrEqual(t, m.Translation.X()+0.4, 1.5+1e-6)
	require.Greater(t, m.Translation.X(), 1.0)
	require.True(t, m.Grounded)
}

func TestCharacterSlidesAlongWall(t *testing.T) {
	w, _ := newTestWorld(t)
	w.CreateBody(BodyDesc{Type: BodyStatic, Shape: Box(mgl64.Vec3{0.5, 2, 5}), Position: mgl64.Vec3{1.2, 2, 0}})
	body, c := newCharacter(t, w, 0)
	settle(t, c, body)

	m := c.ComputeMovement(body, mgl64.Vec3{0.5, -0.01, -0.5})
	require.InDelta(t, -0.5, m.Translation.Z(), 1e-6)
	require.Less(t, m.Translation.X(), 0.5)
}

func TestCharacterAutostep(t *testing.T) {
	tests := []struct {
		name        string
		stepHeight  float64
		wantClimbed bool
	}{
		{"low_step_is_climbed", 0.3, true},
		{"high_step_blocks", 1.0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newTestWorld(t)
			step := w.CreateBody(BodyDesc{
				Type:     BodyStatic,
				Shape:    Box(mgl64.Vec3{0.5, tc.stepHeight / 2, 2}),
				Position: mgl64.Vec3{2, tc.stepHeight / 2, 0},
			})
			body, c := newCharacter(t, w, 0)
			settle(t, c, body)

			m := c.ComputeMovement(body, mgl64.Vec3{1.3, -0.01, 0})
			if tc.wantClimbed {
				require.True(t, m.Grounded)
				require.InDelta(t, tc.stepHeight, m.Translation.Y(), 1e-9)
				require.InDelta(t, 1.3, m.Translation.X(), 1e-9)
				require.NotContains(t, m.Collisions, step)
				return
			}
			require.Contains(t, m.Collisions, step)
			require.Less(t, m.Translation.X(), 1.2)
			require.InDelta(t, 0, m.Translation.Y(), 1e-9)
		})
	}
}

func TestCharacterDynamicBodiesAreNotSteppedOn(t *testing.T) {
	w, _ := newTestWorld(t)
	cube := w.CreateBody(BodyDesc{Type: BodyDynamic, Shape: Box(mgl64.Vec3{0.15, 0.15, 0.15}), Position: mgl64.Vec3{1.5, 0.15, 0}, Mass: 1})
	body, c := newCharacter(t, w, 0)
	settle(t, c, body)

	m := c.ComputeMovement(body, mgl64.Vec3{1.2, -0.01, 0})
	require.Contains(t, m.Collisions, cube)
	require.InDelta(t, 0, m.Translation.Y(), 1e-9)
}

func TestCharacterCeilingClamp(t *testing.T) {
	w, _ := newTestWorld(t)
	w.CreateBody(BodyDesc{Type: BodyStatic, Shape: Box(mgl64.Vec3{2, 0.5, 2}), Position: mgl64.Vec3{0, 2.5, 0}})
	body, c := newCharacter(t, w, 0)

	m := c.ComputeMovement(body, mgl64.Vec3{0, 0.5, 0})
	require.False(t, m.Grounded)
	require.InDelta(t, 0.2, m.Translation.Y(), 1e-9)
	require.InDelta(t, 0, m.Translation.X(), 1e-9)
}

func TestCharacterSteepRampBlocksUphill(t *testing.T) {
	w, _ := newTestWorld(t)
	// 60 degree ramp rising towards +X
	w.CreateBody(BodyDesc{Type: BodyStatic, Shape: Ramp(mgl64.Vec3{1, 1.7320508, 2}), Position: mgl64.Vec3{0, 1.7320508, 0}})
	body, c := newCharacter(t, w, 1.7320508)
	settle(t, c, body)
	require.Greater(t, c.slope, c.cfg.MaxSlopeClimbAngle)

	up := c.ComputeMovement(body, mgl64.Vec3{0.1, -0.01, 0})
	require.InDelta(t, 0, up.Translation.X(), 1e-9)
}
