package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpsdemo/controller"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
)

const (
	stickDeadzone = 0.2
	// stickLookSpeed is the cursor-equivalent pixels per frame at full stick.
	stickLookSpeed = 12.0
)

// InputSystem polls devices once per frame and writes the result into every
// Input component. Source, when set, replaces device polling.
type InputSystem struct {
	Source controller.InputSource

	lastX, lastY int
	hasLast      bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var in component.Input
	if i.Source != nil {
		in.Input = i.Source.Poll()
	} else {
		in = i.poll()
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		*input = in
	})
}

func (i *InputSystem) poll() component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Forward += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Forward -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Right += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Right -= 1
	}
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyShift)
	in.ToggleOverlay = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	in.ClearOverlay = inpututil.IsKeyJustPressed(ebiten.KeyF4)

	// The cursor only steers the view while the game holds it.
	captured := ebiten.CursorMode() == ebiten.CursorModeCaptured
	x, y := ebiten.CursorPosition()
	if captured && i.hasLast {
		in.LookDX = float64(x - i.lastX)
		in.LookDY = float64(y - i.lastY)
	}
	i.lastX, i.lastY, i.hasLast = x, y, captured
	in.Fire = captured && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.Right, in.Forward = lx, -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			in.LookDX += rx * stickLookSpeed
			in.LookDY += ry * stickLookSpeed
		}

		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Sprint = in.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		in.Fire = in.Fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.ToggleOverlay = in.ToggleOverlay || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	}

	in.Forward = math.Max(-1, math.Min(1, in.Forward))
	in.Right = math.Max(-1, math.Min(1, in.Right))
	return in
}
