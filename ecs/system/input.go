package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// InputSystem copies the current keyboard and gamepad state into every Input
// component.
type InputSystem struct {
	poll func() component.Input
}

// NewInputSystem reads from ebiten when poll is nil.
func NewInputSystem(poll func() component.Input) *InputSystem {
	if poll == nil {
		poll = pollKeyboard
	}
	return &InputSystem{poll: poll}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	state := i.poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		*in = state
	})
}

func pollKeyboard() component.Input {
	const stickDeadzone = 0.2

	var in component.Input
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY += 1
	}
	in.Run = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	in.HarvestPressed = inpututil.IsKeyJustPressed(ebiten.KeyE)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(lx) > stickDeadzone {
			in.MoveX = lx
		}
		if math.Abs(ly) > stickDeadzone {
			in.MoveY = ly
		}
		in.Run = in.Run || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		in.HarvestPressed = in.HarvestPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return in
}
