package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/movement"
)

const stickDeadzone = 0.2

// keyboardSource reads keyboard and the first gamepad once per tick.
type keyboardSource struct {
	tracker input.Tracker
}

func (k *keyboardSource) Poll() movement.InputSnapshot {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	attack := ebiten.IsKeyPressed(ebiten.KeyJ)

	raw := input.Raw{Jump: jump, Attack: attack}
	if left {
		raw.MoveX -= 1
	}
	if right {
		raw.MoveX += 1
	}
	if up {
		raw.MoveY += 1
	}
	if down {
		raw.MoveY -= 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(lx) > stickDeadzone {
			raw.MoveX = lx
		}
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(ly) > stickDeadzone {
			raw.MoveY = -ly
		}
		raw.Jump = raw.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.Attack = raw.Attack || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
	}

	return k.tracker.Snapshot(raw)
}
