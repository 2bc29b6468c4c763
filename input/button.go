package input

import (
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/movement"
)

// Button turns a raw "is down" reading into frame-exclusive edges.
type Button struct {
	down bool
}

// Update records this frame's reading and returns the edges for it.
func (b *Button) Update(down bool) movement.ButtonState {
	st := movement.ButtonState{
		Pressed:  down && !b.down,
		Held:     down,
		Released: !down && b.down,
	}
	b.down = down
	return st
}

// Source produces one input snapshot per frame.
type Source interface {
	Poll() movement.InputSnapshot
}

// SourceFunc adapts a function to Source.
type SourceFunc func() movement.InputSnapshot

func (f SourceFunc) Poll() movement.InputSnapshot {
	return f()
}

// Raw is one frame of device state before edge detection.
type Raw struct {
	MoveX  float64
	MoveY  float64
	Jump   bool
	Attack bool
}

// Tracker assembles snapshots from raw readings.
type Tracker struct {
	jump   Button
	attack Button
}

// Snapshot returns this frame's snapshot for r.
func (t *Tracker) Snapshot(r Raw) movement.InputSnapshot {
	return movement.InputSnapshot{
		Movement: common.Vec2{X: r.MoveX, Y: r.MoveY},
		Jump:     t.jump.Update(r.Jump),
		Attack:   t.attack.Update(r.Attack),
	}
}

// Reset forgets held buttons, e.g. after focus loss.
func (t *Tracker) Reset() {
	t.jump = Button{}
	t.attack = Button{}
}

// Neutral is a source that never moves or presses anything.
var Neutral Source = SourceFunc(func() movement.InputSnapshot { return movement.InputSnapshot{} })
