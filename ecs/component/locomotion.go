package component

import "github.com/milk9111/locomotion/movement"

// Locomotion owns the movement controller of an entity. Spec names the
// movement prefab it was built from so reloads can find it.
type Locomotion struct {
	Controller *movement.Controller
	Spec       string

	// Events accumulates transitions until TakeEvents clears them.
	Events movement.Event
}

var LocomotionComponent = NewComponent[Locomotion]()

// OnEvent lets a Locomotion observe its own controller.
func (l *Locomotion) OnEvent(ev movement.Event, _ movement.MotionState) {
	l.Events |= ev
}

func (l *Locomotion) OnSignals(movement.Signals) {}

// TakeEvents returns and clears the accumulated transitions.
func (l *Locomotion) TakeEvents() movement.Event {
	ev := l.Events
	l.Events = 0
	return ev
}
