package system

import (
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/movement"
)

// LocomotionFrameSystem runs the frame half of every controller: timers
// and edge-triggered jump transitions.
type LocomotionFrameSystem struct{}

func NewLocomotionFrameSystem() *LocomotionFrameSystem { return &LocomotionFrameSystem{} }

func (s *LocomotionFrameSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, loco *component.Locomotion, in *component.Input) {
		if loco.Controller == nil {
			return
		}
		loco.Controller.FrameUpdate(dt, in.Snapshot)
	})
}

// LocomotionSystem runs the physics half of every controller, hands the
// resulting velocity to the body and publishes presentation state.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem { return &LocomotionSystem{} }

func (s *LocomotionSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach3(w, component.LocomotionComponent.Kind(), component.InputComponent.Kind(), component.ContactComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, in *component.Input, contact *component.Contact) {
		c := loco.Controller
		if c == nil {
			return
		}
		v := c.PhysicsUpdate(dt, in.Snapshot, contact.Probe)

		if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok && body.Body != nil {
			body.Body.SetVelocity(v)
		}
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			updateAnimation(anim, c.Signals())
		}
		pushEvents(w, e, loco.TakeEvents(), c.State())
	})
}

func updateAnimation(anim *component.Animation, sig movement.Signals) {
	anim.VerticalVelocity = sig.VerticalVelocity
	anim.WalkSpeed = sig.WalkSpeed
	anim.IsJumping = sig.IsJumping
	anim.IsGrounded = sig.IsGrounded
	anim.IsFacingRight = sig.IsFacingRight

	switch {
	case sig.VerticalVelocity > 0 && (sig.IsJumping || !sig.IsGrounded):
		anim.State = component.AnimJump
	case !sig.IsGrounded:
		anim.State = component.AnimFall
	case sig.WalkSpeed > 0.1:
		anim.State = component.AnimRun
	default:
		anim.State = component.AnimIdle
	}
}

var eventOrder = []movement.Event{
	movement.EventJumped,
	movement.EventAirJumped,
	movement.EventJumpCut,
	movement.EventLanded,
	movement.EventTurned,
}

// pushEvents queues one world event per transition bit, in a fixed order.
func pushEvents(w *ecs.World, e ecs.Entity, ev movement.Event, st movement.MotionState) {
	if ev == 0 {
		return
	}
	q := w.Events()
	for _, bit := range eventOrder {
		if ev.Has(bit) {
			q.Push(ecs.Event{Type: bit.String(), Entity: e, Data: st})
		}
	}
}
