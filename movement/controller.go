package movement

import "github.com/milk9111/locomotion/common"

// Signals are the presentation values published after each physics tick.
type Signals struct {
	VerticalVelocity float64
	WalkSpeed        float64
	IsJumping        bool
	IsGrounded       bool
	IsFacingRight    bool
}

// Observer receives side-channel output from a Controller. Nothing in the
// simulation depends on what an observer does.
type Observer interface {
	OnEvent(ev Event, s MotionState)
	OnSignals(sig Signals)
}

// ObserverFuncs adapts plain functions to Observer. Either field may be nil.
type ObserverFuncs struct {
	Event   func(ev Event, s MotionState)
	Signals func(sig Signals)
}

func (o ObserverFuncs) OnEvent(ev Event, s MotionState) {
	if o.Event != nil {
		o.Event(ev, s)
	}
}

func (o ObserverFuncs) OnSignals(sig Signals) {
	if o.Signals != nil {
		o.Signals(sig)
	}
}

// Controller runs the timer subsystem and locomotion state machine for one
// entity. FrameUpdate runs once per rendered frame and PhysicsUpdate once per
// fixed step; both touch the same state and must not run concurrently.
type Controller struct {
	cfg       Config
	state     MotionState
	observers []Observer
}

// NewController builds a controller in its spawn state.
func NewController(cfg Config) *Controller {
	return &Controller{cfg: cfg, state: NewMotionState()}
}

// Config returns the active config.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig swaps the active config. Motion state is kept.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
}

// SetTunables validates and re-derives before swapping. On error the active
// config is left untouched.
func (c *Controller) SetTunables(t Tunables) error {
	cfg, err := NewConfig(t)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// State returns a copy of the motion state.
func (c *Controller) State() MotionState {
	return c.state
}

// Reset returns the controller to its spawn state.
func (c *Controller) Reset() {
	c.state = NewMotionState()
}

// AddObserver registers o for events and signals.
func (c *Controller) AddObserver(o Observer) {
	if o == nil {
		return
	}
	c.observers = append(c.observers, o)
}

// FrameUpdate counts down timers and samples the input edges.
func (c *Controller) FrameUpdate(dt float64, in InputSnapshot) Event {
	AdvanceTimers(&c.state, dt, c.state.IsGrounded, &c.cfg)
	ev := JumpChecks(&c.state, in, &c.cfg)
	c.emit(ev)
	return ev
}

// PhysicsUpdate records the probe, integrates vertical motion, blends
// horizontal motion and returns the velocity for the body.
func (c *Controller) PhysicsUpdate(dt float64, in InputSnapshot, probe CollisionProbe) common.Vec2 {
	c.state.IsGrounded = probe.Grounded
	c.state.IsHeadBlocked = probe.HeadBlocked

	IntegrateVertical(&c.state, dt, &c.cfg)

	accel, decel := c.cfg.AirAcceleration, c.cfg.AirDeceleration
	if c.state.IsGrounded {
		accel, decel = c.cfg.GroundAcceleration, c.cfg.GroundDeceleration
	}
	c.emit(Move(&c.state, in.Movement, accel, decel, dt, &c.cfg))

	if len(c.observers) > 0 {
		sig := c.Signals()
		for _, o := range c.observers {
			o.OnSignals(sig)
		}
	}
	return c.state.Velocity()
}

// Step runs FrameUpdate then PhysicsUpdate for hosts with a single cadence.
func (c *Controller) Step(dt float64, in InputSnapshot, probe CollisionProbe) common.Vec2 {
	c.FrameUpdate(dt, in)
	return c.PhysicsUpdate(dt, in, probe)
}

// Signals returns the presentation values for the current state.
func (c *Controller) Signals() Signals {
	speed := c.state.HorizontalVelocity.X
	if speed < 0 {
		speed = -speed
	}
	return Signals{
		VerticalVelocity: c.state.VerticalVelocity,
		WalkSpeed:        speed,
		IsJumping:        c.state.IsJumping,
		IsGrounded:       c.state.IsGrounded,
		IsFacingRight:    c.state.IsFacingRight,
	}
}

func (c *Controller) emit(ev Event) {
	if ev == 0 {
		return
	}
	for _, o := range c.observers {
		o.OnEvent(ev, c.state)
	}
}
