package movement

import "github.com/milk9111/locomotion/common"

// ButtonState is one action's edges for a single frame. Pressed and Released
// are true for exactly one frame per physical press or release.
type ButtonState struct {
	Pressed  bool
	Held     bool
	Released bool
}

// InputSnapshot is the per-frame input intent. Only Movement.X and Jump are
// read by locomotion; Attack rides along for other consumers.
type InputSnapshot struct {
	Movement common.Vec2
	Jump     ButtonState
	Attack   ButtonState
}

// CollisionProbe is the per-tick contact result from the collision backend.
type CollisionProbe struct {
	Grounded    bool
	HeadBlocked bool
}

// MotionState is the locomotion state of one entity. Only the functions in
// this package mutate it.
type MotionState struct {
	HorizontalVelocity common.Vec2
	VerticalVelocity   float64
	IsFacingRight      bool

	IsGrounded    bool
	IsHeadBlocked bool

	IsJumping            bool
	IsFalling            bool
	IsFastFalling        bool
	FastFallTimer        float64
	FastFallReleaseSpeed float64
	JumpsUsed            int

	ApexProgress          float64
	TimePastApexThreshold float64
	IsPastApexThreshold   bool

	JumpBufferTimer          float64
	JumpReleasedDuringBuffer bool

	CoyoteTimer float64
}

// NewMotionState returns the spawn state: facing right, everything else zero.
func NewMotionState() MotionState {
	return MotionState{IsFacingRight: true}
}

// Velocity is the vector handed to the body each physics tick.
func (s *MotionState) Velocity() common.Vec2 {
	return common.Vec2{X: s.HorizontalVelocity.X, Y: s.VerticalVelocity}
}
