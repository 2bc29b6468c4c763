package component

// AnimationState is the clip a presentation layer should show.
type AnimationState string

const (
	AnimIdle AnimationState = "idle"
	AnimRun  AnimationState = "run"
	AnimJump AnimationState = "jump"
	AnimFall AnimationState = "fall"
)

// Animation mirrors the locomotion signals after every physics step.
type Animation struct {
	VerticalVelocity float64
	WalkSpeed        float64
	IsJumping        bool
	IsGrounded       bool
	IsFacingRight    bool
	State            AnimationState
}

var AnimationComponent = NewComponent[Animation]()
