package movement

import "github.com/milk9111/locomotion/common"

// Move blends horizontal velocity toward the input target. acceleration and
// deceleration are per-second blend rates, so the step is a fraction of the
// remaining gap rather than a fixed amount.
func Move(s *MotionState, moveInput common.Vec2, acceleration, deceleration, dt float64, cfg *Config) Event {
	var ev Event

	if !moveInput.IsZero() {
		if TurnCheck(s, moveInput) {
			ev |= EventTurned
		}

		target := common.Vec2{X: moveInput.X * cfg.MaxWalkSpeed}
		s.HorizontalVelocity = common.LerpVec(s.HorizontalVelocity, target, acceleration*dt)
		return ev
	}

	s.HorizontalVelocity = common.LerpVec(s.HorizontalVelocity, common.Vec2{}, deceleration*dt)
	return ev
}

// TurnCheck flips facing when the input points against it and reports
// whether a flip happened. Zero horizontal input never flips.
func TurnCheck(s *MotionState, moveInput common.Vec2) bool {
	switch {
	case s.IsFacingRight && moveInput.X < 0:
		s.IsFacingRight = false
		return true
	case !s.IsFacingRight && moveInput.X > 0:
		s.IsFacingRight = true
		return true
	}
	return false
}
