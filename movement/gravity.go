package movement

import "github.com/milk9111/locomotion/common"

const (
	// apexCreepVelocity holds the body just under zero during apex hang so
	// it reads as airborne without drifting.
	apexCreepVelocity = -0.01

	// MaxRiseSpeed caps upward velocity.
	MaxRiseSpeed = 50.0
)

// IntegrateVertical advances vertical velocity by one physics tick using the
// probe results already recorded on s.
func IntegrateVertical(s *MotionState, dt float64, cfg *Config) {
	if s.IsJumping {
		if s.IsHeadBlocked {
			s.IsFastFalling = true
		}

		switch {
		case s.apexHangElapsed(cfg):
			descend(s, dt, cfg)
		case s.VerticalVelocity >= 0 || s.IsPastApexThreshold:
			ascend(s, dt, cfg)
		default:
			descend(s, dt, cfg)
		}
	}

	if s.IsFastFalling {
		if s.FastFallTimer >= cfg.TimeForUpwardCancel {
			s.VerticalVelocity += cfg.Gravity * cfg.GravityOnReleaseMultiplier * dt
		} else {
			s.VerticalVelocity = common.Lerp(s.FastFallReleaseSpeed, 0, s.FastFallTimer/cfg.TimeForUpwardCancel)
		}
		s.FastFallTimer += dt
	}

	if !s.IsGrounded && !s.IsJumping {
		if !s.IsFalling {
			s.IsFalling = true
		}
		s.VerticalVelocity += cfg.Gravity * dt
	}

	s.VerticalVelocity = common.Clamp(s.VerticalVelocity, -cfg.MaxFallSpeed, MaxRiseSpeed)
}

func (s *MotionState) apexHangElapsed(cfg *Config) bool {
	return s.IsPastApexThreshold && s.TimePastApexThreshold >= cfg.ApexHangTime && s.VerticalVelocity <= 0
}

func ascend(s *MotionState, dt float64, cfg *Config) {
	s.ApexProgress = common.InverseLerp(cfg.InitialJumpVelocity, 0, s.VerticalVelocity)

	if s.ApexProgress > cfg.ApexThreshold {
		if !s.IsPastApexThreshold {
			s.IsPastApexThreshold = true
			s.TimePastApexThreshold = 0
		}

		s.TimePastApexThreshold += dt
		if s.TimePastApexThreshold >= cfg.ApexHangTime {
			s.VerticalVelocity = 0
		} else {
			s.VerticalVelocity = apexCreepVelocity
		}
		return
	}

	s.VerticalVelocity += cfg.Gravity * dt
	if s.IsPastApexThreshold {
		s.IsPastApexThreshold = false
	}
}

func descend(s *MotionState, dt float64, cfg *Config) {
	if !s.IsFastFalling {
		s.VerticalVelocity += cfg.Gravity * cfg.GravityOnReleaseMultiplier * dt
		return
	}
	if s.VerticalVelocity < 0 && !s.IsFalling {
		s.IsFalling = true
	}
}
