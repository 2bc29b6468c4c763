package movement

// JumpChecks applies the discrete jump transitions for one frame. The order
// matters: each check reads state written by the ones before it.
// Grounded state comes from the last probe recorded on s.
func JumpChecks(s *MotionState, in InputSnapshot, cfg *Config) Event {
	var ev Event

	if in.Jump.Pressed {
		s.JumpBufferTimer = cfg.JumpBufferTime
		s.JumpReleasedDuringBuffer = false
	}

	if in.Jump.Released {
		if s.JumpBufferTimer > 0 {
			s.JumpReleasedDuringBuffer = true
		}

		if s.IsJumping && s.VerticalVelocity > 0 {
			if s.IsPastApexThreshold {
				s.IsPastApexThreshold = false
				s.IsFastFalling = true
				s.FastFallTimer = cfg.TimeForUpwardCancel
				s.VerticalVelocity = 0
			} else {
				s.IsFastFalling = true
				s.FastFallReleaseSpeed = s.VerticalVelocity
			}
			ev |= EventJumpCut
		}
	}

	buffered := s.JumpBufferTimer > 0
	switch {
	case buffered && !s.IsJumping && (s.IsGrounded || s.CoyoteTimer > 0):
		initiateJump(s, cfg)
		ev |= EventJumped

		if s.JumpReleasedDuringBuffer {
			s.IsFalling = true
			s.FastFallReleaseSpeed = s.VerticalVelocity
		}

	case buffered && s.IsJumping && s.JumpsUsed < cfg.NumberOfJumpsAllowed:
		s.IsFastFalling = false
		initiateJump(s, cfg)
		ev |= EventAirJumped

	// Falling without a jump after coyote time ran out. The budget is one
	// short because the ground jump counts as spent.
	case buffered && s.IsFalling && s.JumpsUsed < cfg.NumberOfJumpsAllowed-1:
		s.IsFastFalling = false
		initiateJump(s, cfg)
		ev |= EventAirJumped
	}

	if (s.IsFalling || s.IsJumping) && s.IsGrounded && s.VerticalVelocity <= 0 {
		land(s, cfg)
		ev |= EventLanded
	}

	return ev
}

func initiateJump(s *MotionState, cfg *Config) {
	if !s.IsJumping {
		s.IsJumping = true
	}

	s.JumpBufferTimer = 0
	s.JumpsUsed++
	s.VerticalVelocity = cfg.InitialJumpVelocity

	// a fresh arc starts its own apex window
	s.IsPastApexThreshold = false
	s.TimePastApexThreshold = 0
}

func land(s *MotionState, cfg *Config) {
	s.IsJumping = false
	s.IsFalling = false
	s.IsFastFalling = false
	s.FastFallTimer = 0
	s.IsPastApexThreshold = false
	s.TimePastApexThreshold = 0
	s.ApexProgress = 0
	s.JumpsUsed = 0

	s.VerticalVelocity = cfg.AmbientGravity
}
