package movement

// AdvanceTimers counts down the jump buffer and coyote windows.
// The buffer timer is left to go negative; callers only test its sign.
func AdvanceTimers(s *MotionState, dt float64, grounded bool, cfg *Config) {
	s.JumpBufferTimer -= dt

	if grounded {
		s.CoyoteTimer = cfg.JumpCoyoteTime
	} else {
		s.CoyoteTimer -= dt
	}
}
