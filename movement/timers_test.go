package movement

import "testing"

func TestAdvanceTimers(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("grounded_resets_coyote", func(t *testing.T) {
		s := NewMotionState()
		s.CoyoteTimer = -3
		for i := 0; i < 5; i++ {
			AdvanceTimers(&s, 0.016, true, &cfg)
			if s.CoyoteTimer != cfg.JumpCoyoteTime {
				t.Fatalf("tick %d: coyote = %v, want %v", i, s.CoyoteTimer, cfg.JumpCoyoteTime)
			}
		}
	})

	t.Run("airborne_decreases_coyote", func(t *testing.T) {
		s := NewMotionState()
		AdvanceTimers(&s, 0.016, true, &cfg)
		prev := s.CoyoteTimer
		for i := 0; i < 20; i++ {
			AdvanceTimers(&s, 0.016, false, &cfg)
			if s.CoyoteTimer >= prev {
				t.Fatalf("tick %d: coyote %v did not decrease from %v", i, s.CoyoteTimer, prev)
			}
			prev = s.CoyoteTimer
		}
	})

	t.Run("buffer_goes_negative", func(t *testing.T) {
		s := NewMotionState()
		s.JumpBufferTimer = 0.01
		AdvanceTimers(&s, 0.02, true, &cfg)
		approxEqual(t, s.JumpBufferTimer, -0.01, 1e-12, "JumpBufferTimer")
		AdvanceTimers(&s, 0.02, false, &cfg)
		approxEqual(t, s.JumpBufferTimer, -0.03, 1e-12, "JumpBufferTimer")
	})
}
