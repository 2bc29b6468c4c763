package movement

import "testing"

func pressJump() InputSnapshot {
	return InputSnapshot{Jump: ButtonState{Pressed: true, Held: true}}
}

func holdJump() InputSnapshot {
	return InputSnapshot{Jump: ButtonState{Held: true}}
}

func releaseJump() InputSnapshot {
	return InputSnapshot{Jump: ButtonState{Released: true}}
}

func TestGroundJump(t *testing.T) {
	cfg := DefaultConfig()
	c := NewController(cfg)
	c.PhysicsUpdate(0.02, InputSnapshot{}, CollisionProbe{Grounded: true})

	ev := c.FrameUpdate(0.016, pressJump())
	s := c.State()

	if !ev.Has(EventJumped) {
		t.Fatalf("expected jumped event, got %v", ev)
	}
	if !s.IsJumping {
		t.Fatalf("expected IsJumping")
	}
	if s.VerticalVelocity != cfg.InitialJumpVelocity {
		t.Fatalf("vertical velocity = %v, want %v", s.VerticalVelocity, cfg.InitialJumpVelocity)
	}
	if s.JumpsUsed != 1 {
		t.Fatalf("JumpsUsed = %d, want 1", s.JumpsUsed)
	}
	if s.JumpBufferTimer != 0 {
		t.Fatalf("buffer not consumed: %v", s.JumpBufferTimer)
	}
}

func TestAirJumpBudget(t *testing.T) {
	cfg := DefaultConfig()
	c := NewController(cfg)
	air := CollisionProbe{}

	c.PhysicsUpdate(0.02, InputSnapshot{}, CollisionProbe{Grounded: true})
	c.FrameUpdate(0.016, pressJump())
	for i := 0; i < 5; i++ {
		c.PhysicsUpdate(0.02, holdJump(), air)
	}
	if got := c.State().JumpsUsed; got != 1 {
		t.Fatalf("JumpsUsed after ground jump = %d", got)
	}

	ev := c.FrameUpdate(0.016, pressJump())
	if !ev.Has(EventAirJumped) {
		t.Fatalf("expected air jump, got %v", ev)
	}
	s := c.State()
	if s.JumpsUsed != 2 {
		t.Fatalf("JumpsUsed = %d, want 2", s.JumpsUsed)
	}
	if s.VerticalVelocity != cfg.InitialJumpVelocity {
		t.Fatalf("air jump velocity = %v", s.VerticalVelocity)
	}
	if s.IsFastFalling {
		t.Fatalf("air jump should clear fast fall")
	}

	for i := 0; i < 5; i++ {
		c.PhysicsUpdate(0.02, InputSnapshot{}, air)
	}
	before := c.State()
	ev = c.FrameUpdate(0.016, pressJump())
	after := c.State()
	if ev.Has(EventJumped) || ev.Has(EventAirJumped) {
		t.Fatalf("third jump granted: %v", ev)
	}
	if after.JumpsUsed != cfg.NumberOfJumpsAllowed {
		t.Fatalf("JumpsUsed = %d, want %d", after.JumpsUsed, cfg.NumberOfJumpsAllowed)
	}
	if after.VerticalVelocity != before.VerticalVelocity {
		t.Fatalf("denied jump changed velocity: %v -> %v", before.VerticalVelocity, after.VerticalVelocity)
	}
}

func TestJumpReleaseCut(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("past_apex_snaps_to_zero", func(t *testing.T) {
		s := NewMotionState()
		s.IsJumping = true
		s.VerticalVelocity = 5
		s.IsPastApexThreshold = true

		ev := JumpChecks(&s, releaseJump(), &cfg)

		if !ev.Has(EventJumpCut) {
			t.Fatalf("expected jump cut event, got %v", ev)
		}
		if s.VerticalVelocity != 0 {
			t.Fatalf("vertical velocity = %v, want 0", s.VerticalVelocity)
		}
		if !s.IsFastFalling {
			t.Fatalf("expected fast fall")
		}
		if s.IsPastApexThreshold {
			t.Fatalf("apex flag should clear")
		}
		if s.FastFallTimer != cfg.TimeForUpwardCancel {
			t.Fatalf("fast fall timer = %v, want %v", s.FastFallTimer, cfg.TimeForUpwardCancel)
		}
	})

	t.Run("rising_records_release_speed", func(t *testing.T) {
		s := NewMotionState()
		s.IsJumping = true
		s.VerticalVelocity = 5

		JumpChecks(&s, releaseJump(), &cfg)

		if !s.IsFastFalling {
			t.Fatalf("expected fast fall")
		}
		if s.FastFallReleaseSpeed != 5 {
			t.Fatalf("release speed = %v, want 5", s.FastFallReleaseSpeed)
		}
		if s.VerticalVelocity != 5 {
			t.Fatalf("velocity should be untouched until integration, got %v", s.VerticalVelocity)
		}
	})

	t.Run("descending_ignores_release", func(t *testing.T) {
		s := NewMotionState()
		s.IsJumping = true
		s.VerticalVelocity = -2

		ev := JumpChecks(&s, releaseJump(), &cfg)
		if ev.Has(EventJumpCut) || s.IsFastFalling {
			t.Fatalf("release while descending should not cut")
		}
	})

	t.Run("release_marks_buffer", func(t *testing.T) {
		s := NewMotionState()
		s.JumpBufferTimer = 0.05
		s.IsJumping = true
		s.JumpsUsed = cfg.NumberOfJumpsAllowed
		s.VerticalVelocity = -2

		JumpChecks(&s, releaseJump(), &cfg)
		if !s.JumpReleasedDuringBuffer {
			t.Fatalf("expected release recorded against buffer")
		}
	})
}

func TestBufferedJumpAfterRelease(t *testing.T) {
	cfg := DefaultConfig()
	s := NewMotionState()
	s.IsGrounded = true
	s.JumpBufferTimer = 0.05
	s.JumpReleasedDuringBuffer = true

	ev := JumpChecks(&s, InputSnapshot{}, &cfg)
	if !ev.Has(EventJumped) {
		t.Fatalf("expected buffered jump, got %v", ev)
	}
	if !s.IsFalling || s.FastFallReleaseSpeed != cfg.InitialJumpVelocity {
		t.Fatalf("released buffer should start falling from the jump velocity: %+v", s)
	}
	if s.IsFastFalling || ev.Has(EventJumpCut) {
		t.Fatalf("released buffer should not cut the arc: %+v", s)
	}
}

func TestCoyoteJump(t *testing.T) {
	cfg := DefaultConfig()

	s := NewMotionState()
	s.IsFalling = true
	s.CoyoteTimer = 0.05

	ev := JumpChecks(&s, pressJump(), &cfg)
	if !ev.Has(EventJumped) {
		t.Fatalf("expected coyote jump, got %v", ev)
	}
	if s.JumpsUsed != 1 || !s.IsJumping {
		t.Fatalf("coyote jump state: %+v", s)
	}
}

// The fall-state air jump checks NumberOfJumpsAllowed-1, unlike the
// jumping-state check.
func TestFallingAirJumpBudgetIsOneShort(t *testing.T) {
	cases := []struct {
		name    string
		allowed int
		used    int
		granted bool
	}{
		{"two_allowed_none_used", 2, 0, true},
		{"two_allowed_one_used", 2, 1, false},
		{"three_allowed_one_used", 3, 1, true},
		{"three_allowed_two_used", 3, 2, false},
		{"one_allowed_none_used", 1, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tun := DefaultTunables()
			tun.NumberOfJumpsAllowed = c.allowed
			cfg := MustConfig(tun)

			s := NewMotionState()
			s.IsFalling = true
			s.CoyoteTimer = -1
			s.JumpsUsed = c.used

			ev := JumpChecks(&s, pressJump(), &cfg)
			if got := ev.Has(EventAirJumped); got != c.granted {
				t.Fatalf("granted = %v, want %v", got, c.granted)
			}
			want := c.used
			if c.granted {
				want++
			}
			if s.JumpsUsed != want {
				t.Fatalf("JumpsUsed = %d, want %d", s.JumpsUsed, want)
			}
		})
	}
}

func TestLandingResets(t *testing.T) {
	cfg := DefaultConfig()

	s := NewMotionState()
	s.IsJumping = true
	s.IsFalling = true
	s.IsFastFalling = true
	s.FastFallTimer = 0.3
	s.IsPastApexThreshold = true
	s.TimePastApexThreshold = 0.2
	s.JumpsUsed = 2
	s.VerticalVelocity = -3
	s.IsGrounded = true

	ev := JumpChecks(&s, InputSnapshot{}, &cfg)

	if !ev.Has(EventLanded) {
		t.Fatalf("expected landing, got %v", ev)
	}
	if s.IsJumping || s.IsFalling || s.IsFastFalling || s.IsPastApexThreshold {
		t.Fatalf("flags not cleared: %+v", s)
	}
	if s.JumpsUsed != 0 || s.FastFallTimer != 0 || s.TimePastApexThreshold != 0 {
		t.Fatalf("counters not cleared: %+v", s)
	}
	if s.VerticalVelocity != cfg.AmbientGravity {
		t.Fatalf("resting velocity = %v, want %v", s.VerticalVelocity, cfg.AmbientGravity)
	}
}

func TestLandingWaitsForDescent(t *testing.T) {
	cfg := DefaultConfig()

	s := NewMotionState()
	s.IsJumping = true
	s.JumpsUsed = 1
	s.VerticalVelocity = 3
	s.IsGrounded = true

	ev := JumpChecks(&s, InputSnapshot{}, &cfg)
	if ev.Has(EventLanded) || !s.IsJumping {
		t.Fatalf("rising body must not land")
	}
}

func TestBufferedJumpFiresOnLanding(t *testing.T) {
	cfg := DefaultConfig()
	c := NewController(cfg)

	// spend both jumps
	c.PhysicsUpdate(0.02, InputSnapshot{}, CollisionProbe{Grounded: true})
	c.FrameUpdate(0.016, pressJump())
	c.PhysicsUpdate(0.02, InputSnapshot{}, CollisionProbe{})
	c.FrameUpdate(0.016, pressJump())
	for c.State().VerticalVelocity > -5 {
		c.PhysicsUpdate(0.02, InputSnapshot{}, CollisionProbe{})
	}

	// press just before touching down
	c.FrameUpdate(0.016, pressJump())
	if c.State().JumpBufferTimer <= 0 {
		t.Fatalf("press should arm the buffer")
	}

	c.PhysicsUpdate(0.02, InputSnapshot{}, CollisionProbe{Grounded: true})
	ev := c.FrameUpdate(0.016, holdJump())
	if !ev.Has(EventLanded) {
		t.Fatalf("expected landing, got %v", ev)
	}
	ev = c.FrameUpdate(0.016, holdJump())
	if !ev.Has(EventJumped) {
		t.Fatalf("expected buffered jump after landing, got %v", ev)
	}
	if c.State().JumpsUsed != 1 {
		t.Fatalf("JumpsUsed = %d, want 1", c.State().JumpsUsed)
	}
}

func TestBufferedJumpReleasedEarlyStartsFalling(t *testing.T) {
	cfg := DefaultConfig()

	s := NewMotionState()
	s.IsGrounded = true
	JumpChecks(&s, InputSnapshot{Jump: ButtonState{Pressed: true, Released: true}}, &cfg)

	if !s.IsJumping || !s.IsFalling {
		t.Fatalf("expected jumping and falling: %+v", s)
	}
	if s.FastFallReleaseSpeed != cfg.InitialJumpVelocity {
		t.Fatalf("release speed = %v, want %v", s.FastFallReleaseSpeed, cfg.InitialJumpVelocity)
	}
}
