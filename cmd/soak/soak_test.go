package main

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/milk9111/locomotion/movement"
)

func TestSampleTunablesValidate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		tun := SampleTunables(rng)
		if err := movement.Validate(tun); err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}
		if tun.NumberOfJumpsAllowed < 1 || tun.NumberOfJumpsAllowed > 5 {
			t.Fatalf("sample %d: jumps allowed %d", i, tun.NumberOfJumpsAllowed)
		}
	}
}

func TestSoakFindsNoFailures(t *testing.T) {
	report, err := Soak(Options{Runs: 16, Steps: 1500, Workers: 4, Seed: 42})
	if err != nil {
		t.Fatalf("Soak: %v", err)
	}
	if report.Runs != 16 || report.Steps != 16*1500 {
		t.Fatalf("report = %+v", report)
	}
	for _, f := range report.Failures {
		t.Errorf("seed %d step %d: %s", f.Seed, f.Step, f.Reason)
	}
	if report.Jumps == 0 || report.Landings == 0 {
		t.Fatalf("random input never jumped or landed: %+v", report)
	}
}

func TestCheck(t *testing.T) {
	cfg := movement.DefaultConfig()
	s := movement.NewMotionState()
	if got := check(s, &cfg, 0); got != "" {
		t.Fatalf("spawn state flagged: %s", got)
	}
	s.VerticalVelocity = -cfg.MaxFallSpeed - 1
	if check(s, &cfg, 0) == "" {
		t.Fatalf("over-speed fall not flagged")
	}
	if check(movement.NewMotionState(), &cfg, cfg.NumberOfJumpsAllowed+1) == "" {
		t.Fatalf("excess grants not flagged")
	}
}

func TestSoakReportsPanickingRuns(t *testing.T) {
	orig := runSim
	t.Cleanup(func() { runSim = orig })
	runSim = func(seed int64, steps int) runResult {
		if seed == 3 {
			var m map[string]int
			m["boom"] = 1
		}
		return orig(seed, steps)
	}

	report, err := Soak(Options{Runs: 5, Steps: 50, Workers: 2, Seed: 1})
	if err != nil {
		t.Fatalf("Soak: %v", err)
	}
	if report.Runs != 5 {
		t.Fatalf("Runs = %d, want every run counted", report.Runs)
	}
	if len(report.Failures) != 1 || report.Failures[0].Seed != 3 || !strings.Contains(report.Failures[0].Reason, "panic") {
		t.Fatalf("failures = %+v", report.Failures)
	}
}
