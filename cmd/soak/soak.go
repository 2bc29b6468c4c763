package main

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/logger"
	"github.com/milk9111/locomotion/movement"
	"github.com/panjf2000/ants/v2"
)

const stepDt = 1.0 / 50

type Options struct {
	Runs    int
	Steps   int
	Workers int
	Seed    int64
}

type Failure struct {
	Seed   int64
	Step   int
	Reason string
}

type Report struct {
	Runs     int
	Steps    int
	Jumps    int
	Landings int
	Failures []Failure
}

// collector is the only state shared between runs.
type collector struct {
	mu     sync.Mutex
	report Report
}

func (c *collector) add(r runResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Runs++
	c.report.Steps += r.steps
	c.report.Jumps += r.jumps
	c.report.Landings += r.landings
	if r.failure != nil {
		c.report.Failures = append(c.report.Failures, *r.failure)
	}
}

// Soak runs opts.Runs independent simulations on an ants pool.
func Soak(opts Options) (Report, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	pool, err := ants.NewPool(opts.Workers,
		ants.WithPreAlloc(true),
		ants.WithPanicHandler(func(p interface{}) {
			logger.L().Error("soak run panicked", "panic", p)
		}),
	)
	if err != nil {
		return Report{}, fmt.Errorf("soak: pool: %w", err)
	}
	defer pool.Release()

	var (
		c  collector
		wg sync.WaitGroup
	)
	for i := 0; i < opts.Runs; i++ {
		seed := opts.Seed + int64(i)
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			c.add(safeRun(seed, opts.Steps))
		})
		if err != nil {
			wg.Done()
			return Report{}, fmt.Errorf("soak: submit run %d: %w", i, err)
		}
	}
	wg.Wait()

	sort.Slice(c.report.Failures, func(i, j int) bool { return c.report.Failures[i].Seed < c.report.Failures[j].Seed })
	return c.report, nil
}

// runSim runs one seeded simulation.
var runSim = runOne

// safeRun turns a panicking run into a failure so it still reaches the
// report.
func safeRun(seed int64, steps int) (res runResult) {
	defer func() {
		if p := recover(); p != nil {
			logger.L().Error("soak run panicked", "seed", seed, "panic", p)
			res = runResult{failure: &Failure{Seed: seed, Step: -1, Reason: fmt.Sprintf("panic: %v", p)}}
		}
	}()
	return runSim(seed, steps)
}

type runResult struct {
	steps    int
	jumps    int
	landings int
	failure  *Failure
}

// SampleTunables draws every ranged tunable uniformly from its editor range.
func SampleTunables(rng *rand.Rand) movement.Tunables {
	t := movement.DefaultTunables()
	pick := func(name string) float64 {
		r := movement.EditorRanges[name]
		return r.Min + rng.Float64()*(r.Max-r.Min)
	}
	t.MaxWalkSpeed = pick("MaxWalkSpeed")
	t.GroundAcceleration = pick("GroundAcceleration")
	t.GroundDeceleration = pick("GroundDeceleration")
	t.AirAcceleration = pick("AirAcceleration")
	t.AirDeceleration = pick("AirDeceleration")
	t.HeadWidth = pick("HeadWidth")
	t.JumpHeightCompensationFactor = pick("JumpHeightCompensationFactor")
	t.GravityOnReleaseMultiplier = pick("GravityOnReleaseMultiplier")
	t.NumberOfJumpsAllowed = int(math.Round(pick("NumberOfJumpsAllowed")))
	t.TimeForUpwardCancel = pick("TimeForUpwardCancel")
	t.ApexThreshold = pick("ApexThreshold")
	t.ApexHangTime = pick("ApexHangTime")
	t.JumpBufferTime = pick("JumpBufferTime")
	t.JumpCoyoteTime = pick("JumpCoyoteTime")
	t.JumpHeight = 1 + rng.Float64()*9
	t.TimeTillJumpApex = 0.2 + rng.Float64()*0.5
	return t
}

// runOne drives a controller with random input over flat ground and checks
// the invariants after every step.
func runOne(seed int64, steps int) runResult {
	rng := rand.New(rand.NewSource(seed))
	cfg, err := movement.NewConfig(SampleTunables(rng))
	if err != nil {
		return runResult{failure: &Failure{Seed: seed, Reason: err.Error()}}
	}
	c := movement.NewController(cfg)

	res := runResult{}
	grants := 0
	c.AddObserver(movement.ObserverFuncs{Event: func(ev movement.Event, _ movement.MotionState) {
		if ev.Has(movement.EventLanded) {
			grants = 0
			res.landings++
		}
		if ev.Has(movement.EventJumped) {
			grants++
			res.jumps++
		}
		if ev.Has(movement.EventAirJumped) {
			grants++
			res.jumps++
		}
	}})

	var y float64
	held := false
	for i := 0; i < steps; i++ {
		down := held
		if rng.Intn(8) == 0 {
			down = !held
		}
		in := movement.InputSnapshot{
			Movement: common.Vec2{X: float64(rng.Intn(3) - 1)},
			Jump:     movement.ButtonState{Pressed: down && !held, Held: down, Released: !down && held},
		}
		held = down

		v := c.Step(stepDt, in, movement.CollisionProbe{Grounded: y <= 0, HeadBlocked: rng.Intn(200) == 0})
		y = math.Max(0, y+v.Y*stepDt)
		res.steps++

		if reason := check(c.State(), &cfg, grants); reason != "" {
			res.failure = &Failure{Seed: seed, Step: i, Reason: reason}
			return res
		}
	}
	return res
}

func check(s movement.MotionState, cfg *movement.Config, grants int) string {
	switch {
	case math.IsNaN(s.VerticalVelocity) || math.IsNaN(s.HorizontalVelocity.X):
		return "velocity is NaN"
	case s.VerticalVelocity < -cfg.MaxFallSpeed || s.VerticalVelocity > movement.MaxRiseSpeed:
		return fmt.Sprintf("vertical velocity %v outside [-%v, %v]", s.VerticalVelocity, cfg.MaxFallSpeed, movement.MaxRiseSpeed)
	case math.Abs(s.HorizontalVelocity.X) > cfg.MaxWalkSpeed+1e-9:
		return fmt.Sprintf("horizontal speed %v above %v", s.HorizontalVelocity.X, cfg.MaxWalkSpeed)
	case s.HorizontalVelocity.Y != 0:
		return "horizontal velocity has a Y component"
	case grants > cfg.NumberOfJumpsAllowed:
		return fmt.Sprintf("%d jumps granted without landing, %d allowed", grants, cfg.NumberOfJumpsAllowed)
	case s.JumpsUsed > cfg.NumberOfJumpsAllowed:
		return fmt.Sprintf("jumps used %d above %d", s.JumpsUsed, cfg.NumberOfJumpsAllowed)
	case s.ApexProgress < 0 || s.ApexProgress > 1:
		return fmt.Sprintf("apex progress %v outside [0, 1]", s.ApexProgress)
	}
	return ""
}
