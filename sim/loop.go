// Package sim drives the two update cadences of a locomotion world.
package sim

import "github.com/milk9111/locomotion/ecs"

const (
	DefaultFixedStep        = 1.0 / 50
	DefaultMaxStepsPerFrame = 5
)

// Loop runs the frame schedule once per Advance and the physics schedule
// as many fixed steps as the accumulated frame time allows.
type Loop struct {
	Frame   *ecs.Scheduler
	Physics *ecs.Scheduler

	FixedStep        float64
	MaxStepsPerFrame int

	acc   float64
	steps uint64
}

func NewLoop(frame, physics *ecs.Scheduler) *Loop {
	return &Loop{
		Frame:            frame,
		Physics:          physics,
		FixedStep:        DefaultFixedStep,
		MaxStepsPerFrame: DefaultMaxStepsPerFrame,
	}
}

// Advance runs one frame of frameDt seconds and returns the number of
// physics steps taken. Time beyond MaxStepsPerFrame steps is dropped.
func (l *Loop) Advance(w *ecs.World, frameDt float64) int {
	if frameDt < 0 {
		frameDt = 0
	}
	if l.Frame != nil {
		l.Frame.Update(w, frameDt)
	}

	step := l.FixedStep
	if step <= 0 {
		step = DefaultFixedStep
	}
	l.acc += frameDt

	n := 0
	for l.acc >= step {
		if l.MaxStepsPerFrame > 0 && n >= l.MaxStepsPerFrame {
			l.acc = 0
			break
		}
		if l.Physics != nil {
			l.Physics.Update(w, step)
		}
		l.acc -= step
		n++
	}
	l.steps += uint64(n)
	return n
}

// Alpha is how far the accumulator is into the next step, for render
// interpolation.
func (l *Loop) Alpha() float64 {
	step := l.FixedStep
	if step <= 0 {
		step = DefaultFixedStep
	}
	return l.acc / step
}

// Steps is the total number of physics steps run.
func (l *Loop) Steps() uint64 {
	return l.steps
}
