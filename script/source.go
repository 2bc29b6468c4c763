// Package script drives player input from a tengo script, one run per frame.
//
// A script sees the globals frame (int), time (float seconds) and state (a
// map kept between frames), and writes move_x, move_y, jump and attack.
// Outputs are reset before every run, so a script that says nothing for a
// frame produces neutral input.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/movement"
	"github.com/milk9111/locomotion/prefabs"
)

const maxAllocs = 10000

// Source is an input.Source backed by a compiled script.
type Source struct {
	name     string
	frameDt  float64
	compiled *tengo.Compiled
	state    *tengo.Map
	tracker  input.Tracker
	frame    int
	err      error
}

var _ input.Source = (*Source)(nil)

// New compiles src. frameDt is the wall time one Poll represents.
func New(name string, src []byte, frameDt float64) (*Source, error) {
	s := tengo.NewScript(src)
	for _, g := range []struct {
		name string
		v    any
	}{
		{"frame", 0},
		{"time", 0.0},
		{"state", map[string]any{}},
		{"move_x", 0.0},
		{"move_y", 0.0},
		{"jump", false},
		{"attack", false},
	} {
		if err := s.Add(g.name, g.v); err != nil {
			return nil, fmt.Errorf("script %s: %w", name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	s.SetMaxAllocs(maxAllocs)

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: compile: %w", name, err)
	}
	return &Source{
		name:     name,
		frameDt:  frameDt,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Reload recompiles the script from the prefabs and rewinds to frame zero.
// On error the running script is kept.
func (s *Source) Reload() error {
	next, err := Load(s.name, s.frameDt)
	if err != nil {
		return err
	}
	s.compiled = next.compiled
	s.Reset()
	return nil
}

// ScriptFile is the prefab the source was loaded from.
func (s *Source) ScriptFile() string {
	return prefabs.ScriptFile(s.name)
}

// Load compiles a script from the prefab overlay or the embedded set.
func Load(name string, frameDt float64) (*Source, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return New(name, src, frameDt)
}

// Poll runs the script for the next frame. After the first runtime error
// the source goes neutral and Err reports the failure.
func (s *Source) Poll() movement.InputSnapshot {
	if s.err != nil {
		return s.tracker.Snapshot(input.Raw{})
	}

	raw, err := s.run()
	s.frame++
	if err != nil {
		s.err = fmt.Errorf("script %s: frame %d: %w", s.name, s.frame-1, err)
		return s.tracker.Snapshot(input.Raw{})
	}
	return s.tracker.Snapshot(raw)
}

func (s *Source) run() (input.Raw, error) {
	c := s.compiled
	sets := []struct {
		name string
		v    any
	}{
		{"frame", s.frame},
		{"time", float64(s.frame) * s.frameDt},
		{"state", s.state},
		{"move_x", 0.0},
		{"move_y", 0.0},
		{"jump", false},
		{"attack", false},
	}
	for _, kv := range sets {
		if err := c.Set(kv.name, kv.v); err != nil {
			return input.Raw{}, err
		}
	}
	if err := c.Run(); err != nil {
		return input.Raw{}, err
	}
	if m, ok := c.Get("state").Object().(*tengo.Map); ok {
		s.state = m
	}
	return input.Raw{
		MoveX:  common.Clamp(c.Get("move_x").Float(), -1, 1),
		MoveY:  common.Clamp(c.Get("move_y").Float(), -1, 1),
		Jump:   c.Get("jump").Bool(),
		Attack: c.Get("attack").Bool(),
	}, nil
}

// Frame is the number of frames polled so far.
func (s *Source) Frame() int {
	return s.frame
}

// Reset rewinds to frame zero and clears script state and errors.
func (s *Source) Reset() {
	s.frame = 0
	s.state = &tengo.Map{Value: map[string]tengo.Object{}}
	s.tracker.Reset()
	s.err = nil
}

// Err returns the first runtime error, if any.
func (s *Source) Err() error {
	return s.err
}
