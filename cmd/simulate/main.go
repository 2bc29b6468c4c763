// Command simulate runs a tengo input script against a level headlessly and
// prints the player's state every few physics steps.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/milk9111/locomotion/logger"
	"github.com/milk9111/locomotion/movement"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/script"
	"github.com/milk9111/locomotion/sim"
)

type row struct {
	Frame    int     `json:"frame"`
	Step     uint64  `json:"step"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Grounded bool    `json:"grounded"`
	Jumping  bool    `json:"jumping"`
	Falling  bool    `json:"falling"`
	Jumps    int     `json:"jumps"`
	Events   string  `json:"events,omitempty"`
}

func main() {
	scriptName := flag.String("script", "hop", "tengo script under prefabs/scripts/")
	levelName := flag.String("level", prefabs.LevelSpecFile, "level prefab")
	movementFile := flag.String("movement", "", "movement yaml path; overrides the level's prefab")
	frames := flag.Int("frames", 250, "frames to simulate")
	fps := flag.Float64("fps", 60, "frame rate; physics runs at a fixed 50Hz")
	every := flag.Int("every", 1, "print every n-th frame")
	format := flag.String("format", "table", "table or json")
	logLevel := flag.String("log-level", "warn", "debug, info, warn or error")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "console"})

	if err := run(os.Stdout, *scriptName, *levelName, *movementFile, *frames, *fps, *every, *format); err != nil {
		logger.L().Error("simulate failed", "err", err)
		os.Exit(1)
	}
}

func run(out io.Writer, scriptName, levelName, movementFile string, frames int, fps float64, every int, format string) error {
	if fps <= 0 {
		return fmt.Errorf("simulate: fps must be positive")
	}
	if every < 1 {
		every = 1
	}
	frameDt := 1 / fps

	level, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(level, movementFile)
	if err != nil {
		return err
	}
	src, err := script.Load(scriptName, frameDt)
	if err != nil {
		return err
	}
	s, err := sim.New(sim.Options{Level: level, Config: cfg, Source: src, Log: logger.L()})
	if err != nil {
		return err
	}

	emit := tableWriter(out)
	if format == "json" {
		emit = jsonWriter(out)
	}

	for f := 0; f < frames; f++ {
		s.Advance(frameDt)
		var events movement.Event
		for _, ev := range s.World.Events().Drain() {
			events |= eventFromName(ev.Type)
		}
		if src.Err() != nil {
			return src.Err()
		}
		if f%every != 0 && events == 0 {
			continue
		}

		st := s.Controller().State()
		tr := s.Transform()
		r := row{
			Frame:    f,
			Step:     s.Loop.Steps(),
			X:        tr.X,
			Y:        tr.Y,
			VX:       st.HorizontalVelocity.X,
			VY:       st.VerticalVelocity,
			Grounded: st.IsGrounded,
			Jumping:  st.IsJumping,
			Falling:  st.IsFalling,
			Jumps:    st.JumpsUsed,
		}
		if events != 0 {
			r.Events = events.String()
		}
		if err := emit(r); err != nil {
			return err
		}
	}
	return emit(row{Frame: -1})
}

func loadConfig(level *prefabs.LevelSpec, movementFile string) (movement.Config, error) {
	if movementFile == "" {
		return prefabs.LoadTunables(level.Movement)
	}
	spec, err := prefabs.LoadMovementSpecFile(movementFile)
	if err != nil {
		return movement.Config{}, err
	}
	return movement.NewConfig(spec.Tunables())
}

var eventNames = map[string]movement.Event{
	movement.EventJumped.String():    movement.EventJumped,
	movement.EventAirJumped.String(): movement.EventAirJumped,
	movement.EventJumpCut.String():   movement.EventJumpCut,
	movement.EventLanded.String():    movement.EventLanded,
	movement.EventTurned.String():    movement.EventTurned,
}

func eventFromName(name string) movement.Event {
	return eventNames[name]
}

// A row with Frame -1 flushes the writer.
func tableWriter(out io.Writer) func(row) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := false
	return func(r row) error {
		if r.Frame < 0 {
			return tw.Flush()
		}
		if !header {
			fmt.Fprintln(tw, "frame\tstep\tx\ty\tvx\tvy\tgrounded\tjumping\tfalling\tjumps\tevents")
			header = true
		}
		_, err := fmt.Fprintf(tw, "%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%v\t%v\t%v\t%d\t%s\n",
			r.Frame, r.Step, r.X, r.Y, r.VX, r.VY, r.Grounded, r.Jumping, r.Falling, r.Jumps, r.Events)
		return err
	}
}

func jsonWriter(out io.Writer) func(row) error {
	enc := json.NewEncoder(out)
	return func(r row) error {
		if r.Frame < 0 {
			return nil
		}
		return enc.Encode(r)
	}
}
