package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/ecs/system"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/movement"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
)

var ErrNoLevel = errors.New("sim: no level")

// NewPlayerWorld adds the level geometry to space and spawns one player
// whose feet rest at the level's spawn point.
func NewPlayerWorld(level *prefabs.LevelSpec, cfg movement.Config, source input.Source, space *physics.Space) (*ecs.World, ecs.Entity, error) {
	if level == nil {
		return nil, 0, ErrNoLevel
	}
	for _, b := range level.Solids {
		space.AddStaticBox(cp.BB{L: b.X, B: b.Y, R: b.X + b.W, T: b.Y + b.H}, physics.LayerGround)
	}

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)

	pw, ph := level.Player.Width, level.Player.Height
	body := space.AddBody(level.Spawn.X, level.Spawn.Y+ph/2, pw, ph)

	loco := &component.Locomotion{Controller: movement.NewController(cfg), Spec: level.Movement}
	loco.Controller.AddObserver(loco)

	p := body.Position()
	adds := []error{
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, e, component.InputSourceComponent.Kind(), &component.InputSource{Source: source}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(w, e, component.LocomotionComponent.Kind(), loco),
		ecs.Add(w, e, component.ProbeSettingsComponent.Kind(), &component.ProbeSettings{ProbeSettings: physics.ProbeSettingsFor(&cfg)}),
		ecs.Add(w, e, component.ContactComponent.Kind(), &component.Contact{}),
		ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Body: body}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y, PrevX: p.X, PrevY: p.Y}),
		ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{IsFacingRight: true, State: component.AnimIdle}),
	}
	if err := errors.Join(adds...); err != nil {
		return nil, 0, fmt.Errorf("sim: spawn player: %w", err)
	}
	return w, e, nil
}

// Options configures New. Zero values pick the defaults.
type Options struct {
	Level     *prefabs.LevelSpec
	Config    movement.Config
	Source    input.Source
	Changes   <-chan prefabs.Change
	Errors    <-chan error
	Log       *slog.Logger
	FixedStep float64
}

// Sim is a ready-to-run player world with its loop.
type Sim struct {
	World  *ecs.World
	Space  *physics.Space
	Player ecs.Entity
	Loop   *Loop
}

func New(opts Options) (*Sim, error) {
	space := physics.NewSpace()
	w, player, err := NewPlayerWorld(opts.Level, opts.Config, opts.Source, space)
	if err != nil {
		return nil, err
	}

	frame := ecs.NewScheduler(system.NewInputSystem())
	if opts.Changes != nil || opts.Errors != nil {
		frame.Add(system.NewConfigReloadSystem(opts.Changes, opts.Errors, opts.Log))
	}
	frame.Add(system.NewLocomotionFrameSystem())

	phys := ecs.NewScheduler(
		system.NewCollisionSystem(space, opts.Log),
		system.NewLocomotionSystem(),
		system.NewPhysicsSystem(space),
	)

	loop := NewLoop(frame, phys)
	if opts.FixedStep > 0 {
		loop.FixedStep = opts.FixedStep
	}
	return &Sim{World: w, Space: space, Player: player, Loop: loop}, nil
}

// Advance runs one frame. See Loop.Advance.
func (s *Sim) Advance(frameDt float64) int {
	return s.Loop.Advance(s.World, frameDt)
}

// Controller returns the player's movement controller.
func (s *Sim) Controller() *movement.Controller {
	loco, ok := ecs.Get(s.World, s.Player, component.LocomotionComponent.Kind())
	if !ok {
		return nil
	}
	return loco.Controller
}

func (s *Sim) Transform() component.Transform {
	t, ok := ecs.Get(s.World, s.Player, component.TransformComponent.Kind())
	if !ok {
		return component.Transform{}
	}
	return *t
}

// Interpolated is the player centre blended between the last two physics
// steps by the loop's leftover time.
func (s *Sim) Interpolated() common.Vec2 {
	t := s.Transform()
	a := s.Loop.Alpha()
	return common.LerpVec(common.Vec2{X: t.PrevX, Y: t.PrevY}, common.Vec2{X: t.X, Y: t.Y}, a)
}

func (s *Sim) Animation() component.Animation {
	a, ok := ecs.Get(s.World, s.Player, component.AnimationComponent.Kind())
	if !ok {
		return component.Animation{}
	}
	return *a
}
