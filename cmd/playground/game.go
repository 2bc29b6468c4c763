package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/logger"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/script"
	"github.com/milk9111/locomotion/sim"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	pixelsPerUnit = 32.0
)

type Options struct {
	Level  string
	Script string
	Debug  bool
	Reload bool
}

type Game struct {
	opts    Options
	log     *slog.Logger
	level   *prefabs.LevelSpec
	sim     *sim.Sim
	script  *script.Source
	watcher *prefabs.Watcher

	frames int
	camX   float64
	camY   float64
	last   string
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{opts: opts, log: logger.L()}

	level, err := prefabs.LoadLevelSpec(opts.Level)
	if err != nil {
		return nil, err
	}
	g.level = level

	if opts.Reload {
		w, err := prefabs.NewWatcher()
		if err != nil {
			g.log.Warn("hot reload disabled", "dir", prefabs.OverlayDir, "err", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.reset(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// reset rebuilds the world from the prefabs currently on disk.
func (g *Game) reset() error {
	cfg, err := prefabs.LoadTunables(g.level.Movement)
	if err != nil {
		return err
	}

	var src input.Source = &keyboardSource{}
	g.script = nil
	if g.opts.Script != "" {
		s, err := script.Load(g.opts.Script, 1/float64(ebiten.TPS()))
		if err != nil {
			return err
		}
		src = s
		g.script = s
	}

	simOpts := sim.Options{Level: g.level, Config: cfg, Source: src, Log: g.log}
	if g.watcher != nil {
		simOpts.Changes = g.watcher.Changes
		simOpts.Errors = g.watcher.Errors
	}
	s, err := sim.New(simOpts)
	if err != nil {
		return err
	}
	g.sim = s
	tr := s.Transform()
	g.camX, g.camY = tr.X, tr.Y
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			g.log.Warn("reset failed", "err", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.opts.Debug = !g.opts.Debug
	}

	g.sim.Advance(1 / float64(ebiten.TPS()))

	for _, ev := range g.sim.World.Events().Drain() {
		g.last = ev.Type
		g.log.Debug("locomotion event", "type", ev.Type, "entity", ev.Entity.String())
	}

	tr := g.sim.Transform()
	g.camX += (tr.X - g.camX) * 0.1
	g.camY += (tr.Y - g.camY) * 0.1
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	for _, b := range g.level.Solids {
		x, y := g.toScreen(b.X, b.Y+b.H)
		vector.DrawFilledRect(screen, x, y, float32(b.W*pixelsPerUnit), float32(b.H*pixelsPerUnit), colornames.Slategray, false)
	}

	tr := g.sim.Interpolated()
	anim := g.sim.Animation()
	pw, ph := g.level.Player.Width, g.level.Player.Height
	x, y := g.toScreen(tr.X-pw/2, tr.Y+ph/2)
	vector.DrawFilledRect(screen, x, y, float32(pw*pixelsPerUnit), float32(ph*pixelsPerUnit), playerColor(anim.State), false)

	// facing marker
	fx := tr.X + pw/4
	if !anim.IsFacingRight {
		fx = tr.X - pw/4
	}
	mx, my := g.toScreen(fx-0.1, tr.Y+ph/4)
	vector.DrawFilledRect(screen, mx, my, 0.2*pixelsPerUnit, 0.2*pixelsPerUnit, colornames.White, false)

	if g.opts.Debug {
		g.drawProbes(screen)
	}

	ebitenutil.DebugPrint(screen, g.hud())
}

// drawProbes outlines the strips the collision system last tested, at the
// body's physics position.
func (g *Game) drawProbes(screen *ebiten.Image) {
	w := g.sim.World
	for _, e := range ecs.Query(w, component.BodyComponent, component.ProbeSettingsComponent, component.ContactComponent) {
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		ps, _ := ecs.Get(w, e, component.ProbeSettingsComponent.Kind())
		contact, _ := ecs.Get(w, e, component.ContactComponent.Kind())
		if body.Body == nil {
			continue
		}
		bounds := body.Body.Bounds()
		g.strokeBB(screen, physics.GroundStrip(bounds, ps.GroundRayLength), strokeColor(contact.Probe.Grounded))
		g.strokeBB(screen, physics.HeadStrip(bounds, ps.HeadRayLength, ps.HeadWidth), strokeColor(contact.Probe.HeadBlocked))
	}
}

func (g *Game) strokeBB(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y := g.toScreen(bb.L, bb.T)
	w := float32((bb.R - bb.L) * pixelsPerUnit)
	h := float32((bb.T-bb.B)*pixelsPerUnit) + 1
	vector.StrokeRect(screen, x, y, w, h, 1, clr, false)
}

func (g *Game) hud() string {
	c := g.sim.Controller()
	st := c.State()
	text := fmt.Sprintf("FPS: %.1f  steps: %d  last: %s\n[arrows/AD] move  [space] jump  [R] reset  [F1] debug",
		ebiten.ActualFPS(), g.sim.Loop.Steps(), g.last)
	if g.script != nil {
		text += fmt.Sprintf("\nscript %s frame %d", g.script.ScriptFile(), g.script.Frame())
		if err := g.script.Err(); err != nil {
			text += fmt.Sprintf("  error: %v", err)
		}
	}
	if g.opts.Debug {
		text += fmt.Sprintf("\nvx=%.2f vy=%.2f grounded=%v jumping=%v falling=%v fastfall=%v jumps=%d/%d\nbuffer=%.3f coyote=%.3f apex=%.2f",
			st.HorizontalVelocity.X, st.VerticalVelocity, st.IsGrounded, st.IsJumping, st.IsFalling, st.IsFastFalling,
			st.JumpsUsed, c.Config().NumberOfJumpsAllowed, st.JumpBufferTimer, st.CoyoteTimer, st.ApexProgress)
	}
	return text
}

// toScreen maps a simulation point (+Y up) to screen pixels around the camera.
func (g *Game) toScreen(x, y float64) (float32, float32) {
	sx := (x-g.camX)*pixelsPerUnit + baseWidth/2
	sy := (g.camY-y)*pixelsPerUnit + baseHeight/2
	return float32(sx), float32(sy)
}

func playerColor(state component.AnimationState) color.Color {
	switch state {
	case component.AnimJump:
		return colornames.Gold
	case component.AnimFall:
		return colornames.Orange
	case component.AnimRun:
		return colornames.Crimson
	default:
		return colornames.Indianred
	}
}

func strokeColor(hit bool) color.Color {
	if hit {
		return colornames.Lime
	}
	return colornames.Red
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
