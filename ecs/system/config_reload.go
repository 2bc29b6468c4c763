package system

import (
	"log/slog"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/movement"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
)

// ReloadableSource is an input source rebuilt from a prefab script when the
// file changes.
type ReloadableSource interface {
	ScriptFile() string
	Reload() error
}

// ConfigReloadSystem applies edited prefabs to the entities built from
// them: movement specs to controllers, scripts to reloadable input sources.
// A reload that fails is logged and the running version is kept. Watcher
// errors are logged as they arrive.
type ConfigReloadSystem struct {
	Changes <-chan prefabs.Change
	Errors  <-chan error
	Load    func(name string) (movement.Config, error)
	Log     *slog.Logger
}

func NewConfigReloadSystem(changes <-chan prefabs.Change, errs <-chan error, log *slog.Logger) *ConfigReloadSystem {
	return &ConfigReloadSystem{Changes: changes, Errors: errs, Load: prefabs.LoadTunables, Log: log}
}

func (s *ConfigReloadSystem) Update(w *ecs.World, _ float64) {
	s.drainErrors()
	for _, c := range s.pending() {
		switch c.Kind {
		case prefabs.ChangeSpec:
			s.reload(w, c.Name)
		case prefabs.ChangeScript:
			s.reloadScript(w, c.Name)
		}
	}
}

func (s *ConfigReloadSystem) drainErrors() {
	for s.Errors != nil {
		select {
		case err, ok := <-s.Errors:
			if !ok {
				s.Errors = nil
				return
			}
			s.warn("prefab watcher error", "err", err)
		default:
			return
		}
	}
}

// pending drains the change channel without blocking. Each name is
// reported once.
func (s *ConfigReloadSystem) pending() []prefabs.Change {
	if s.Changes == nil {
		return nil
	}
	var changes []prefabs.Change
	seen := make(map[string]bool)
	for {
		select {
		case c, ok := <-s.Changes:
			if !ok {
				s.Changes = nil
				return changes
			}
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			changes = append(changes, c)
		default:
			return changes
		}
	}
}

func (s *ConfigReloadSystem) reloadScript(w *ecs.World, name string) {
	ecs.ForEach(w, component.InputSourceComponent.Kind(), func(e ecs.Entity, src *component.InputSource) {
		rs, ok := src.Source.(ReloadableSource)
		if !ok || rs.ScriptFile() != name {
			return
		}
		if err := rs.Reload(); err != nil {
			s.warn("script reload rejected", "file", name, "err", err)
			return
		}
		s.info("script reloaded", "file", name, "entity", e.String())
	})
}

func (s *ConfigReloadSystem) reload(w *ecs.World, name string) {
	var cfg movement.Config
	var loadErr error
	loaded := false

	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		if loco.Spec != name || loco.Controller == nil || loadErr != nil {
			return
		}
		if !loaded {
			cfg, loadErr = s.Load(name)
			loaded = true
			if loadErr != nil {
				s.warn("movement reload rejected", "file", name, "err", loadErr)
				return
			}
		}
		loco.Controller.SetConfig(cfg)
		if ps, ok := ecs.Get(w, e, component.ProbeSettingsComponent.Kind()); ok {
			mask := ps.Mask
			ps.ProbeSettings = physics.ProbeSettingsFor(&cfg)
			if mask != 0 {
				ps.Mask = mask
			}
		}
		s.info("movement reloaded", "file", name, "entity", e.String())
	})
}

func (s *ConfigReloadSystem) warn(msg string, args ...any) {
	if s.Log != nil {
		s.Log.Warn(msg, args...)
	}
}

func (s *ConfigReloadSystem) info(msg string, args ...any) {
	if s.Log != nil {
		s.Log.Info(msg, args...)
	}
}
