package system

import (
	"log/slog"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/movement"
	"github.com/milk9111/locomotion/physics"
)

// CollisionSystem refreshes every Contact from the physics space. A failed
// probe reads as no contact.
type CollisionSystem struct {
	Space *physics.Space
	Log   *slog.Logger
}

func NewCollisionSystem(space *physics.Space, log *slog.Logger) *CollisionSystem {
	return &CollisionSystem{Space: space, Log: log}
}

func (s *CollisionSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach3(w, component.BodyComponent.Kind(), component.ProbeSettingsComponent.Kind(), component.ContactComponent.Kind(), func(e ecs.Entity, body *component.Body, settings *component.ProbeSettings, contact *component.Contact) {
		if s.Space == nil {
			s.fault(e, contact, physics.ErrNoBody)
			return
		}
		probe, err := s.Space.Probe(body.Body, settings.ProbeSettings)
		if err != nil {
			s.fault(e, contact, err)
			return
		}
		contact.Probe = probe
		contact.Fault = false
	})
}

func (s *CollisionSystem) fault(e ecs.Entity, contact *component.Contact, err error) {
	if !contact.Fault && s.Log != nil {
		s.Log.Debug("collision probe failed", "entity", e.String(), "err", err)
	}
	contact.Probe = movement.CollisionProbe{}
	contact.Fault = true
}
