package system

import (
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/physics"
)

// PhysicsSystem steps the space and copies body positions into transforms,
// keeping the previous position for render interpolation.
type PhysicsSystem struct {
	Space *physics.Space
}

func NewPhysicsSystem(space *physics.Space) *PhysicsSystem {
	return &PhysicsSystem{Space: space}
}

func (s *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if s.Space == nil {
		return
	}
	s.Space.Step(dt)

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, body *component.Body, t *component.Transform) {
		if body.Body == nil {
			return
		}
		p := body.Body.Position()
		t.PrevX, t.PrevY = t.X, t.Y
		t.X, t.Y = p.X, p.Y
	})
}
