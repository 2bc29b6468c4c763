package system

import (
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/input"
)

// InputSystem polls every entity's source into its Input component. It runs
// once per frame so button edges stay frame-exclusive.
type InputSystem struct{}

func NewInputSystem() *InputSystem { return &InputSystem{} }

func (s *InputSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach2(w, component.InputSourceComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, src *component.InputSource, in *component.Input) {
		source := src.Source
		if source == nil {
			source = input.Neutral
		}
		in.Snapshot = source.Poll()
	})
}
