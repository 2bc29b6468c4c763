package component

import (
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/movement"
)

// Input stores this frame's snapshot for an entity.
type Input struct {
	Snapshot movement.InputSnapshot
}

var InputComponent = NewComponent[Input]()

// InputSource is polled once per frame to fill Input.
type InputSource struct {
	Source input.Source
}

var InputSourceComponent = NewComponent[InputSource]()
