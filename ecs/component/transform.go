package component

// Transform is the body centre in simulation units, +Y up. PrevX and PrevY
// hold the centre before the last physics step.
type Transform struct {
	X float64
	Y float64

	PrevX float64
	PrevY float64
}

var TransformComponent = NewComponent[Transform]()
