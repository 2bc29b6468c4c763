package component

import (
	"github.com/milk9111/locomotion/movement"
	"github.com/milk9111/locomotion/physics"
)

type Body struct {
	Body *physics.Body
}

var BodyComponent = NewComponent[Body]()

type ProbeSettings struct {
	physics.ProbeSettings
}

var ProbeSettingsComponent = NewComponent[ProbeSettings]()

// Contact is the last collision probe taken for an entity.
type Contact struct {
	Probe movement.CollisionProbe
	// Fault is set when the probe failed and Probe was zeroed instead.
	Fault bool
}

var ContactComponent = NewComponent[Contact]()
