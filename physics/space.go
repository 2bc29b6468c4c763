// Package physics wraps a Chipmunk space for box bodies moved by velocity and
// the box queries locomotion needs to sense ground and ceilings.
package physics

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/movement"
)

// Layer is a collision category bit.
type Layer uint

const (
	LayerGround Layer = 1 << iota
	LayerPlayer
)

// AllLayers matches every category.
const AllLayers = ^Layer(0)

// groundSensorWidth is the share of the body width the ground strip spans.
const groundSensorWidth = 0.9

var ErrNoBody = errors.New("physics: no body")

// Space owns the Chipmunk space. Gravity is zero; movement integrates its
// own vertical velocity and bodies carry it through SetVelocity.
type Space struct {
	space  *cp.Space
	bodies map[*cp.Body]*Body
}

func NewSpace() *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &Space{
		space:  space,
		bodies: make(map[*cp.Body]*Body),
	}
}

// Body is a dynamic, non-rotating box.
type Body struct {
	space *Space
	body  *cp.Body
	shape *cp.Shape
	w, h  float64
}

// AddStaticBox adds solid level geometry on the given layer.
func (s *Space) AddStaticBox(bb cp.BB, layer Layer) *cp.Shape {
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.NewShapeFilter(0, uint(layer), uint(AllLayers)))
	s.space.AddShape(shape)
	return shape
}

// AddBody adds a w by h box centred at (x, y).
func (s *Space) AddBody(x, y, w, h float64) *Body {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetAngle(0)

	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.NewShapeFilter(0, uint(LayerPlayer), uint(AllLayers)))

	s.space.AddBody(body)
	s.space.AddShape(shape)

	b := &Body{space: s, body: body, shape: shape, w: w, h: h}
	s.bodies[body] = b
	return b
}

// RemoveBody takes b out of the space. Later probes of b return ErrNoBody.
func (s *Space) RemoveBody(b *Body) {
	if b == nil || b.space != s {
		return
	}
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
	delete(s.bodies, b.body)
	b.space = nil
}

// Step advances every body by dt.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}
	s.space.Step(dt)
}

func (b *Body) Position() common.Vec2 {
	p := b.body.Position()
	return common.Vec2{X: p.X, Y: p.Y}
}

// SetPosition teleports the body and clears its velocity.
func (b *Body) SetPosition(p common.Vec2) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	b.body.SetVelocityVector(cp.Vector{})
}

func (b *Body) Velocity() common.Vec2 {
	v := b.body.Velocity()
	return common.Vec2{X: v.X, Y: v.Y}
}

func (b *Body) SetVelocity(v common.Vec2) {
	b.body.SetVelocity(v.X, v.Y)
}

// Bounds is the body's box at its current position.
func (b *Body) Bounds() cp.BB {
	p := b.body.Position()
	return cp.BB{L: p.X - b.w/2, B: p.Y - b.h/2, R: p.X + b.w/2, T: p.Y + b.h/2}
}

// GroundStrip is the box of height rayLength under bounds that
// QueryGrounded tests, inset to the sensor width.
func GroundStrip(bounds cp.BB, rayLength float64) cp.BB {
	inset := (bounds.R - bounds.L) * (1 - groundSensorWidth) / 2
	return cp.BB{
		L: bounds.L + inset,
		B: bounds.B - rayLength,
		R: bounds.R - inset,
		T: bounds.B,
	}
}

// HeadStrip is the box of height rayLength above bounds, widthFraction of
// the body wide, that QueryHeadBlocked tests.
func HeadStrip(bounds cp.BB, rayLength, widthFraction float64) cp.BB {
	cx := (bounds.L + bounds.R) / 2
	half := (bounds.R - bounds.L) * widthFraction / 2
	return cp.BB{
		L: cx - half,
		B: bounds.T,
		R: cx + half,
		T: bounds.T + rayLength,
	}
}

// QueryGrounded reports whether any shape on mask overlaps the ground strip
// of bounds.
func (s *Space) QueryGrounded(bounds cp.BB, rayLength float64, mask Layer) bool {
	return s.hit(GroundStrip(bounds, rayLength), mask)
}

// QueryHeadBlocked reports whether any shape on mask overlaps the head strip
// of bounds.
func (s *Space) QueryHeadBlocked(bounds cp.BB, rayLength, widthFraction float64, mask Layer) bool {
	return s.hit(HeadStrip(bounds, rayLength, widthFraction), mask)
}

// hit reports whether bb overlaps static geometry on mask. Bodies never
// count, including the one being probed.
func (s *Space) hit(bb cp.BB, mask Layer) bool {
	if bb.R <= bb.L {
		return false
	}
	found := false
	filter := cp.NewShapeFilter(0, uint(AllLayers), uint(mask))
	s.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if found {
			return
		}
		if _, ok := s.bodies[shape.Body()]; ok {
			return
		}
		found = true
	}, nil)
	return found
}

// ProbeSettings configures Probe. Zero Mask means LayerGround.
type ProbeSettings struct {
	GroundRayLength float64
	HeadRayLength   float64
	HeadWidth       float64
	Mask            Layer
}

// ProbeSettingsFor takes the detection values out of a movement config.
func ProbeSettingsFor(cfg *movement.Config) ProbeSettings {
	return ProbeSettings{
		GroundRayLength: cfg.GroundDetectionRayLength,
		HeadRayLength:   cfg.HeadDetectionRayLength,
		HeadWidth:       cfg.HeadWidth,
		Mask:            LayerGround,
	}
}

// Probe senses ground and ceiling contact for b.
func (s *Space) Probe(b *Body, settings ProbeSettings) (movement.CollisionProbe, error) {
	if b == nil || b.space != s {
		return movement.CollisionProbe{}, ErrNoBody
	}
	mask := settings.Mask
	if mask == 0 {
		mask = LayerGround
	}
	bounds := b.Bounds()
	return movement.CollisionProbe{
		Grounded:    s.QueryGrounded(bounds, settings.GroundRayLength, mask),
		HeadBlocked: s.QueryHeadBlocked(bounds, settings.HeadRayLength, settings.HeadWidth, mask),
	}, nil
}
