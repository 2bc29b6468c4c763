package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/movement"
)

func newTestSpace() *Space {
	s := NewSpace()
	s.AddStaticBox(cp.BB{L: -10, B: -1, R: 10, T: 0}, LayerGround)
	s.AddStaticBox(cp.BB{L: -10, B: 3, R: 10, T: 4}, LayerGround)
	return s
}

func TestQueryGrounded(t *testing.T) {
	s := newTestSpace()
	tests := []struct {
		name   string
		bounds cp.BB
		ray    float64
		mask   Layer
		want   bool
	}{
		{name: "resting", bounds: cp.BB{L: 0, B: 0, R: 1, T: 2}, ray: 0.02, mask: LayerGround, want: true},
		{name: "within ray", bounds: cp.BB{L: 0, B: 0.01, R: 1, T: 2.01}, ray: 0.02, mask: LayerGround, want: true},
		{name: "beyond ray", bounds: cp.BB{L: 0, B: 0.05, R: 1, T: 2.05}, ray: 0.02, mask: LayerGround, want: false},
		{name: "masked out", bounds: cp.BB{L: 0, B: 0, R: 1, T: 2}, ray: 0.02, mask: LayerPlayer, want: false},
		{name: "past edge", bounds: cp.BB{L: 10.5, B: 0, R: 11.5, T: 2}, ray: 0.02, mask: LayerGround, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.QueryGrounded(tt.bounds, tt.ray, tt.mask); got != tt.want {
				t.Fatalf("QueryGrounded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroundStripIgnoresWalls(t *testing.T) {
	s := NewSpace()
	s.AddStaticBox(cp.BB{L: 1, B: -10, R: 2, T: 10}, LayerGround)
	if s.QueryGrounded(cp.BB{L: 0, B: 2, R: 1, T: 4}, 0.02, LayerGround) {
		t.Fatalf("wall beside the body read as ground")
	}
}

func TestQueryHeadBlocked(t *testing.T) {
	s := newTestSpace()
	if !s.QueryHeadBlocked(cp.BB{L: 0, B: 1, R: 1, T: 3}, 0.02, 0.75, LayerGround) {
		t.Fatalf("ceiling at body top should block")
	}
	if s.QueryHeadBlocked(cp.BB{L: 0, B: 0, R: 1, T: 2}, 0.02, 0.75, LayerGround) {
		t.Fatalf("ceiling one unit away should not block")
	}

	narrow := NewSpace()
	narrow.AddStaticBox(cp.BB{L: 0.9, B: 2, R: 2, T: 3}, LayerGround)
	if narrow.QueryHeadBlocked(cp.BB{L: 0, B: 0, R: 1, T: 2}, 0.02, 0.75, LayerGround) {
		t.Fatalf("overhang outside the head width should not block")
	}
	if !narrow.QueryHeadBlocked(cp.BB{L: 0, B: 0, R: 1, T: 2}, 0.02, 1, LayerGround) {
		t.Fatalf("full-width head should catch the overhang")
	}
}

func TestProbeIgnoresOwnBody(t *testing.T) {
	s := NewSpace()
	b := s.AddBody(0, 0, 1, 2)
	other := s.AddBody(0, -2, 1, 2)
	s.Step(0.02)

	p, err := s.Probe(b, ProbeSettings{GroundRayLength: 0.5, HeadRayLength: 0.5, HeadWidth: 1, Mask: AllLayers})
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if p.Grounded || p.HeadBlocked {
		t.Fatalf("bodies should not count as geometry: %+v", p)
	}
	s.RemoveBody(other)
}

func TestProbeRemovedBody(t *testing.T) {
	s := newTestSpace()
	b := s.AddBody(0, 1, 1, 2)
	s.RemoveBody(b)
	if _, err := s.Probe(b, ProbeSettingsFor(&movement.Config{})); !errors.Is(err, ErrNoBody) {
		t.Fatalf("err = %v, want ErrNoBody", err)
	}
	if _, err := s.Probe(nil, ProbeSettings{}); !errors.Is(err, ErrNoBody) {
		t.Fatalf("nil body: err = %v", err)
	}
}

func TestBodyMovesByVelocity(t *testing.T) {
	s := NewSpace()
	b := s.AddBody(0, 10, 1, 2)
	b.SetVelocity(common.Vec2{X: 3, Y: -1})
	for i := 0; i < 10; i++ {
		s.Step(0.02)
	}
	p := b.Position()
	if math.Abs(p.X-0.6) > 1e-9 || math.Abs(p.Y-9.8) > 1e-9 {
		t.Fatalf("position = %+v, want (0.6, 9.8)", p)
	}
}

func TestBodyLandsOnFloor(t *testing.T) {
	s := newTestSpace()
	b := s.AddBody(0, 2, 1, 1)
	cfg := movement.DefaultConfig()
	settings := ProbeSettingsFor(&cfg)

	for i := 0; i < 100; i++ {
		b.SetVelocity(common.Vec2{Y: -5})
		s.Step(0.02)
	}
	if y := b.Position().Y; y < 0.3 || y > 0.6 {
		t.Fatalf("body centre at %v, should rest on the floor", y)
	}
	p, err := s.Probe(b, settings)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !p.Grounded || p.HeadBlocked {
		t.Fatalf("probe = %+v", p)
	}
}

func TestProbeStrips(t *testing.T) {
	bounds := cp.BB{L: 0, B: 0, R: 2, T: 4}

	g := GroundStrip(bounds, 0.1)
	if math.Abs((g.R-g.L)-2*groundSensorWidth) > 1e-12 || math.Abs((g.L+g.R)/2-1) > 1e-12 {
		t.Fatalf("ground strip should be centred at sensor width: %+v", g)
	}
	if g.T != bounds.B || math.Abs(g.B-(bounds.B-0.1)) > 1e-12 {
		t.Fatalf("ground strip should hang below the feet: %+v", g)
	}

	h := HeadStrip(bounds, 0.2, 0.5)
	if h.L != 0.5 || h.R != 1.5 || h.B != bounds.T || math.Abs(h.T-(bounds.T+0.2)) > 1e-12 {
		t.Fatalf("head strip = %+v", h)
	}
}
