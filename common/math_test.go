package common

import "testing"

func TestLerp(t *testing.T) {
	cases := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", 2, 10, 0, 2},
		{"end", 2, 10, 1, 10},
		{"half", 2, 10, 0.5, 6},
		{"clamp_low", 2, 10, -1, 2},
		{"clamp_high", 2, 10, 3, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Lerp(c.a, c.b, c.t); got != c.want {
				t.Fatalf("Lerp(%v, %v, %v) = %v, want %v", c.a, c.b, c.t, got, c.want)
			}
		})
	}
}

func TestInverseLerp(t *testing.T) {
	cases := []struct {
		name    string
		a, b, v float64
		want    float64
	}{
		{"launch_speed", 20, 0, 20, 0},
		{"zero_speed", 20, 0, 0, 1},
		{"quarter", 20, 0, 15, 0.25},
		{"above_range", 20, 0, 30, 0},
		{"below_range", 20, 0, -5, 1},
		{"degenerate", 3, 3, 3, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InverseLerp(c.a, c.b, c.v); got != c.want {
				t.Fatalf("InverseLerp(%v, %v, %v) = %v, want %v", c.a, c.b, c.v, got, c.want)
			}
		})
	}
}

func TestLerpVec(t *testing.T) {
	got := LerpVec(Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: -4}, 0.25)
	if got.X != 2.5 || got.Y != -1 {
		t.Fatalf("LerpVec = %+v", got)
	}
	if !(Vec2{}).IsZero() || (Vec2{X: 1}).IsZero() {
		t.Fatalf("IsZero misreported")
	}
}
