package common

// Vec2 is a 2D vector in simulation space (+Y up).
type Vec2 struct {
	X float64
	Y float64
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Lerp interpolates from a to b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = Clamp01(t)
	return a + t*(b-a)
}

// LerpVec interpolates each component from a to b. t is clamped to [0, 1].
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// InverseLerp returns where v sits between a and b as a fraction in [0, 1].
// It returns 0 when a == b.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
