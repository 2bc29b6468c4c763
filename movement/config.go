package movement

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("movement: invalid config")

// DefaultAmbientGravity is the resting sink velocity written on landing.
const DefaultAmbientGravity = -9.81

// Tunables is the flat record of designer-facing movement parameters.
type Tunables struct {
	MaxWalkSpeed       float64
	GroundAcceleration float64
	GroundDeceleration float64
	AirAcceleration    float64
	AirDeceleration    float64

	GroundDetectionRayLength float64
	HeadDetectionRayLength   float64
	HeadWidth                float64

	JumpHeight                   float64
	JumpHeightCompensationFactor float64
	TimeTillJumpApex             float64
	GravityOnReleaseMultiplier   float64
	MaxFallSpeed                 float64
	NumberOfJumpsAllowed         int

	TimeForUpwardCancel float64

	ApexThreshold float64
	ApexHangTime  float64

	JumpBufferTime float64
	JumpCoyoteTime float64

	AmbientGravity float64
}

// DefaultTunables returns the stock tuning.
func DefaultTunables() Tunables {
	return Tunables{
		MaxWalkSpeed:       10,
		GroundAcceleration: 5,
		GroundDeceleration: 20,
		AirAcceleration:    5,
		AirDeceleration:    5,

		GroundDetectionRayLength: 0.02,
		HeadDetectionRayLength:   0.02,
		HeadWidth:                0.75,

		JumpHeight:                   6.5,
		JumpHeightCompensationFactor: 1.054,
		TimeTillJumpApex:             0.35,
		GravityOnReleaseMultiplier:   2,
		MaxFallSpeed:                 26,
		NumberOfJumpsAllowed:         2,

		TimeForUpwardCancel: 0.027,

		ApexThreshold: 0.97,
		ApexHangTime:  0.075,

		JumpBufferTime: 0.125,
		JumpCoyoteTime: 0.1,

		AmbientGravity: DefaultAmbientGravity,
	}
}

// Derived holds values computed from Tunables.
type Derived struct {
	AdjustedJumpHeight  float64
	Gravity             float64
	InitialJumpVelocity float64
}

// Derive computes the jump physics constants. It is a pure function of t.
func Derive(t Tunables) Derived {
	adjusted := t.JumpHeight * t.JumpHeightCompensationFactor
	gravity := -(2 * adjusted) / (t.TimeTillJumpApex * t.TimeTillJumpApex)
	return Derived{
		AdjustedJumpHeight:  adjusted,
		Gravity:             gravity,
		InitialJumpVelocity: math.Abs(gravity) * t.TimeTillJumpApex,
	}
}

// Config pairs tunables with the values derived from them. The zero value is
// not usable; build one with NewConfig so the two halves never disagree.
type Config struct {
	Tunables
	Derived
}

// NewConfig validates t and derives the jump constants.
func NewConfig(t Tunables) (Config, error) {
	if err := Validate(t); err != nil {
		return Config{}, err
	}
	return Config{Tunables: t, Derived: Derive(t)}, nil
}

// MustConfig is NewConfig for known-good tunables. It panics on error.
func MustConfig(t Tunables) Config {
	cfg, err := NewConfig(t)
	if err != nil {
		panic(err)
	}
	return cfg
}

// DefaultConfig returns the config built from DefaultTunables.
func DefaultConfig() Config {
	return MustConfig(DefaultTunables())
}

// ConfigError describes the first tunable that failed validation.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("movement: invalid config: %s = %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate rejects tunables that would feed NaN or Inf into the simulation.
func Validate(t Tunables) error {
	positive := []struct {
		name string
		v    float64
	}{
		{"TimeTillJumpApex", t.TimeTillJumpApex},
		{"JumpHeight", t.JumpHeight},
		{"JumpHeightCompensationFactor", t.JumpHeightCompensationFactor},
	}
	for _, f := range positive {
		if err := checkFinite(f.name, f.v); err != nil {
			return err
		}
		if f.v <= 0 {
			return &ConfigError{Field: f.name, Value: f.v, Reason: "must be positive"}
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"MaxWalkSpeed", t.MaxWalkSpeed},
		{"GroundAcceleration", t.GroundAcceleration},
		{"GroundDeceleration", t.GroundDeceleration},
		{"AirAcceleration", t.AirAcceleration},
		{"AirDeceleration", t.AirDeceleration},
		{"GroundDetectionRayLength", t.GroundDetectionRayLength},
		{"HeadDetectionRayLength", t.HeadDetectionRayLength},
		{"HeadWidth", t.HeadWidth},
		{"GravityOnReleaseMultiplier", t.GravityOnReleaseMultiplier},
		{"MaxFallSpeed", t.MaxFallSpeed},
		{"TimeForUpwardCancel", t.TimeForUpwardCancel},
		{"ApexHangTime", t.ApexHangTime},
		{"JumpBufferTime", t.JumpBufferTime},
		{"JumpCoyoteTime", t.JumpCoyoteTime},
	}
	for _, f := range nonNegative {
		if err := checkFinite(f.name, f.v); err != nil {
			return err
		}
		if f.v < 0 {
			return &ConfigError{Field: f.name, Value: f.v, Reason: "must not be negative"}
		}
	}

	if err := checkFinite("ApexThreshold", t.ApexThreshold); err != nil {
		return err
	}
	if t.ApexThreshold < 0 || t.ApexThreshold > 1 {
		return &ConfigError{Field: "ApexThreshold", Value: t.ApexThreshold, Reason: "must be within [0, 1]"}
	}
	if err := checkFinite("AmbientGravity", t.AmbientGravity); err != nil {
		return err
	}
	if t.NumberOfJumpsAllowed < 1 {
		return &ConfigError{Field: "NumberOfJumpsAllowed", Value: float64(t.NumberOfJumpsAllowed), Reason: "must be at least 1"}
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: name, Value: v, Reason: "must be finite"}
	}
	return nil
}

// Range is an inclusive tuning interval.
type Range struct {
	Min float64
	Max float64
}

// EditorRanges are the slider bounds designers tune within. They are
// advisory; Validate only enforces physical soundness.
var EditorRanges = map[string]Range{
	"MaxWalkSpeed":                 {1, 100},
	"GroundAcceleration":           {0.25, 50},
	"GroundDeceleration":           {0.25, 50},
	"AirAcceleration":              {0.25, 50},
	"AirDeceleration":              {0.25, 50},
	"HeadWidth":                    {0, 1},
	"JumpHeightCompensationFactor": {1, 1.1},
	"GravityOnReleaseMultiplier":   {1, 5},
	"NumberOfJumpsAllowed":         {1, 5},
	"TimeForUpwardCancel":          {0.02, 0.3},
	"ApexThreshold":                {0.5, 1},
	"ApexHangTime":                 {0.01, 1},
	"JumpBufferTime":               {0, 1},
	"JumpCoyoteTime":               {0, 1},
}
