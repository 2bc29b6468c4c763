package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/milk9111/locomotion/movement"
	"gopkg.in/yaml.v3"
)

const (
	MovementSpecFile = "movement.yaml"
	LevelSpecFile    = "level.yaml"
)

// LoadSpec decodes a named prefab into T. Unknown keys are rejected so typos
// in tuning files do not silently fall back to defaults.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := loadInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

func loadInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := decodeStrict(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// MovementSpec is the on-disk form of movement.Tunables. Missing keys keep
// their default values.
type MovementSpec struct {
	Name string `yaml:"name"`

	MaxWalkSpeed       float64 `yaml:"max_walk_speed"`
	GroundAcceleration float64 `yaml:"ground_acceleration"`
	GroundDeceleration float64 `yaml:"ground_deceleration"`
	AirAcceleration    float64 `yaml:"air_acceleration"`
	AirDeceleration    float64 `yaml:"air_deceleration"`

	GroundDetectionRayLength float64 `yaml:"ground_detection_ray_length"`
	HeadDetectionRayLength   float64 `yaml:"head_detection_ray_length"`
	HeadWidth                float64 `yaml:"head_width"`

	JumpHeight                   float64 `yaml:"jump_height"`
	JumpHeightCompensationFactor float64 `yaml:"jump_height_compensation_factor"`
	TimeTillJumpApex             float64 `yaml:"time_till_jump_apex"`
	GravityOnReleaseMultiplier   float64 `yaml:"gravity_on_release_multiplier"`
	MaxFallSpeed                 float64 `yaml:"max_fall_speed"`
	NumberOfJumpsAllowed         int     `yaml:"number_of_jumps_allowed"`

	TimeForUpwardCancel float64 `yaml:"time_for_upward_cancel"`

	ApexThreshold float64 `yaml:"apex_threshold"`
	ApexHangTime  float64 `yaml:"apex_hang_time"`

	JumpBufferTime float64 `yaml:"jump_buffer_time"`
	JumpCoyoteTime float64 `yaml:"jump_coyote_time"`

	AmbientGravity float64 `yaml:"ambient_gravity"`
}

// NewMovementSpec mirrors t into its on-disk form.
func NewMovementSpec(name string, t movement.Tunables) MovementSpec {
	return MovementSpec{
		Name:                         name,
		MaxWalkSpeed:                 t.MaxWalkSpeed,
		GroundAcceleration:           t.GroundAcceleration,
		GroundDeceleration:           t.GroundDeceleration,
		AirAcceleration:              t.AirAcceleration,
		AirDeceleration:              t.AirDeceleration,
		GroundDetectionRayLength:     t.GroundDetectionRayLength,
		HeadDetectionRayLength:       t.HeadDetectionRayLength,
		HeadWidth:                    t.HeadWidth,
		JumpHeight:                   t.JumpHeight,
		JumpHeightCompensationFactor: t.JumpHeightCompensationFactor,
		TimeTillJumpApex:             t.TimeTillJumpApex,
		GravityOnReleaseMultiplier:   t.GravityOnReleaseMultiplier,
		MaxFallSpeed:                 t.MaxFallSpeed,
		NumberOfJumpsAllowed:         t.NumberOfJumpsAllowed,
		TimeForUpwardCancel:          t.TimeForUpwardCancel,
		ApexThreshold:                t.ApexThreshold,
		ApexHangTime:                 t.ApexHangTime,
		JumpBufferTime:               t.JumpBufferTime,
		JumpCoyoteTime:               t.JumpCoyoteTime,
		AmbientGravity:               t.AmbientGravity,
	}
}

// Tunables converts the spec for the simulation.
func (s MovementSpec) Tunables() movement.Tunables {
	return movement.Tunables{
		MaxWalkSpeed:                 s.MaxWalkSpeed,
		GroundAcceleration:           s.GroundAcceleration,
		GroundDeceleration:           s.GroundDeceleration,
		AirAcceleration:              s.AirAcceleration,
		AirDeceleration:              s.AirDeceleration,
		GroundDetectionRayLength:     s.GroundDetectionRayLength,
		HeadDetectionRayLength:       s.HeadDetectionRayLength,
		HeadWidth:                    s.HeadWidth,
		JumpHeight:                   s.JumpHeight,
		JumpHeightCompensationFactor: s.JumpHeightCompensationFactor,
		TimeTillJumpApex:             s.TimeTillJumpApex,
		GravityOnReleaseMultiplier:   s.GravityOnReleaseMultiplier,
		MaxFallSpeed:                 s.MaxFallSpeed,
		NumberOfJumpsAllowed:         s.NumberOfJumpsAllowed,
		TimeForUpwardCancel:          s.TimeForUpwardCancel,
		ApexThreshold:                s.ApexThreshold,
		ApexHangTime:                 s.ApexHangTime,
		JumpBufferTime:               s.JumpBufferTime,
		JumpCoyoteTime:               s.JumpCoyoteTime,
		AmbientGravity:               s.AmbientGravity,
	}
}

// LoadMovementSpec decodes a movement prefab layered over the defaults.
func LoadMovementSpec(filename string) (*MovementSpec, error) {
	spec := NewMovementSpec("", movement.DefaultTunables())
	if err := loadInto(filename, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadMovementSpecFile is LoadMovementSpec for an explicit path outside the
// prefab overlay, e.g. a file named on the command line.
func LoadMovementSpecFile(path string) (*MovementSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	spec := NewMovementSpec("", movement.DefaultTunables())
	if err := decodeStrict(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return &spec, nil
}

// LoadTunables loads and validates a movement prefab in one step.
func LoadTunables(filename string) (movement.Config, error) {
	spec, err := LoadMovementSpec(filename)
	if err != nil {
		return movement.Config{}, err
	}
	cfg, err := movement.NewConfig(spec.Tunables())
	if err != nil {
		return movement.Config{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return cfg, nil
}

// BoxSpec is an axis-aligned box with its origin at the bottom-left corner.
type BoxSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlayerBodySpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LevelSpec is static geometry plus a spawn point, in simulation units.
type LevelSpec struct {
	Name     string         `yaml:"name"`
	Movement string         `yaml:"movement"`
	Spawn    PointSpec      `yaml:"spawn"`
	Player   PlayerBodySpec `yaml:"player"`
	Solids   []BoxSpec      `yaml:"solids"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Player.Width <= 0 || spec.Player.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: player body must have a positive size", filename)
	}
	return &spec, nil
}
