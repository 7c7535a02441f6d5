// Package kinematics computes closed-form two-dimensional projectile motion under
// constant gravity with no drag.
//
// All distances are in metres, velocities in m/s, times in seconds and angles in
// degrees at the API boundary. Energies are per unit mass (J/kg).
//
// Every function is pure: no package state is mutated, so callers may invoke them
// from any number of goroutines.
package kinematics

import (
	"errors"
	"fmt"
	"math"
)

// Gravity is the gravitational acceleration used by every computation, m/s².
const Gravity = 9.81

// DefaultSamples is the number of trajectory instants used by Simulate.
const DefaultSamples = 100

// ErrInvalidInput is returned for launch parameters outside the supported domain.
var ErrInvalidInput = errors.New("invalid launch parameters")

// InputError describes which launch parameter was rejected.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s=%g: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// LaunchParameters are the inputs to a simulation. H0 and Hf share a ground datum.
type LaunchParameters struct {
	V0       float64 `json:"v0"`
	AngleDeg float64 `json:"angle_deg"`
	H0       float64 `json:"h0"`
	Hf       float64 `json:"hf"`
}

// Validate checks the parameters against the supported domain.
func (p LaunchParameters) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"v0", p.V0},
		{"angle_deg", p.AngleDeg},
		{"h0", p.H0},
		{"hf", p.Hf},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InputError{Field: f.name, Value: f.value, Reason: "must be a finite number"}
		}
	}

	if p.V0 <= 0 {
		return &InputError{Field: "v0", Value: p.V0, Reason: "must be greater than zero"}
	}
	if p.AngleDeg < -90 || p.AngleDeg > 90 {
		return &InputError{Field: "angle_deg", Value: p.AngleDeg, Reason: "must be between -90 and 90 degrees"}
	}
	if p.H0 < 0 {
		return &InputError{Field: "h0", Value: p.H0, Reason: "must not be negative"}
	}
	if p.Hf < 0 {
		return &InputError{Field: "hf", Value: p.Hf, Reason: "must not be negative"}
	}
	return nil
}

// TrajectorySample is the projectile state at one instant. Potential energy is
// measured from the launch height, so TotalEnergy at t=0 equals the launch kinetic energy.
type TrajectorySample struct {
	Time            float64 `json:"time"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Vx              float64 `json:"vx"`
	Vy              float64 `json:"vy"`
	Speed           float64 `json:"speed"`
	KineticEnergy   float64 `json:"kinetic_energy"`
	PotentialEnergy float64 `json:"potential_energy"`
	TotalEnergy     float64 `json:"total_energy"`
}

// MotionResult bundles every quantity derived from one set of launch parameters.
// TotalTime is zero when the target height is unreachable; Range and impact values
// are then zero too and Trajectory is empty.
type MotionResult struct {
	V0x             float64            `json:"v0x"`
	V0y             float64            `json:"v0y"`
	MaxHeight       float64            `json:"max_height"`
	TimeToMaxHeight float64            `json:"time_to_max_height"`
	TotalTime       float64            `json:"total_time"`
	Range           float64            `json:"range"`
	ImpactVelocity  float64            `json:"impact_velocity"`
	ImpactAngleDeg  float64            `json:"impact_angle_deg"`
	Trajectory      []TrajectorySample `json:"trajectory"`
}

// Reachable reports whether the projectile reaches the target height.
func (r MotionResult) Reachable() bool {
	return r.TotalTime > 0
}
