package service

import "projectilelab/internal/kinematics"

// SimulationService runs free simulations with the configured trajectory resolution
type SimulationService struct {
	samples int
}

// NewSimulationService creates a new simulation service
func NewSimulationService(samples int) *SimulationService {
	if samples < 1 {
		samples = kinematics.DefaultSamples
	}
	return &SimulationService{samples: samples}
}

// Simulate validates p and computes its motion
func (s *SimulationService) Simulate(p kinematics.LaunchParameters) (kinematics.MotionResult, error) {
	return kinematics.SimulateSamples(p, s.samples)
}

// Samples returns the number of trajectory samples per simulation
func (s *SimulationService) Samples() int {
	return s.samples
}
