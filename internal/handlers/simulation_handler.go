package handlers

import (
	"errors"
	"math"
	"net/http"

	"projectilelab/internal/kinematics"
	"projectilelab/internal/logger"
	"projectilelab/internal/service"
)

const minLaunchSpeed = 0.1

// SimulationHandler serves free-form simulations
type SimulationHandler struct {
	simulations *service.SimulationService
	log         *logger.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(simulations *service.SimulationService, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{simulations: simulations, log: log}
}

type simulateRequest struct {
	V0    *float64 `json:"v0"`
	Angle *float64 `json:"angle"`
	H0    *float64 `json:"h0"`
	Hf    *float64 `json:"hf"`
}

// Simulate handles POST /api/simulate
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	params, field, msg := req.params()
	if field != "" {
		respondWithFieldError(w, field, msg)
		return
	}

	result, err := h.simulations.Simulate(params)
	if err != nil {
		var inputErr *kinematics.InputError
		if errors.As(err, &inputErr) {
			respondWithFieldError(w, inputErr.Field, inputErr.Error())
			return
		}
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, "simulation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// params applies form-level rules and defaults. A non-empty field names the first invalid input.
func (req simulateRequest) params() (kinematics.LaunchParameters, string, string) {
	var p kinematics.LaunchParameters

	switch {
	case req.V0 == nil:
		return p, "v0", "initial velocity is required"
	case math.IsNaN(*req.V0) || *req.V0 < minLaunchSpeed:
		return p, "v0", "initial velocity must be at least 0.1 m/s"
	}
	switch {
	case req.Angle == nil:
		return p, "angle", "launch angle is required"
	case *req.Angle < -90 || *req.Angle > 90:
		return p, "angle", "launch angle must be between -90 and 90 degrees"
	}
	if req.H0 != nil && *req.H0 < 0 {
		return p, "h0", "initial height cannot be negative"
	}
	if req.Hf != nil && *req.Hf < 0 {
		return p, "hf", "final height cannot be negative"
	}

	p.V0 = *req.V0
	p.AngleDeg = *req.Angle
	if req.H0 != nil {
		p.H0 = *req.H0
	}
	if req.Hf != nil {
		p.Hf = *req.Hf
	}
	return p, "", ""
}
