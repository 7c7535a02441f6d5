package handlers

import (
	"net/http"

	"projectilelab/internal/logger"
	"projectilelab/internal/practice"
	"projectilelab/internal/service"
)

// PracticeHandler serves the leveled practice flow
type PracticeHandler struct {
	practice *service.PracticeService
	log      *logger.Logger
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceService *service.PracticeService, log *logger.Logger) *PracticeHandler {
	return &PracticeHandler{practice: practiceService, log: log}
}

type levelResponse struct {
	Level    int  `json:"level"`
	MaxLevel int  `json:"max_level"`
	Victory  bool `json:"victory"`
}

type submitRequest struct {
	Answers map[string]int `json:"answers"`
}

// GetLevel handles GET /api/level
func (h *PracticeHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	level, err := h.practice.Level(r.Context(), SessionIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, "failed to load level", err)
		return
	}
	writeJSON(w, http.StatusOK, levelResponse{Level: level, MaxLevel: practice.MaxLevel, Victory: level > practice.MaxLevel})
}

// GetPractice handles GET /api/practice
func (h *PracticeHandler) GetPractice(w http.ResponseWriter, r *http.Request) {
	h.respondWithAttempt(w, r)
}

// Submit handles POST /api/practice/submit
func (h *PracticeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	answers := make(map[practice.QuestionType]int, len(req.Answers))
	for name, value := range req.Answers {
		qt, err := practice.ParseQuestionType(name)
		if err != nil {
			respondWithFieldError(w, name, err.Error())
			return
		}
		answers[qt] = value
	}

	result, err := h.practice.Submit(r.Context(), SessionIDFromContext(r.Context()), answers)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, "failed to grade submission", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Reload handles POST /api/practice/reload
func (h *PracticeHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.practice.ReloadQuestion(r.Context(), SessionIDFromContext(r.Context())); err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, "failed to reload question", err)
		return
	}
	h.respondWithAttempt(w, r)
}

// Reset handles POST /api/practice/reset
func (h *PracticeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.practice.Reset(r.Context(), SessionIDFromContext(r.Context())); err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, "failed to reset progress", err)
		return
	}
	h.respondWithAttempt(w, r)
}

// Retreat handles POST /api/practice/retreat
func (h *PracticeHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	if _, err := h.practice.RetreatLevel(r.Context(), SessionIDFromContext(r.Context())); err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, "failed to retreat level", err)
		return
	}
	h.respondWithAttempt(w, r)
}

func (h *PracticeHandler) respondWithAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := h.practice.CurrentProblem(r.Context(), SessionIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, ErrInternalServerError, "failed to load practice problem", err)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}
