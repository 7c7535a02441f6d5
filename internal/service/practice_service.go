package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"projectilelab/internal/kinematics"
	"projectilelab/internal/logger"
	"projectilelab/internal/practice"
	"projectilelab/internal/session"
)

const sessionLockStripes = 64

// PracticeAttempt is the learner's current attempt plus the simulated motion of its
// launch, which clients use to animate the problem.
type PracticeAttempt struct {
	practice.Attempt
	Result *kinematics.MotionResult `json:"result,omitempty"`
}

// PracticeService runs practice transitions against stored sessions
type PracticeService struct {
	store   session.Store
	machine *practice.Machine
	samples int
	log     *logger.Logger
	locks   [sessionLockStripes]sync.Mutex
}

// NewPracticeService creates a new practice service
func NewPracticeService(store session.Store, machine *practice.Machine, samples int, log *logger.Logger) *PracticeService {
	if samples < 1 {
		samples = kinematics.DefaultSamples
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &PracticeService{
		store:   store,
		machine: machine,
		samples: samples,
		log:     log.With("component", "practice"),
	}
}

// Level returns the learner's current level
func (s *PracticeService) Level(ctx context.Context, sessionID string) (int, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return s.machine.Level(rec.Values), nil
}

// Reset returns the learner to level 1
func (s *PracticeService) Reset(ctx context.Context, sessionID string) error {
	err := s.update(ctx, sessionID, func(v session.Values) error {
		s.machine.Reset(v)
		return nil
	})
	if err == nil {
		s.log.Info("practice reset", "session_id", sessionID)
	}
	return err
}

// ReloadQuestion discards the active problem so a new one is drawn at the same level
func (s *PracticeService) ReloadQuestion(ctx context.Context, sessionID string) error {
	err := s.update(ctx, sessionID, func(v session.Values) error {
		s.machine.ReloadQuestion(v)
		return nil
	})
	if err == nil {
		s.log.Info("practice question reloaded", "session_id", sessionID)
	}
	return err
}

// RetreatLevel moves the learner back one level and returns the new level
func (s *PracticeService) RetreatLevel(ctx context.Context, sessionID string) (int, error) {
	var level int
	err := s.update(ctx, sessionID, func(v session.Values) error {
		level = s.machine.RetreatLevel(v)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("practice level retreat", "session_id", sessionID, "level", level)
	return level, nil
}

// CurrentProblem returns the active attempt, creating one if needed
func (s *PracticeService) CurrentProblem(ctx context.Context, sessionID string) (PracticeAttempt, error) {
	var attempt practice.Attempt
	err := s.update(ctx, sessionID, func(v session.Values) error {
		var err error
		attempt, err = s.machine.CurrentProblem(v)
		return err
	})
	if err != nil {
		return PracticeAttempt{}, err
	}

	out := PracticeAttempt{Attempt: attempt}
	if attempt.Problem != nil {
		res, err := kinematics.SimulateSamples(attempt.Problem.Params, s.samples)
		if err != nil {
			return PracticeAttempt{}, fmt.Errorf("failed to simulate problem: %w", err)
		}
		out.Result = &res
	}
	return out, nil
}

// Submit grades the learner's answers
func (s *PracticeService) Submit(ctx context.Context, sessionID string, answers map[practice.QuestionType]int) (practice.SubmitResult, error) {
	var result practice.SubmitResult
	err := s.update(ctx, sessionID, func(v session.Values) error {
		var err error
		result, err = s.machine.Submit(v, answers)
		return err
	})
	if err != nil {
		return practice.SubmitResult{}, err
	}

	switch {
	case result.Regenerated:
		s.log.Info("practice attempt expired", "session_id", sessionID, "level", result.Level)
	case result.AllCorrect:
		s.log.Info("practice level up", "session_id", sessionID, "level", result.Level, "victory", result.Victory)
	default:
		s.log.Debug("practice submission graded", "session_id", sessionID, "level", result.Level)
	}
	return result, nil
}

// update loads the session, applies fn and saves the result. Transitions on the
// same session id never interleave within this process.
func (s *PracticeService) update(ctx context.Context, sessionID string, fn func(session.Values) error) error {
	unlock := s.lock(sessionID)
	defer unlock()

	rec, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := fn(rec.Values); err != nil {
		return err
	}
	return s.store.Save(ctx, rec)
}

func (s *PracticeService) lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}
