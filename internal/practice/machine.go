package practice

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
)

// Session keys owned by the machine. Nothing else in a session is read or written.
const (
	LevelKey   = "level"
	ProblemKey = "practice_params"
)

// Notices surfaced to the learner.
const (
	NoticeSessionExpired = "Session expired. Generating new problem."
	NoticeVictory        = "All levels complete. Reset or go back a level to keep practising."
)

// Session is the opaque per-learner mapping the machine operates on.
type Session interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// Attempt is what the learner currently faces: a problem, or victory.
type Attempt struct {
	Level   int      `json:"level"`
	Victory bool     `json:"victory"`
	Problem *Problem `json:"problem,omitempty"`
}

// Feedback grades one question of a submission.
type Feedback struct {
	Type      QuestionType `json:"type"`
	Prompt    string       `json:"text"`
	Unit      string       `json:"unit"`
	Correct   bool         `json:"correct"`
	Submitted *int         `json:"submitted,omitempty"`
	Exact     *float64     `json:"exact,omitempty"`
	Message   string       `json:"message"`
	Hint      string       `json:"hint,omitempty"`
}

// SubmitResult is the outcome of grading a submission.
// Regenerated is set when no attempt was active and a fresh problem was created instead.
type SubmitResult struct {
	AllCorrect  bool       `json:"all_correct"`
	Level       int        `json:"level"`
	Victory     bool       `json:"victory"`
	Regenerated bool       `json:"regenerated"`
	Notice      string     `json:"notice,omitempty"`
	Feedback    []Feedback `json:"feedback"`
}

// Machine runs level transitions. Its only state is the random source used to
// draw new problems, so one Machine can serve every session.
type Machine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMachine creates a machine drawing problems from src.
func NewMachine(src rand.Source) *Machine {
	return &Machine{rng: rand.New(src)}
}

// Level returns the learner's level, 1 when unset or unreadable.
func (m *Machine) Level(s Session) int {
	raw, ok := s.Get(LevelKey)
	if !ok {
		return 1
	}
	var level int
	if err := json.Unmarshal(raw, &level); err != nil || level < 1 {
		return 1
	}
	return level
}

// Reset sends the learner back to level 1 and discards the active problem.
func (m *Machine) Reset(s Session) {
	setLevel(s, 1)
	s.Delete(ProblemKey)
}

// ReloadQuestion discards the active problem without touching the level.
func (m *Machine) ReloadQuestion(s Session) {
	s.Delete(ProblemKey)
}

// RetreatLevel moves back one level (never below 1), discarding the active
// problem, and returns the resulting level. At level 1 nothing changes.
func (m *Machine) RetreatLevel(s Session) int {
	level := m.Level(s)
	if level > 1 {
		level--
		setLevel(s, level)
		s.Delete(ProblemKey)
	}
	return level
}

// CurrentProblem returns the active problem, creating one when absent.
// Past the last level it reports victory and creates nothing.
func (m *Machine) CurrentProblem(s Session) (Attempt, error) {
	level := m.Level(s)
	if _, ok := s.Get(LevelKey); !ok {
		setLevel(s, level)
	}

	if level > MaxLevel {
		return Attempt{Level: level, Victory: true}, nil
	}

	if p, ok := activeProblem(s); ok {
		return Attempt{Level: level, Problem: &p}, nil
	}

	p, err := m.enterLevel(s, level)
	if err != nil {
		return Attempt{}, err
	}
	return Attempt{Level: level, Problem: &p}, nil
}

// Submit grades answers against the active problem. Only a fully correct
// submission advances the level; otherwise the same problem stays active.
func (m *Machine) Submit(s Session, answers map[QuestionType]int) (SubmitResult, error) {
	level := m.Level(s)
	if level > MaxLevel {
		return SubmitResult{Level: level, Victory: true, Notice: NoticeVictory, Feedback: []Feedback{}}, nil
	}

	problem, ok := activeProblem(s)
	if !ok {
		if _, err := m.enterLevel(s, level); err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{
			Level:       level,
			Regenerated: true,
			Notice:      NoticeSessionExpired,
			Feedback:    []Feedback{},
		}, nil
	}

	feedback, allCorrect := Grade(problem, answers)
	result := SubmitResult{
		AllCorrect: allCorrect,
		Level:      level,
		Feedback:   feedback,
	}

	if allCorrect {
		result.Level = level + 1
		result.Victory = result.Level > MaxLevel
		result.Notice = fmt.Sprintf("Perfect! All questions correct. Advancing to Level %d!", result.Level)
		setLevel(s, result.Level)
		s.Delete(ProblemKey)
	}
	return result, nil
}

// Grade compares answers with the rounded solutions of p. A question without an
// answer counts as wrong.
func Grade(p Problem, answers map[QuestionType]int) ([]Feedback, bool) {
	feedback := make([]Feedback, 0, len(p.Questions))
	allCorrect := true

	for _, q := range p.Questions {
		fb := Feedback{Type: q.Type, Prompt: q.Prompt, Unit: q.Unit}
		ans, answered := answers[q.Type]
		if answered {
			submitted := ans
			fb.Submitted = &submitted
		}

		if answered && ans == RoundAnswer(q.TargetSolution) {
			exact := q.TargetSolution
			fb.Correct = true
			fb.Exact = &exact
			fb.Message = fmt.Sprintf("Correct! Exact: %.2f", q.TargetSolution)
		} else {
			allCorrect = false
			if answered {
				fb.Message = fmt.Sprintf("Incorrect. You entered %d.", ans)
			} else {
				fb.Message = "No answer submitted."
			}
			fb.Hint = Hint(q.Type, p.Params.V0, p.Params.AngleDeg, p.Params.H0)
		}
		feedback = append(feedback, fb)
	}
	return feedback, allCorrect
}

func (m *Machine) enterLevel(s Session, level int) (Problem, error) {
	m.mu.Lock()
	p, err := GenerateProblem(level, m.rng)
	m.mu.Unlock()
	if err != nil {
		return Problem{}, err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return Problem{}, fmt.Errorf("encode problem: %w", err)
	}
	s.Set(ProblemKey, raw)
	return p, nil
}

// activeProblem decodes the stored problem. Unreadable or empty problems count as absent.
func activeProblem(s Session) (Problem, bool) {
	raw, ok := s.Get(ProblemKey)
	if !ok {
		return Problem{}, false
	}
	var p Problem
	if err := json.Unmarshal(raw, &p); err != nil || len(p.Questions) == 0 {
		return Problem{}, false
	}
	return p, true
}

func setLevel(s Session, level int) {
	s.Set(LevelKey, []byte(strconv.Itoa(level)))
}
