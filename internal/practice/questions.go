// Package practice implements the levelled projectile quiz: problem generation,
// grading and level progression over an opaque per-learner session mapping.
package practice

import (
	"fmt"
	"math"

	"projectilelab/internal/kinematics"
)

// QuestionType names a derived quantity the learner is asked for.
type QuestionType string

const (
	MaxHeight      QuestionType = "max_height"
	Range          QuestionType = "range"
	TotalTime      QuestionType = "total_time"
	ImpactVelocity QuestionType = "impact_velocity"
)

// Question is one quantity asked in an attempt, with its exact solution.
type Question struct {
	Type           QuestionType `json:"type"`
	Prompt         string       `json:"text"`
	Unit           string       `json:"unit"`
	TargetSolution float64      `json:"target_solution"`
}

type questionDef struct {
	prompt string
	unit   string
	value  func(kinematics.MotionResult) float64
}

var catalog = map[QuestionType]questionDef{
	MaxHeight: {
		prompt: "Maximum Height (from ground)",
		unit:   "m",
		value:  func(r kinematics.MotionResult) float64 { return r.MaxHeight },
	},
	Range: {
		prompt: "Horizontal Distance (Range)",
		unit:   "m",
		value:  func(r kinematics.MotionResult) float64 { return r.Range },
	},
	TotalTime: {
		prompt: "Total Time of Flight",
		unit:   "s",
		value:  func(r kinematics.MotionResult) float64 { return r.TotalTime },
	},
	ImpactVelocity: {
		prompt: "Final Velocity (Impact Speed)",
		unit:   "m/s",
		value:  func(r kinematics.MotionResult) float64 { return r.ImpactVelocity },
	},
}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	_, ok := catalog[t]
	return ok
}

// ParseQuestionType converts a wire name into a QuestionType.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return t, nil
}

// NewQuestion builds the question of type t whose solution is read from res.
func NewQuestion(t QuestionType, res kinematics.MotionResult) (Question, error) {
	def, ok := catalog[t]
	if !ok {
		return Question{}, fmt.Errorf("unknown question type %q", t)
	}
	return Question{
		Type:           t,
		Prompt:         def.prompt,
		Unit:           def.unit,
		TargetSolution: def.value(res),
	}, nil
}

// RoundAnswer rounds a solution to the integer the learner must enter.
// Halves round away from zero.
func RoundAnswer(x float64) int {
	return int(math.Round(x))
}
