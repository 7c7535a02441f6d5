package practice

import (
	"fmt"
	"math/rand"

	"projectilelab/internal/kinematics"
)

// MaxLevel is the last playable level; anything above it is victory.
const MaxLevel = 5

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int
	Max int
}

func fixed(v int) IntRange { return IntRange{Min: v, Max: v} }

func (r IntRange) draw(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Contains reports whether v lies in the range.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// LevelPolicy describes how problems for one level are drawn and which
// quantities are asked. Every listed question is asked in every attempt.
type LevelPolicy struct {
	Level     int
	V0        IntRange
	Angle     IntRange
	H0        IntRange
	Questions []QuestionType
}

var levelPolicies = [MaxLevel]LevelPolicy{
	{
		Level:     1,
		V0:        IntRange{20, 80},
		Angle:     IntRange{30, 75},
		H0:        fixed(0),
		Questions: []QuestionType{MaxHeight, Range, TotalTime},
	},
	{
		Level:     2,
		V0:        IntRange{20, 60},
		Angle:     IntRange{20, 60},
		H0:        IntRange{20, 100},
		Questions: []QuestionType{Range, TotalTime, ImpactVelocity, MaxHeight},
	},
	{
		Level:     3,
		V0:        IntRange{15, 50},
		Angle:     fixed(0),
		H0:        IntRange{50, 150},
		Questions: []QuestionType{TotalTime},
	},
	{
		Level:     4,
		V0:        IntRange{15, 50},
		Angle:     fixed(0),
		H0:        IntRange{30, 100},
		Questions: []QuestionType{Range, ImpactVelocity},
	},
	{
		Level:     5,
		V0:        IntRange{20, 60},
		Angle:     IntRange{-60, -20},
		H0:        IntRange{50, 150},
		Questions: []QuestionType{Range, TotalTime, ImpactVelocity},
	},
}

// PolicyFor returns the policy of a playable level.
func PolicyFor(level int) (LevelPolicy, bool) {
	if level < 1 || level > MaxLevel {
		return LevelPolicy{}, false
	}
	return levelPolicies[level-1], true
}

// Draw picks random launch parameters for the level. The target height is always ground.
func (p LevelPolicy) Draw(rng *rand.Rand) kinematics.LaunchParameters {
	return kinematics.LaunchParameters{
		V0:       float64(p.V0.draw(rng)),
		AngleDeg: float64(p.Angle.draw(rng)),
		H0:       float64(p.H0.draw(rng)),
		Hf:       0,
	}
}

// Problem is the persisted state of an attempt: launch parameters and the
// questions with their exact solutions.
type Problem struct {
	Params    kinematics.LaunchParameters `json:"params"`
	Questions []Question                  `json:"questions"`
}

// GenerateProblem draws parameters for level from rng, simulates them and builds
// one question per type the level asks.
func GenerateProblem(level int, rng *rand.Rand) (Problem, error) {
	policy, ok := PolicyFor(level)
	if !ok {
		return Problem{}, fmt.Errorf("no problems for level %d", level)
	}

	params := policy.Draw(rng)
	res, err := kinematics.SimulateSamples(params, 1)
	if err != nil {
		return Problem{}, fmt.Errorf("simulate level %d problem: %w", level, err)
	}

	questions := make([]Question, 0, len(policy.Questions))
	for _, qt := range policy.Questions {
		q, err := NewQuestion(qt, res)
		if err != nil {
			return Problem{}, err
		}
		questions = append(questions, q)
	}

	return Problem{Params: params, Questions: questions}, nil
}
