package model

import (
	"fmt"
	"math"
)

// MaxScore is the upper bound of a game score (percentage of field coverage)
const MaxScore = 100.0

// GameScore is a percentage of field area painted, constrained to [0, 100]
type GameScore struct {
	Value float64
}

// NewGameScore validates a caller-supplied score value
func NewGameScore(value float64) (GameScore, error) {
	if math.IsNaN(value) || value < 0 || value > MaxScore {
		return GameScore{}, &InvalidScoreError{Value: value}
	}
	return GameScore{Value: value}, nil
}

// MustGameScore constructs a score, panicking on out-of-range values.
// Use only for values the program itself computed.
func MustGameScore(value float64) GameScore {
	score, err := NewGameScore(value)
	if err != nil {
		panic(fmt.Sprintf("model: invalid game score %v", value))
	}
	return score
}

// ZeroScore returns the zero score
func ZeroScore() GameScore {
	return GameScore{}
}

// Add returns a new score with delta applied, clamped to [0, 100]
func (s GameScore) Add(delta float64) GameScore {
	v := s.Value + delta
	if v > MaxScore {
		v = MaxScore
	}
	if v < 0 {
		v = 0
	}
	return GameScore{Value: v}
}

// IsPerfect reports whether the score has reached the maximum
func (s GameScore) IsPerfect() bool {
	return s.Value >= MaxScore
}

// ScoreComparison is the outcome of comparing two scores
type ScoreComparison int

const (
	ScoreFirstWins ScoreComparison = iota
	ScoreSecondWins
	ScoreTie
)

// Compare determines the winner between two scores
func (s GameScore) Compare(other GameScore) ScoreComparison {
	switch {
	case s.Value > other.Value:
		return ScoreFirstWins
	case s.Value < other.Value:
		return ScoreSecondWins
	default:
		return ScoreTie
	}
}
