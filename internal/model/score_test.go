package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameScoreBounds(t *testing.T) {
	score, err := NewGameScore(42.5)
	require.NoError(t, err)
	assert.Equal(t, 42.5, score.Value)

	_, err = NewGameScore(-0.1)
	var invalidErr *InvalidScoreError
	require.ErrorAs(t, err, &invalidErr)

	_, err = NewGameScore(100.1)
	assert.Error(t, err)

	_, err = NewGameScore(math.NaN())
	assert.Error(t, err)
}

func TestMustGameScorePanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustGameScore(101) })
	assert.NotPanics(t, func() { MustGameScore(100) })
}

func TestAddClampsAtMaximum(t *testing.T) {
	score := MustGameScore(95)

	added := score.Add(10)
	assert.Equal(t, 100.0, added.Value)
	assert.True(t, added.IsPerfect())

	// Original value is unchanged
	assert.Equal(t, 95.0, score.Value)
}

func TestAddClampsAtZero(t *testing.T) {
	score := MustGameScore(3)
	assert.Equal(t, 0.0, score.Add(-10).Value)
}

func TestCompare(t *testing.T) {
	high := MustGameScore(60)
	low := MustGameScore(40)

	assert.Equal(t, ScoreFirstWins, high.Compare(low))
	assert.Equal(t, ScoreSecondWins, low.Compare(high))
	assert.Equal(t, ScoreTie, high.Compare(MustGameScore(60)))
}
