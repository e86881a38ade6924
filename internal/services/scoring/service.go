// Package scoring computes area-based coverage scores, rankings with tie
// handling, and end-of-game bonuses.
package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/inkfield/inkfield/internal/model"
)

// Bonus percentages applied to a player's current score
const (
	winBonusRate     = 0.10
	timeBonusRate    = 0.05
	perfectBonusRate = 0.20
)

// Service provides scoring functionality. It is stateless.
type Service struct{}

// New creates a new scoring service
func New() *Service {
	return &Service{}
}

// CalculatePlayerScore sums the area of the player's owned spots and
// converts it to a percentage of the field, clamped to 100.
// A non-positive field size yields the zero score.
func (s *Service) CalculatePlayerScore(playerID model.PlayerID, spots []model.InkSpot, fieldSize float64) model.GameScore {
	if fieldSize <= 0 {
		return model.ZeroScore()
	}

	area := 0.0
	for _, spot := range spots {
		if spot.OwnerID == playerID {
			area += spot.Area()
		}
	}

	return model.ZeroScore().Add(area / fieldSize * 100)
}

// CalculateTotalCoverage returns the percentage of the field covered by
// all spots regardless of owner. Overlapping regions are double-counted;
// this is a deliberate simplification.
func (s *Service) CalculateTotalCoverage(spots []model.InkSpot, fieldSize float64) float64 {
	if fieldSize <= 0 {
		return 0
	}

	area := 0.0
	for _, spot := range spots {
		area += spot.Area()
	}

	coverage := area / fieldSize * 100
	return math.Min(coverage, model.MaxScore)
}

// DetermineWinner returns the player with the strictly highest score, or
// nil when the input is empty or the top two scores tie
func (s *Service) DetermineWinner(players []model.Player) *model.Player {
	if len(players) == 0 {
		return nil
	}

	top := players[0]
	tied := false
	for _, p := range players[1:] {
		switch p.Score.Compare(top.Score) {
		case model.ScoreFirstWins:
			top = p
			tied = false
		case model.ScoreTie:
			tied = true
		}
	}

	if tied {
		return nil
	}
	return &top
}

// CalculateGameResults recomputes every player's score from the current
// ink spots and returns ranked results, sorted descending by score.
// Equal scores share a rank; the next distinct score takes the rank of
// its sorted position plus one.
func (s *Service) CalculateGameResults(players []model.Player, spots []model.InkSpot, fieldSize float64) []model.GameResult {
	results := make([]model.GameResult, 0, len(players))
	for _, p := range players {
		results = append(results, model.GameResult{
			PlayerID:       p.ID,
			PlayerName:     p.Name,
			Color:          p.Color,
			Score:          s.CalculatePlayerScore(p.ID, spots, fieldSize),
			SpotCount:      countSpots(p.ID, spots),
			AreaEfficiency: areaEfficiency(p.ID, spots),
		})
	}

	return s.RankResults(results)
}

// RankResults sorts results descending by score and assigns ranks.
// Equal scores share a rank; the next distinct score takes the rank of
// its sorted position plus one.
func (s *Service) RankResults(results []model.GameResult) []model.GameResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.Value > results[j].Score.Value
	})

	for i := range results {
		if i > 0 && results[i].Score.Value == results[i-1].Score.Value {
			results[i].Rank = results[i-1].Rank
		} else {
			results[i].Rank = i + 1
		}
	}

	return results
}

func countSpots(playerID model.PlayerID, spots []model.InkSpot) int {
	count := 0
	for _, spot := range spots {
		if spot.OwnerID == playerID {
			count++
		}
	}
	return count
}

// areaEfficiency is the player's average spot area relative to the
// maximum possible spot area, clamped to 1.0
func areaEfficiency(playerID model.PlayerID, spots []model.InkSpot) float64 {
	total := 0.0
	count := 0
	for _, spot := range spots {
		if spot.OwnerID == playerID {
			total += spot.Area()
			count++
		}
	}
	if count == 0 {
		return 0
	}

	maxArea := math.Pi * model.MaxInkSpotSize * model.MaxInkSpotSize
	return math.Min(total/float64(count)/maxArea, 1.0)
}

// ApplyWinBonus adds 10% of the current score, clamped to 100
func (s *Service) ApplyWinBonus(score model.GameScore) model.GameScore {
	return score.Add(score.Value * winBonusRate)
}

// ApplyTimeBonus adds up to 5% of the current score, scaled by the
// remaining-time ratio, clamped to 100
func (s *Service) ApplyTimeBonus(score model.GameScore, remaining, total time.Duration) model.GameScore {
	if total <= 0 || remaining <= 0 {
		return score
	}
	ratio := math.Min(float64(remaining)/float64(total), 1.0)
	return score.Add(score.Value * timeBonusRate * ratio)
}

// ApplyPerfectGameBonus adds 20% of the current score, clamped to 100.
// A score already at 100 is unchanged.
func (s *Service) ApplyPerfectGameBonus(score model.GameScore) model.GameScore {
	if score.IsPerfect() {
		return score
	}
	return score.Add(score.Value * perfectBonusRate)
}

// Interface for dependency injection
type ServiceInterface interface {
	CalculatePlayerScore(playerID model.PlayerID, spots []model.InkSpot, fieldSize float64) model.GameScore
	CalculateTotalCoverage(spots []model.InkSpot, fieldSize float64) float64
	DetermineWinner(players []model.Player) *model.Player
	CalculateGameResults(players []model.Player, spots []model.InkSpot, fieldSize float64) []model.GameResult
	RankResults(results []model.GameResult) []model.GameResult
	ApplyWinBonus(score model.GameScore) model.GameScore
	ApplyTimeBonus(score model.GameScore, remaining, total time.Duration) model.GameScore
	ApplyPerfectGameBonus(score model.GameScore) model.GameScore
}

var _ ServiceInterface = (*Service)(nil)
