package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/inkfield/inkfield/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) spot(id model.InkSpotID, owner model.PlayerID, size float64) model.InkSpot {
	spot, err := model.NewInkSpot(id, model.Position3D{}, model.ColorRed, size, owner, s.now)
	s.Require().NoError(err)
	return spot
}

func (s *ServiceSuite) player(id model.PlayerID, name string, color model.PlayerColor, score float64) model.Player {
	p, err := model.NewPlayer(id, name, color, model.Position3D{})
	s.Require().NoError(err)
	return p.UpdateScore(model.MustGameScore(score))
}

// Player score

func (s *ServiceSuite) TestCalculatePlayerScore() {
	spots := []model.InkSpot{
		s.spot("a", "p1", 1.0), // pi
		s.spot("b", "p1", 1.0), // pi
		s.spot("c", "p2", 2.0), // ignored: other owner
	}

	score := s.service.CalculatePlayerScore("p1", spots, 100)

	s.InDelta(2*math.Pi, score.Value, 1e-9)
}

func (s *ServiceSuite) TestPlayerScoreClampedAt100() {
	spots := []model.InkSpot{s.spot("a", "p1", 2.0)}

	score := s.service.CalculatePlayerScore("p1", spots, 1)

	s.Equal(100.0, score.Value)
}

func (s *ServiceSuite) TestPlayerScoreZeroForInvalidField() {
	spots := []model.InkSpot{s.spot("a", "p1", 1.0)}

	s.Equal(0.0, s.service.CalculatePlayerScore("p1", spots, 0).Value)
	s.Equal(0.0, s.service.CalculatePlayerScore("p1", spots, -5).Value)
}

// Total coverage

func (s *ServiceSuite) TestTotalCoverageCountsAllOwners() {
	spots := []model.InkSpot{
		s.spot("a", "p1", 1.0),
		s.spot("b", "p2", 1.0),
	}

	coverage := s.service.CalculateTotalCoverage(spots, 100)

	s.InDelta(2*math.Pi, coverage, 1e-9)
}

// Winner

func (s *ServiceSuite) TestDetermineWinner() {
	players := []model.Player{
		s.player("p1", "Alice", model.ColorRed, 40),
		s.player("p2", "Bob", model.ColorBlue, 60),
	}

	winner := s.service.DetermineWinner(players)

	s.Require().NotNil(winner)
	s.Equal(model.PlayerID("p2"), winner.ID)
}

func (s *ServiceSuite) TestDetermineWinnerTie() {
	players := []model.Player{
		s.player("p1", "Alice", model.ColorRed, 50),
		s.player("p2", "Bob", model.ColorBlue, 50),
	}

	s.Nil(s.service.DetermineWinner(players))
}

func (s *ServiceSuite) TestDetermineWinnerEmpty() {
	s.Nil(s.service.DetermineWinner(nil))
}

// Game results

func (s *ServiceSuite) TestGameResultsRankingAndOrder() {
	players := []model.Player{
		s.player("p1", "Alice", model.ColorRed, 0),
		s.player("p2", "Bob", model.ColorBlue, 0),
	}
	spots := []model.InkSpot{
		s.spot("a", "p2", 1.0),
		s.spot("b", "p2", 1.0),
		s.spot("c", "p1", 1.0),
	}

	results := s.service.CalculateGameResults(players, spots, 100)

	s.Require().Len(results, 2)
	s.Equal(model.PlayerID("p2"), results[0].PlayerID)
	s.Equal(1, results[0].Rank)
	s.Equal(2, results[0].SpotCount)
	s.Equal(model.PlayerID("p1"), results[1].PlayerID)
	s.Equal(2, results[1].Rank)
	s.Equal(1, results[1].SpotCount)
}

func (s *ServiceSuite) TestGameResultsEqualScoresShareRank() {
	players := []model.Player{
		s.player("p1", "Alice", model.ColorRed, 0),
		s.player("p2", "Bob", model.ColorBlue, 0),
	}
	spots := []model.InkSpot{
		s.spot("a", "p1", 1.0),
		s.spot("b", "p2", 1.0),
	}

	results := s.service.CalculateGameResults(players, spots, 100)

	s.Require().Len(results, 2)
	s.Equal(1, results[0].Rank)
	s.Equal(1, results[1].Rank)
}

func (s *ServiceSuite) TestAreaEfficiency() {
	players := []model.Player{
		s.player("p1", "Alice", model.ColorRed, 0),
		s.player("p2", "Bob", model.ColorBlue, 0),
	}
	// Max-size spots give efficiency 1.0; no spots give 0
	spots := []model.InkSpot{s.spot("a", "p1", model.MaxInkSpotSize)}

	results := s.service.CalculateGameResults(players, spots, 1000)

	s.Require().Len(results, 2)
	s.InDelta(1.0, results[0].AreaEfficiency, 1e-9)
	s.Zero(results[1].AreaEfficiency)
}

// Bonuses

func (s *ServiceSuite) TestWinBonus() {
	score := s.service.ApplyWinBonus(model.MustGameScore(50))
	s.InDelta(55.0, score.Value, 1e-9)

	// Clamped at 100
	score = s.service.ApplyWinBonus(model.MustGameScore(95))
	s.Equal(100.0, score.Value)
}

func (s *ServiceSuite) TestTimeBonusScalesWithRemainingTime() {
	base := model.MustGameScore(80)

	full := s.service.ApplyTimeBonus(base, 180*time.Second, 180*time.Second)
	s.InDelta(84.0, full.Value, 1e-9)

	half := s.service.ApplyTimeBonus(base, 90*time.Second, 180*time.Second)
	s.InDelta(82.0, half.Value, 1e-9)

	none := s.service.ApplyTimeBonus(base, 0, 180*time.Second)
	s.Equal(80.0, none.Value)
}

func (s *ServiceSuite) TestPerfectGameBonusNoOpAt100() {
	perfect := model.MustGameScore(100)
	s.Equal(100.0, s.service.ApplyPerfectGameBonus(perfect).Value)

	boosted := s.service.ApplyPerfectGameBonus(model.MustGameScore(50))
	s.InDelta(60.0, boosted.Value, 1e-9)
}
