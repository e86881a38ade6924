package session

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/inkfield/inkfield/internal/dependencies/keylock"
	"github.com/inkfield/inkfield/internal/dependencies/mocks"
	"github.com/inkfield/inkfield/internal/field"
	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/peer"
	"github.com/inkfield/inkfield/internal/services/scoring"
	"github.com/inkfield/inkfield/internal/storage"
	"github.com/inkfield/inkfield/internal/storage/memory"
	"github.com/inkfield/inkfield/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	recorder   *peer.Recorder
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.recorder = peer.NewRecorder()
	s.controller = NewController(
		s.storage,
		scoring.New(),
		field.NewBounded(field.DefaultBounds()),
		s.clock,
		s.random,
		keylock.New(),
		s.recorder,
		testutil.NopLogger(),
	)
	s.ctx = context.Background()
}

func (s *ControllerSuite) defaultParams() []NewPlayerParams {
	return []NewPlayerParams{
		{Name: "Alice", Color: model.ColorRed, Position: model.Position3D{X: -2}},
		{Name: "Bob", Color: model.ColorBlue, Position: model.Position3D{X: 2}},
	}
}

func (s *ControllerSuite) startGame() *model.GameSession {
	s.random.QueueID("p-alice", "p-bob", "g-1")
	session, err := s.controller.StartGame(s.ctx, s.defaultParams(), 180*time.Second)
	s.Require().NoError(err)
	return session
}

// StartGame

func (s *ControllerSuite) TestStartGame() {
	session := s.startGame()

	s.Equal(model.GameSessionID("g-1"), session.ID)
	s.Equal(model.StatusActive, session.Status)
	s.Require().NotNil(session.StartedAt)
	s.Equal(s.clock.CurrentTime, *session.StartedAt)
	s.Require().Len(session.Players, 2)
	s.Equal(model.PlayerID("p-alice"), session.Players[0].ID)
	s.Equal("Alice", session.Players[0].Name)
	s.True(session.Players[0].IsActive)
	s.Empty(session.InkSpots)

	// Session and both players persisted
	stored, err := s.storage.GetSession(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(model.StatusActive, stored.Status)
	_, err = s.storage.GetPlayer(s.ctx, "p-alice")
	s.NoError(err)
	_, err = s.storage.GetPlayer(s.ctx, "p-bob")
	s.NoError(err)

	events := s.recorder.EventsOfType(model.EventGameStarted)
	s.Require().Len(events, 1)
	payload := events[0].Payload.(model.GameStartedPayload)
	s.Equal([]model.PlayerID{"p-alice", "p-bob"}, payload.Players)
	s.Equal(180*time.Second, payload.Duration)
}

func (s *ControllerSuite) TestStartGameNoPlayers() {
	_, err := s.controller.StartGame(s.ctx, nil, 180*time.Second)
	s.ErrorIs(err, ErrNoPlayers)
}

func (s *ControllerSuite) TestStartGameWrongPlayerCount() {
	params := s.defaultParams()[:1]
	_, err := s.controller.StartGame(s.ctx, params, 180*time.Second)
	var countErr *model.InvalidPlayerCountError
	s.ErrorAs(err, &countErr)
	s.Equal(1, countErr.Count)
}

func (s *ControllerSuite) TestStartGameDuplicateName() {
	params := s.defaultParams()
	params[1].Name = "Alice"
	_, err := s.controller.StartGame(s.ctx, params, 180*time.Second)
	s.ErrorIs(err, ErrDuplicateName)
}

func (s *ControllerSuite) TestStartGameDuplicateColor() {
	params := s.defaultParams()
	params[1].Color = model.ColorRed
	_, err := s.controller.StartGame(s.ctx, params, 180*time.Second)
	s.ErrorIs(err, ErrDuplicateColor)
}

func (s *ControllerSuite) TestStartGameInvalidName() {
	params := s.defaultParams()
	params[0].Name = "   "
	_, err := s.controller.StartGame(s.ctx, params, 180*time.Second)
	var nameErr *model.InvalidNameError
	s.ErrorAs(err, &nameErr)
}

func (s *ControllerSuite) TestStartGameInvalidDuration() {
	_, err := s.controller.StartGame(s.ctx, s.defaultParams(), 30*time.Second)
	var durationErr *model.InvalidDurationError
	s.ErrorAs(err, &durationErr)

	_, err = s.controller.StartGame(s.ctx, s.defaultParams(), time.Hour)
	s.ErrorAs(err, &durationErr)
}

func (s *ControllerSuite) TestStartGamePositionOutsideField() {
	params := s.defaultParams()
	params[0].Position = model.Position3D{X: 50}
	_, err := s.controller.StartGame(s.ctx, params, 180*time.Second)
	s.ErrorIs(err, ErrPositionOutside)
}

// UpdatePlayerPosition

func (s *ControllerSuite) TestUpdatePlayerPosition() {
	s.startGame()

	updated, err := s.controller.UpdatePlayerPosition(s.ctx, "g-1", "p-alice", model.Position3D{X: 1, Z: 1})
	s.Require().NoError(err)

	player, ok := updated.Player("p-alice")
	s.Require().True(ok)
	s.Equal(model.Position3D{X: 1, Z: 1}, player.Position)

	stored, err := s.storage.GetPlayer(s.ctx, "p-alice")
	s.Require().NoError(err)
	s.Equal(model.Position3D{X: 1, Z: 1}, stored.Position)

	events := s.recorder.EventsOfType(model.EventPlayerMoved)
	s.Require().Len(events, 1)
	s.Equal(model.PlayerID("p-alice"), events[0].PlayerID)
}

func (s *ControllerSuite) TestUpdatePlayerPositionInvalid() {
	s.startGame()

	_, err := s.controller.UpdatePlayerPosition(s.ctx, "g-1", "p-alice", model.Position3D{X: math.NaN()})
	var posErr *model.InvalidPositionError
	s.ErrorAs(err, &posErr)

	_, err = s.controller.UpdatePlayerPosition(s.ctx, "g-1", "p-alice", model.Position3D{X: 100})
	s.ErrorIs(err, ErrPositionOutside)
}

func (s *ControllerSuite) TestUpdatePlayerPositionUnknownPlayer() {
	s.startGame()
	_, err := s.controller.UpdatePlayerPosition(s.ctx, "g-1", "p-carol", model.Position3D{})
	s.ErrorIs(err, ErrPlayerNotInGame)
}

func (s *ControllerSuite) TestUpdatePlayerPositionAfterEnd() {
	s.startGame()
	_, err := s.controller.EndGame(s.ctx, "g-1")
	s.Require().NoError(err)

	_, err = s.controller.UpdatePlayerPosition(s.ctx, "g-1", "p-alice", model.Position3D{})
	s.ErrorIs(err, ErrGameNotPlayable)
}

// EndGame

func (s *ControllerSuite) TestEndGameScoresAndBonuses() {
	s.startGame()

	// Give Alice one unit-radius spot, then play out half the game
	current, err := s.storage.GetSession(s.ctx, "g-1")
	s.Require().NoError(err)
	spot, err := model.NewInkSpot("i-1", model.Position3D{}, model.ColorRed, 1.0, "p-alice", s.clock.CurrentTime)
	s.Require().NoError(err)
	withSpot := current.AddInkSpot(spot)
	s.Require().NoError(s.storage.UpdateSession(s.ctx, &withSpot))

	s.clock.Advance(90 * time.Second)

	ended, err := s.controller.EndGame(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(model.StatusFinished, ended.Status)
	s.Require().NotNil(ended.EndedAt)

	// Base pi% coverage, +5%*0.5 time bonus, +10% win bonus
	expected := math.Pi * 1.025 * 1.10
	alice, ok := ended.Player("p-alice")
	s.Require().True(ok)
	s.InDelta(expected, alice.Score.Value, 0.0001)

	bob, ok := ended.Player("p-bob")
	s.Require().True(ok)
	s.Zero(bob.Score.Value)

	// Scores persisted on the player records too
	stored, err := s.storage.GetPlayer(s.ctx, "p-alice")
	s.Require().NoError(err)
	s.InDelta(expected, stored.Score.Value, 0.0001)

	events := s.recorder.EventsOfType(model.EventGameEnded)
	s.Require().Len(events, 1)
	payload := events[0].Payload.(model.GameEndedPayload)
	s.Require().NotNil(payload.Winner)
	s.Equal(model.PlayerID("p-alice"), *payload.Winner)
	s.Len(payload.Scores, 2)
}

func (s *ControllerSuite) TestEndGameTieHasNoWinner() {
	s.startGame()

	ended, err := s.controller.EndGame(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(model.StatusFinished, ended.Status)

	events := s.recorder.EventsOfType(model.EventGameEnded)
	s.Require().Len(events, 1)
	payload := events[0].Payload.(model.GameEndedPayload)
	s.Nil(payload.Winner)
}

func (s *ControllerSuite) TestEndGameTwiceFails() {
	s.startGame()
	_, err := s.controller.EndGame(s.ctx, "g-1")
	s.Require().NoError(err)

	_, err = s.controller.EndGame(s.ctx, "g-1")
	s.ErrorIs(err, ErrGameAlreadyEnded)
}

func (s *ControllerSuite) TestEndGameNotFound() {
	_, err := s.controller.EndGame(s.ctx, "nope")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// faultyStorage rejects combined commits while delegating everything else
type faultyStorage struct {
	storage.Storage
	commitErr error
}

func (f *faultyStorage) UpdateSessionAndPlayers(ctx context.Context, session *model.GameSession, players []*model.Player) error {
	return f.commitErr
}

func (s *ControllerSuite) TestEndGameCommitFailureLeavesGameRunning() {
	s.startGame()

	commitErr := errors.New("store unavailable")
	controller := NewController(
		&faultyStorage{Storage: s.storage, commitErr: commitErr},
		scoring.New(),
		field.NewBounded(field.DefaultBounds()),
		s.clock,
		s.random,
		keylock.New(),
		s.recorder,
		testutil.NopLogger(),
	)

	_, err := controller.EndGame(s.ctx, "g-1")
	s.ErrorIs(err, commitErr)

	// Session and player records commit together, so a failed end leaves
	// the game active with no scores applied anywhere
	stored, err := s.storage.GetSession(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(model.StatusActive, stored.Status)

	alice, err := s.storage.GetPlayer(s.ctx, "p-alice")
	s.Require().NoError(err)
	s.Zero(alice.Score.Value)

	s.Empty(s.recorder.EventsOfType(model.EventGameEnded))
}

// CancelGame

func (s *ControllerSuite) TestCancelGame() {
	s.startGame()

	cancelled, err := s.controller.CancelGame(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(model.StatusCancelled, cancelled.Status)

	s.Len(s.recorder.EventsOfType(model.EventGameCancelled), 1)
}

func (s *ControllerSuite) TestCancelGameAfterEnd() {
	s.startGame()
	_, err := s.controller.EndGame(s.ctx, "g-1")
	s.Require().NoError(err)

	_, err = s.controller.CancelGame(s.ctx, "g-1")
	s.ErrorIs(err, ErrGameAlreadyEnded)
}

// GameResults

func (s *ControllerSuite) TestGameResults() {
	s.startGame()

	current, err := s.storage.GetSession(s.ctx, "g-1")
	s.Require().NoError(err)
	spot, err := model.NewInkSpot("i-1", model.Position3D{}, model.ColorRed, 1.0, "p-alice", s.clock.CurrentTime)
	s.Require().NoError(err)
	withSpot := current.AddInkSpot(spot)
	s.Require().NoError(s.storage.UpdateSession(s.ctx, &withSpot))

	_, err = s.controller.EndGame(s.ctx, "g-1")
	s.Require().NoError(err)

	results, err := s.controller.GameResults(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Require().Len(results, 2)

	s.Equal(model.PlayerID("p-alice"), results[0].PlayerID)
	s.Equal(1, results[0].Rank)
	s.Equal(1, results[0].SpotCount)
	s.Equal(2, results[1].Rank)
	s.Zero(results[1].Score.Value)

	// Results carry the bonus-adjusted scores committed at game end
	ended, err := s.storage.GetSession(s.ctx, "g-1")
	s.Require().NoError(err)
	alice, _ := ended.Player("p-alice")
	s.Equal(alice.Score.Value, results[0].Score.Value)
}

func (s *ControllerSuite) TestGameResultsBeforeEnd() {
	s.startGame()
	_, err := s.controller.GameResults(s.ctx, "g-1")
	s.ErrorIs(err, ErrGameNotFinished)
}

func (s *ControllerSuite) TestGameResultsAfterCancel() {
	s.startGame()
	_, err := s.controller.CancelGame(s.ctx, "g-1")
	s.Require().NoError(err)

	_, err = s.controller.GameResults(s.ctx, "g-1")
	s.ErrorIs(err, ErrGameNotFinished)
}

// Queries

func (s *ControllerSuite) TestListActiveSessions() {
	s.startGame()

	sessions, err := s.controller.ListActiveSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.GameSessionID("g-1"), sessions[0].ID)

	_, err = s.controller.EndGame(s.ctx, "g-1")
	s.Require().NoError(err)

	sessions, err = s.controller.ListActiveSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *ControllerSuite) TestGetSession() {
	s.startGame()

	session, err := s.controller.GetSession(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(model.GameSessionID("g-1"), session.ID)

	_, err = s.controller.GetSession(s.ctx, "nope")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
