// Package session manages the game session lifecycle: creating and
// starting matches, position updates, ending and cancelling, and final
// results. State-changing operations against a running session are
// serialized per session so concurrent commits cannot lose updates.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkfield/inkfield/internal/dependencies/clock"
	"github.com/inkfield/inkfield/internal/dependencies/keylock"
	"github.com/inkfield/inkfield/internal/dependencies/random"
	"github.com/inkfield/inkfield/internal/field"
	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/peer"
	"github.com/inkfield/inkfield/internal/services/scoring"
	"github.com/inkfield/inkfield/internal/storage"
)

// NewPlayerParams describes one participant of a new game
type NewPlayerParams struct {
	Name     string
	Color    model.PlayerColor
	Position model.Position3D
}

// Controller manages the session lifecycle
type Controller struct {
	storage        storage.Storage
	scoringService scoring.ServiceInterface
	field          field.Provider
	clock          clock.Clock
	random         random.Random
	locks          *keylock.KeyLock
	peers          peer.Channel
	logger         *slog.Logger
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	scoringService scoring.ServiceInterface,
	fieldProvider field.Provider,
	clock clock.Clock,
	random random.Random,
	locks *keylock.KeyLock,
	peers peer.Channel,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		scoringService: scoringService,
		field:          fieldProvider,
		clock:          clock,
		random:         random,
		locks:          locks,
		peers:          peers,
		logger:         logger,
	}
}

// StartGame validates the participants, creates the session, starts it,
// and persists everything. The session record is written last so a
// partially persisted game is never listed as startable.
func (c *Controller) StartGame(ctx context.Context, params []NewPlayerParams, duration time.Duration) (*model.GameSession, error) {
	if len(params) == 0 {
		return nil, ErrNoPlayers
	}
	if len(params) != model.SessionPlayerCount {
		return nil, &model.InvalidPlayerCountError{Count: len(params)}
	}

	names := make(map[string]bool, len(params))
	colors := make(map[model.PlayerColor]bool, len(params))
	for _, p := range params {
		if names[p.Name] {
			return nil, ErrDuplicateName
		}
		names[p.Name] = true
		if colors[p.Color] {
			return nil, ErrDuplicateColor
		}
		colors[p.Color] = true
	}

	players := make([]model.Player, 0, len(params))
	for _, p := range params {
		if !c.field.Contains(p.Position) {
			return nil, ErrPositionOutside
		}
		player, err := model.NewPlayer(model.PlayerID(c.random.ID()), p.Name, p.Color, p.Position)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}

	session, err := model.NewGameSession(model.GameSessionID(c.random.ID()), players, duration)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	session = session.Start(now)

	for i := range players {
		if err := c.storage.SavePlayer(ctx, &players[i]); err != nil {
			return nil, err
		}
	}
	if err := c.storage.SaveSession(ctx, &session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	playerIDs := make([]model.PlayerID, 0, len(players))
	for _, p := range players {
		playerIDs = append(playerIDs, p.ID)
	}
	c.peers.Publish(model.Event{
		Type:      model.EventGameStarted,
		Timestamp: now,
		SessionID: session.ID,
		Payload: model.GameStartedPayload{
			Players:  playerIDs,
			Duration: duration,
		},
	})

	c.logger.Info("game started",
		slog.String("session_id", string(session.ID)),
		slog.Int("player_count", len(players)),
		slog.Duration("duration", duration),
	)

	return &session, nil
}

// GetSession retrieves a session by ID
func (c *Controller) GetSession(ctx context.Context, sessionID model.GameSessionID) (*model.GameSession, error) {
	return c.storage.GetSession(ctx, sessionID)
}

// ListActiveSessions returns all sessions currently in play
func (c *Controller) ListActiveSessions(ctx context.Context) ([]*model.GameSession, error) {
	return c.storage.ListActiveSessions(ctx)
}

// UpdatePlayerPosition moves a player within a running game
func (c *Controller) UpdatePlayerPosition(ctx context.Context, sessionID model.GameSessionID, playerID model.PlayerID, pos model.Position3D) (*model.GameSession, error) {
	if !pos.IsValid() {
		return nil, &model.InvalidPositionError{Position: pos}
	}
	if !c.field.Contains(pos) {
		return nil, ErrPositionOutside
	}

	c.locks.Lock(string(sessionID))
	defer c.locks.Unlock(string(sessionID))

	current, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session := *current

	if !session.Status.IsPlayable() {
		return nil, ErrGameNotPlayable
	}
	player, ok := session.Player(playerID)
	if !ok {
		return nil, ErrPlayerNotInGame
	}

	moved := player.UpdatePosition(pos)
	session = session.UpdatePlayer(moved)

	if err := c.storage.UpdateSessionAndPlayers(ctx, &session, []*model.Player{&moved}); err != nil {
		return nil, err
	}

	c.peers.Publish(model.Event{
		Type:      model.EventPlayerMoved,
		Timestamp: c.clock.Now(),
		SessionID: session.ID,
		PlayerID:  playerID,
		Payload:   model.PlayerMovedPayload{Position: pos},
	})

	return &session, nil
}

// EndGame finishes a running game: final scores are recomputed from the
// committed ink spots, end-of-game bonuses applied, and the result
// persisted. The whole cycle holds the session lock.
func (c *Controller) EndGame(ctx context.Context, sessionID model.GameSessionID) (*model.GameSession, error) {
	c.locks.Lock(string(sessionID))
	defer c.locks.Unlock(string(sessionID))

	current, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session := *current

	if session.Status.HasEnded() {
		return nil, ErrGameAlreadyEnded
	}
	if !session.Status.IsPlayable() {
		return nil, ErrGameNotPlayable
	}

	now := c.clock.Now()
	remaining := session.RemainingTime(now)
	fieldSize := c.field.Size()

	// Base scores from coverage, then time bonus for everyone
	scored := make([]model.Player, 0, len(session.Players))
	for _, p := range session.Players {
		score := c.scoringService.CalculatePlayerScore(p.ID, session.InkSpots, fieldSize)
		score = c.scoringService.ApplyTimeBonus(score, remaining, session.Duration)
		scored = append(scored, p.UpdateScore(score))
	}

	// Win bonus goes to the coverage leader
	if winner := c.scoringService.DetermineWinner(scored); winner != nil {
		for i, p := range scored {
			if p.ID == winner.ID {
				scored[i] = p.UpdateScore(c.scoringService.ApplyWinBonus(p.Score))
			}
		}
	}

	for _, p := range scored {
		session = session.UpdatePlayer(p)
	}
	session = session.End(now)

	// Final scores land on the session and the player records in one
	// commit; a failed end leaves the game running with no scores applied
	changed := make([]*model.Player, 0, len(scored))
	for i := range scored {
		changed = append(changed, &scored[i])
	}
	if err := c.storage.UpdateSessionAndPlayers(ctx, &session, changed); err != nil {
		c.logger.Error("failed to save finished session",
			slog.String("session_id", string(sessionID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	scores := make(map[model.PlayerID]model.GameScore, len(session.Players))
	for _, p := range session.Players {
		scores[p.ID] = p.Score
	}
	var winnerID *model.PlayerID
	if w, ok := session.Winner(); ok {
		id := w.ID
		winnerID = &id
	}
	c.peers.Publish(model.Event{
		Type:      model.EventGameEnded,
		Timestamp: now,
		SessionID: session.ID,
		Payload: model.GameEndedPayload{
			Winner: winnerID,
			Scores: scores,
		},
	})

	c.logger.Info("game ended",
		slog.String("session_id", string(sessionID)),
		slog.Int("ink_spots", len(session.InkSpots)),
	)

	return &session, nil
}

// CancelGame aborts a game without computing results
func (c *Controller) CancelGame(ctx context.Context, sessionID model.GameSessionID) (*model.GameSession, error) {
	c.locks.Lock(string(sessionID))
	defer c.locks.Unlock(string(sessionID))

	current, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session := *current

	if session.Status.HasEnded() {
		return nil, ErrGameAlreadyEnded
	}

	now := c.clock.Now()
	session = session.Cancel(now)

	if err := c.storage.UpdateSession(ctx, &session); err != nil {
		return nil, err
	}

	c.peers.Publish(model.Event{
		Type:      model.EventGameCancelled,
		Timestamp: now,
		SessionID: session.ID,
	})

	c.logger.Info("game cancelled", slog.String("session_id", string(sessionID)))

	return &session, nil
}

// GameResults returns the ranked final results of a finished game.
// Spot counts and efficiency come from the committed ink spots; scores
// are the bonus-adjusted values persisted when the game ended.
func (c *Controller) GameResults(ctx context.Context, sessionID model.GameSessionID) ([]model.GameResult, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.StatusFinished {
		return nil, ErrGameNotFinished
	}

	results := c.scoringService.CalculateGameResults(session.Players, session.InkSpots, c.field.Size())
	for i := range results {
		if p, ok := session.Player(results[i].PlayerID); ok {
			results[i].Score = p.Score
		}
	}
	return c.scoringService.RankResults(results), nil
}

// Interface for dependency injection
type ControllerInterface interface {
	StartGame(ctx context.Context, params []NewPlayerParams, duration time.Duration) (*model.GameSession, error)
	GetSession(ctx context.Context, sessionID model.GameSessionID) (*model.GameSession, error)
	ListActiveSessions(ctx context.Context) ([]*model.GameSession, error)
	UpdatePlayerPosition(ctx context.Context, sessionID model.GameSessionID, playerID model.PlayerID, pos model.Position3D) (*model.GameSession, error)
	EndGame(ctx context.Context, sessionID model.GameSessionID) (*model.GameSession, error)
	CancelGame(ctx context.Context, sessionID model.GameSessionID) (*model.GameSession, error)
	GameResults(ctx context.Context, sessionID model.GameSessionID) ([]model.GameResult, error)
}

var _ ControllerInterface = (*Controller)(nil)
