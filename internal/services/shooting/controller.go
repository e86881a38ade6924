// Package shooting orchestrates the shoot-ink operation: precondition
// checks, spot creation, stun effects, and same-color merge / cross-color
// conflict resolution, committed as one atomic write of the session and
// every player whose activity state changed.
package shooting

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
	"github.com/inkfield/inkfield/internal/services/collision"
	"github.com/inkfield/inkfield/internal/storage"
)

// Config holds shooting tuning constants
type Config struct {
	// MaxSpotsPerPlayer caps how many spots one player may own at once
	MaxSpotsPerPlayer int
}

// DefaultConfig returns the standard shooting tuning
func DefaultConfig() Config {
	return Config{
		MaxSpotsPerPlayer: 20,
	}
}

// conflictShrinkFactor is applied to an opposing spot's size on overlap
const conflictShrinkFactor = 0.8

// StunnedPlayer pairs a stunned player with the effect applied to them
type StunnedPlayer struct {
	PlayerID model.PlayerID
	Effect   collision.CollisionEffect
}

// Result describes the committed outcome of one shot
type Result struct {
	// Session is the session state after the commit
	Session *model.GameSession

	// Spot is the shooter's spot after merge resolution; its ID differs
	// from the freshly shot spot's when a merge occurred
	Spot model.InkSpot

	Stunned []StunnedPlayer
	Merged  []model.SpotsMergedPayload
	Shrunk  []model.SpotShrunkPayload
	Removed []model.SpotRemovedPayload
}

// Controller executes shoot-ink cycles
type Controller struct {
	storage          storage.Storage
	collisionService collision.ServiceInterface
	field            field.Provider
	clock            clock.Clock
	random           random.Random
	locks            *keylock.KeyLock
	peers            peer.Channel
	cfg              Config
	logger           *slog.Logger
}

// NewController creates a new shooting Controller
func NewController(
	storage storage.Storage,
	collisionService collision.ServiceInterface,
	fieldProvider field.Provider,
	clock clock.Clock,
	random random.Random,
	locks *keylock.KeyLock,
	peers peer.Channel,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:          storage,
		collisionService: collisionService,
		field:            fieldProvider,
		clock:            clock,
		random:           random,
		locks:            locks,
		peers:            peers,
		cfg:              cfg,
		logger:           logger,
	}
}

// ShootInk places a spot of the shooter's ink at the target position.
// The whole load-validate-resolve-save cycle holds the session lock, so
// two concurrent shots against one session commit one after the other.
func (c *Controller) ShootInk(ctx context.Context, sessionID model.GameSessionID, playerID model.PlayerID, pos model.Position3D, size float64) (*Result, error) {
	c.locks.Lock(string(sessionID))
	defer c.locks.Unlock(string(sessionID))

	current, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session := *current

	now := c.clock.Now()

	// Preconditions, checked in a fixed order so callers get a stable
	// error for any given bad request
	if session.Status != model.StatusActive {
		return nil, ErrGameNotActive
	}
	if session.RemainingTime(now) <= 0 {
		return nil, ErrGameTimeExpired
	}
	if _, err := c.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	shooter, ok := session.Player(playerID)
	if !ok {
		return nil, ErrPlayerNotInGame
	}
	if !shooter.IsActive {
		return nil, ErrPlayerStunned
	}
	if !pos.IsValid() {
		return nil, &model.InvalidPositionError{Position: pos}
	}
	if !c.field.Contains(pos) {
		return nil, ErrPositionOutside
	}
	if err := model.ValidateInkSpotSize(size); err != nil {
		return nil, err
	}
	if session.PlayerSpotCount(playerID) >= c.cfg.MaxSpotsPerPlayer {
		return nil, &SpotLimitError{PlayerID: playerID, Limit: c.cfg.MaxSpotsPerPlayer}
	}

	spot, err := model.NewInkSpot(model.InkSpotID(c.random.ID()), pos, shooter.Color, size, playerID, now)
	if err != nil {
		return nil, err
	}
	session = session.AddInkSpot(spot)

	result := &Result{Spot: spot}

	// Opposing players standing in the fresh ink get stunned
	for _, p := range session.Players {
		effect := c.collisionService.CalculatePlayerCollisionEffect(p, spot)
		if !effect.IsStunned {
			continue
		}
		stunned := p.Deactivate()
		session = session.UpdatePlayer(stunned)
		result.Stunned = append(result.Stunned, StunnedPlayer{PlayerID: p.ID, Effect: effect})
	}

	session, result = c.resolveOverlaps(session, spot, result)

	// The session and every player whose activity state changed commit
	// together; a rejected shot must leave no trace in either store
	changed := make([]*model.Player, 0, len(result.Stunned))
	for _, stunned := range result.Stunned {
		if p, ok := session.Player(stunned.PlayerID); ok {
			changed = append(changed, &p)
		}
	}
	if err := c.storage.UpdateSessionAndPlayers(ctx, &session, changed); err != nil {
		c.logger.Error("failed to save session after shot",
			slog.String("session_id", string(sessionID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	result.Session = &session
	c.publishEvents(session.ID, playerID, now, result)

	c.logger.Info("ink shot",
		slog.String("session_id", string(sessionID)),
		slog.String("player_id", string(playerID)),
		slog.String("spot_id", string(result.Spot.ID)),
		slog.Int("stunned", len(result.Stunned)),
		slog.Int("merged", len(result.Merged)),
	)

	return result, nil
}

// resolveOverlaps walks the spots overlapping the fresh one, in field
// order. Same-color pairs collapse into a single larger spot, which
// carries forward into the remaining comparisons; opposing spots shrink
// and disappear below the minimum size.
func (c *Controller) resolveOverlaps(session model.GameSession, spot model.InkSpot, result *Result) (model.GameSession, *Result) {
	overlaps := c.collisionService.FindOverlappingInkSpots(spot, session.InkSpots)

	currentSpot := spot
	for _, overlap := range overlaps {
		other, ok := session.FindInkSpot(overlap.Spot.ID)
		if !ok {
			continue
		}

		// Earlier merges moved and grew the current spot, so the overlap
		// must be re-tested against its present shape
		check := c.collisionService.CheckInkSpotOverlap(currentSpot, other)
		if !check.HasOverlap {
			continue
		}

		if check.MergedSize != nil {
			mergedSize := min(*check.MergedSize, model.MaxInkSpotSize)
			merged, err := model.NewInkSpot(
				model.InkSpotID(c.random.ID()),
				currentSpot.Position.Midpoint(other.Position),
				currentSpot.Color,
				mergedSize,
				currentSpot.OwnerID,
				currentSpot.CreatedAt,
			)
			if err != nil {
				continue
			}

			session = session.RemoveInkSpot(currentSpot.ID)
			session = session.RemoveInkSpot(other.ID)
			session = session.AddInkSpot(merged)

			result.Merged = append(result.Merged, model.SpotsMergedPayload{
				RemovedIDs: []model.InkSpotID{currentSpot.ID, other.ID},
				Merged:     merged,
			})
			currentSpot = merged
			continue
		}

		// Opposing ink: the existing spot gives way
		newSize := other.Size * conflictShrinkFactor
		if newSize < model.MinInkSpotSize {
			session = session.RemoveInkSpot(other.ID)
			result.Removed = append(result.Removed, model.SpotRemovedPayload{SpotID: other.ID})
		} else {
			shrunk := other.WithSize(newSize)
			session = session.UpdateInkSpot(shrunk)
			result.Shrunk = append(result.Shrunk, model.SpotShrunkPayload{SpotID: other.ID, NewSize: newSize})
		}
	}

	result.Spot = currentSpot
	return session, result
}

// publishEvents emits the shot and its consequences after the commit
func (c *Controller) publishEvents(sessionID model.GameSessionID, playerID model.PlayerID, now time.Time, result *Result) {
	c.peers.Publish(model.Event{
		Type:      model.EventInkShot,
		Timestamp: now,
		SessionID: sessionID,
		PlayerID:  playerID,
		Payload:   model.InkShotPayload{Spot: result.Spot},
	})
	for _, stunned := range result.Stunned {
		c.peers.Publish(model.Event{
			Type:      model.EventPlayerStunned,
			Timestamp: now,
			SessionID: sessionID,
			PlayerID:  stunned.PlayerID,
			Payload: model.PlayerStunnedPayload{
				StunDuration:   stunned.Effect.StunDuration,
				SpeedReduction: stunned.Effect.SpeedReduction,
			},
		})
	}
	for _, merged := range result.Merged {
		c.peers.Publish(model.Event{
			Type:      model.EventSpotsMerged,
			Timestamp: now,
			SessionID: sessionID,
			PlayerID:  playerID,
			Payload:   merged,
		})
	}
	for _, shrunk := range result.Shrunk {
		c.peers.Publish(model.Event{
			Type:      model.EventSpotShrunk,
			Timestamp: now,
			SessionID: sessionID,
			PlayerID:  playerID,
			Payload:   shrunk,
		})
	}
	for _, removed := range result.Removed {
		c.peers.Publish(model.Event{
			Type:      model.EventSpotRemoved,
			Timestamp: now,
			SessionID: sessionID,
			PlayerID:  playerID,
			Payload:   removed,
		})
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	ShootInk(ctx context.Context, sessionID model.GameSessionID, playerID model.PlayerID, pos model.Position3D, size float64) (*Result, error)
}

var _ ControllerInterface = (*Controller)(nil)
