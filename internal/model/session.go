package model

import (
	"slices"
	"time"
)

// GameSessionID uniquely identifies a game session
type GameSessionID string

// Session invariants: exactly two players, duration within bounds
const (
	SessionPlayerCount = 2

	MinGameDuration = 60 * time.Second
	MaxGameDuration = 600 * time.Second
)

// GameSession is the aggregate root for one match between exactly two
// players. All mutators are pure: they return a new session value and
// never modify the receiver or any shared slice.
type GameSession struct {
	ID        GameSessionID
	Players   []Player
	Duration  time.Duration
	Status    SessionStatus
	InkSpots  []InkSpot
	StartedAt *time.Time
	EndedAt   *time.Time
}

// NewGameSession creates a waiting session, enforcing the player count
// and duration invariants
func NewGameSession(id GameSessionID, players []Player, duration time.Duration) (GameSession, error) {
	if len(players) != SessionPlayerCount {
		return GameSession{}, &InvalidPlayerCountError{Count: len(players)}
	}
	if duration < MinGameDuration || duration > MaxGameDuration {
		return GameSession{}, &InvalidDurationError{Duration: duration}
	}
	return GameSession{
		ID:       id,
		Players:  slices.Clone(players),
		Duration: duration,
		Status:   StatusWaiting,
		InkSpots: []InkSpot{},
	}, nil
}

// Start transitions waiting -> active and records the start time.
// Calling it from any other status is a no-op returning the session unchanged.
func (g GameSession) Start(now time.Time) GameSession {
	if !g.Status.CanStart() {
		return g
	}
	started := now
	g.Status = StatusActive
	g.StartedAt = &started
	return g
}

// End transitions a playable session to finished and records the end time.
// Calling it from a non-playable status is a no-op.
func (g GameSession) End(now time.Time) GameSession {
	if !g.Status.IsPlayable() {
		return g
	}
	ended := now
	g.Status = StatusFinished
	g.EndedAt = &ended
	return g
}

// Cancel transitions a waiting or playable session to cancelled.
// Calling it from a terminal status is a no-op.
func (g GameSession) Cancel(now time.Time) GameSession {
	if g.Status.HasEnded() {
		return g
	}
	ended := now
	g.Status = StatusCancelled
	g.EndedAt = &ended
	return g
}

// AddInkSpot returns a new session with the spot appended
func (g GameSession) AddInkSpot(spot InkSpot) GameSession {
	spots := make([]InkSpot, 0, len(g.InkSpots)+1)
	spots = append(spots, g.InkSpots...)
	spots = append(spots, spot)
	g.InkSpots = spots
	return g
}

// RemoveInkSpot returns a new session without the identified spot.
// Unknown IDs leave the session unchanged.
func (g GameSession) RemoveInkSpot(id InkSpotID) GameSession {
	idx := slices.IndexFunc(g.InkSpots, func(s InkSpot) bool { return s.ID == id })
	if idx < 0 {
		return g
	}
	spots := make([]InkSpot, 0, len(g.InkSpots)-1)
	spots = append(spots, g.InkSpots[:idx]...)
	spots = append(spots, g.InkSpots[idx+1:]...)
	g.InkSpots = spots
	return g
}

// UpdateInkSpot returns a new session with the matching spot replaced in place
func (g GameSession) UpdateInkSpot(spot InkSpot) GameSession {
	idx := slices.IndexFunc(g.InkSpots, func(s InkSpot) bool { return s.ID == spot.ID })
	if idx < 0 {
		return g
	}
	spots := slices.Clone(g.InkSpots)
	spots[idx] = spot
	g.InkSpots = spots
	return g
}

// UpdatePlayer returns a new session with the matching player replaced.
// Players are matched by ID; order is preserved.
func (g GameSession) UpdatePlayer(player Player) GameSession {
	idx := slices.IndexFunc(g.Players, func(p Player) bool { return p.ID == player.ID })
	if idx < 0 {
		return g
	}
	players := slices.Clone(g.Players)
	players[idx] = player
	g.Players = players
	return g
}

// Player returns the session member with the given ID
func (g GameSession) Player(id PlayerID) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// HasPlayer reports whether the player is a member of this session
func (g GameSession) HasPlayer(id PlayerID) bool {
	_, ok := g.Player(id)
	return ok
}

// FindInkSpot returns the spot with the given ID
func (g GameSession) FindInkSpot(id InkSpotID) (InkSpot, bool) {
	for _, s := range g.InkSpots {
		if s.ID == id {
			return s, true
		}
	}
	return InkSpot{}, false
}

// PlayerSpotCount returns the number of spots owned by the player
func (g GameSession) PlayerSpotCount(id PlayerID) int {
	count := 0
	for _, s := range g.InkSpots {
		if s.OwnerID == id {
			count++
		}
	}
	return count
}

// RemainingTime returns the time left in the session, clamped to zero.
// A session that has not started has its full duration remaining.
func (g GameSession) RemainingTime(now time.Time) time.Duration {
	if g.StartedAt == nil {
		return g.Duration
	}
	remaining := g.Duration - now.Sub(*g.StartedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Winner returns the player with the strictly highest score.
// It is defined only once the session has ended; before that, and on a
// tie between the top two scores, it returns false.
func (g GameSession) Winner() (Player, bool) {
	if !g.Status.HasEnded() || len(g.Players) == 0 {
		return Player{}, false
	}
	top := g.Players[0]
	tied := false
	for _, p := range g.Players[1:] {
		switch p.Score.Compare(top.Score) {
		case ScoreFirstWins:
			top = p
			tied = false
		case ScoreTie:
			tied = true
		}
	}
	if tied {
		return Player{}, false
	}
	return top, true
}

// Equals reports identity equality by ID
func (g GameSession) Equals(other GameSession) bool {
	return g.ID == other.ID
}
