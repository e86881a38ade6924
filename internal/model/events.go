package model

import "time"

// EventType identifies the type of session delta event
type EventType string

const (
	EventGameStarted   EventType = "game_started"
	EventInkShot       EventType = "ink_shot"
	EventSpotsMerged   EventType = "spots_merged"
	EventSpotShrunk    EventType = "spot_shrunk"
	EventSpotRemoved   EventType = "spot_removed"
	EventPlayerStunned EventType = "player_stunned"
	EventPlayerMoved   EventType = "player_moved"
	EventGameEnded     EventType = "game_ended"
	EventGameCancelled EventType = "game_cancelled"
)

// Event is a session delta broadcast to peers after a committed state change
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID GameSessionID
	PlayerID  PlayerID // The player who triggered or is affected
	Payload   any      // Type-specific data
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Players  []PlayerID
	Duration time.Duration
}

// InkShotPayload contains data for ink shot events
type InkShotPayload struct {
	Spot InkSpot
}

// SpotsMergedPayload contains data for same-color merge events
type SpotsMergedPayload struct {
	RemovedIDs []InkSpotID
	Merged     InkSpot
}

// SpotShrunkPayload contains data for cross-color conflict events
type SpotShrunkPayload struct {
	SpotID  InkSpotID
	NewSize float64
}

// SpotRemovedPayload contains data for conflict removals
type SpotRemovedPayload struct {
	SpotID InkSpotID
}

// PlayerStunnedPayload contains data for stun events
type PlayerStunnedPayload struct {
	StunDuration   time.Duration
	SpeedReduction float64
}

// PlayerMovedPayload contains data for position update events
type PlayerMovedPayload struct {
	Position Position3D
}

// GameEndedPayload contains data for game ended events
type GameEndedPayload struct {
	Winner *PlayerID // nil on a tie
	Scores map[PlayerID]GameScore
}
