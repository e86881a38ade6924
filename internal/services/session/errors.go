package session

import "errors"

// Errors returned by session lifecycle operations
var (
	ErrNoPlayers        = errors.New("at least one player is required")
	ErrDuplicateName    = errors.New("player names must be unique")
	ErrDuplicateColor   = errors.New("player colors must be unique")
	ErrPositionOutside  = errors.New("position is outside the playing field")
	ErrPlayerNotInGame  = errors.New("player is not part of this game session")
	ErrGameNotPlayable  = errors.New("game session is not in a playable state")
	ErrGameNotFinished  = errors.New("game session has not finished")
	ErrGameAlreadyEnded = errors.New("game session has already ended")
)
