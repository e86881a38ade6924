package shooting

import (
	"errors"
	"fmt"

	"github.com/inkfield/inkfield/internal/model"
)

// Errors returned by the shoot-ink operation
var (
	ErrGameNotActive   = errors.New("game session is not active")
	ErrGameTimeExpired = errors.New("game time has expired")
	ErrPlayerNotInGame = errors.New("player is not part of this game session")
	ErrPlayerStunned   = errors.New("player is stunned and cannot shoot")
	ErrPositionOutside = errors.New("target position is outside the playing field")
)

// SpotLimitError reports a shooter at their ink spot cap
type SpotLimitError struct {
	PlayerID model.PlayerID
	Limit    int
}

func (e *SpotLimitError) Error() string {
	return fmt.Sprintf("player %s has reached the limit of %d ink spots", e.PlayerID, e.Limit)
}
