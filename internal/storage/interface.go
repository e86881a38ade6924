package storage

import (
	"context"

	"github.com/inkfield/inkfield/internal/model"
)

// Storage defines the interface for data persistence: the Session Store,
// the Player Store, and the player-profile store used by auth.
// Implementations return copies; callers never observe shared mutable state.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.GameSessionID) (*model.GameSession, error)
	UpdateSession(ctx context.Context, session *model.GameSession) error
	// UpdateSessionAndPlayers commits a session update together with the
	// given player records: either every write lands or none does.
	UpdateSessionAndPlayers(ctx context.Context, session *model.GameSession, players []*model.Player) error
	DeleteSession(ctx context.Context, id model.GameSessionID) error
	ListActiveSessions(ctx context.Context) ([]*model.GameSession, error)

	// Player operations (per-game participant records)
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	UpdatePlayer(ctx context.Context, player *model.Player) error

	// Profile operations (long-lived identities)
	SaveProfile(ctx context.Context, profile *model.PlayerProfile) error
	GetProfile(ctx context.Context, id model.PlayerID) (*model.PlayerProfile, error)

	// Account operations (registered credentials)
	SaveAccount(ctx context.Context, account *model.PlayerAccount) error
	GetAccount(ctx context.Context, playerID model.PlayerID) (*model.PlayerAccount, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.PlayerAccount, error)
}
