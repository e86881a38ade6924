package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are stored and returned by copy so no caller ever holds a
// reference into the store's state.
type Storage struct {
	mu sync.RWMutex

	sessions map[model.GameSessionID]model.GameSession
	players  map[model.PlayerID]model.Player
	profiles map[model.PlayerID]model.PlayerProfile
	accounts map[model.PlayerID]model.PlayerAccount

	usernameIndex map[string]model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:      make(map[model.GameSessionID]model.GameSession),
		players:       make(map[model.PlayerID]model.Player),
		profiles:      make(map[model.PlayerID]model.PlayerProfile),
		accounts:      make(map[model.PlayerID]model.PlayerAccount),
		usernameIndex: make(map[string]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// cloneSession copies the session along with the slices backing its
// players and ink spots, so stored state never shares memory with callers
func cloneSession(session *model.GameSession) model.GameSession {
	copied := *session
	copied.Players = slices.Clone(session.Players)
	copied.InkSpots = slices.Clone(session.InkSpots)
	return copied
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.GameSessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := cloneSession(&session)
	return &copied, nil
}

func (s *Storage) UpdateSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return model.ErrSessionNotFound
	}
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

// UpdateSessionAndPlayers commits a session update and the given player
// records in one critical section. Every record is checked for existence
// before anything is written, so a failed commit leaves the store untouched.
func (s *Storage) UpdateSessionAndPlayers(ctx context.Context, session *model.GameSession, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return model.ErrSessionNotFound
	}
	for _, p := range players {
		if _, ok := s.players[p.ID]; !ok {
			return model.ErrPlayerNotFound
		}
	}
	s.sessions[session.ID] = cloneSession(session)
	for _, p := range players {
		s.players[p.ID] = *p
	}
	return nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.GameSessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) ListActiveSessions(ctx context.Context) ([]*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []*model.GameSession
	for _, session := range s.sessions {
		if session.Status == model.StatusActive {
			copied := cloneSession(&session)
			active = append(active, &copied)
		}
	}
	return active, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = *player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &player, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		return model.ErrPlayerNotFound
	}
	s.players[player.ID] = *player
	return nil
}

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, id model.PlayerID) (*model.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return &profile, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.PlayerAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.PlayerID] = *account
	s.usernameIndex[account.Username] = account.PlayerID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, playerID model.PlayerID) (*model.PlayerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[playerID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return &account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.PlayerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	account, ok := s.accounts[playerID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return &account, nil
}
