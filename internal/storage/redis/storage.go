package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	return s.writeSession(ctx, session)
}

func (s *Storage) UpdateSession(ctx context.Context, session *model.GameSession) error {
	exists, err := s.client.Exists(ctx, sessionKey(session.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrSessionNotFound
	}
	return s.writeSession(ctx, session)
}

// writeSession stores the session and keeps the active-session index in sync
func (s *Storage) writeSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	s.queueSessionWrite(ctx, pipe, session, data)
	_, err = pipe.Exec(ctx)
	return err
}

// queueSessionWrite adds the session write and its active-session index
// update to the pipeline
func (s *Storage) queueSessionWrite(ctx context.Context, pipe redis.Pipeliner, session *model.GameSession, data []byte) {
	key := sessionKey(session.ID)
	pipe.Set(ctx, key, data, s.cfg.SessionTTL)
	if session.Status == model.StatusActive {
		pipe.SAdd(ctx, activeSessionsKey(), key)
	} else {
		pipe.SRem(ctx, activeSessionsKey(), key)
	}
}

// UpdateSessionAndPlayers commits a session update and the given player
// records in one MULTI/EXEC transaction: either every write lands or none
// does.
func (s *Storage) UpdateSessionAndPlayers(ctx context.Context, session *model.GameSession, players []*model.Player) error {
	keys := make([]string, 0, len(players)+1)
	keys = append(keys, sessionKey(session.ID))
	for _, p := range players {
		keys = append(keys, playerKey(p.ID))
	}
	exists, err := s.client.Exists(ctx, keys...).Result()
	if err != nil {
		return err
	}
	if exists != int64(len(keys)) {
		sessionExists, err := s.client.Exists(ctx, sessionKey(session.ID)).Result()
		if err != nil {
			return err
		}
		if sessionExists == 0 {
			return model.ErrSessionNotFound
		}
		return model.ErrPlayerNotFound
	}

	sessionData, err := json.Marshal(session)
	if err != nil {
		return err
	}
	playerData := make([][]byte, len(players))
	for i, p := range players {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		playerData[i] = data
	}

	pipe := s.client.TxPipeline()
	s.queueSessionWrite(ctx, pipe, session, sessionData)
	for i, p := range players {
		pipe.Set(ctx, playerKey(p.ID), playerData[i], s.cfg.PlayerTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.GameSessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.GameSessionID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, activeSessionsKey(), sessionKey(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListActiveSessions(ctx context.Context) ([]*model.GameSession, error) {
	keys, err := s.client.SMembers(ctx, activeSessionsKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*model.GameSession{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.GameSession, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Session may have expired
		}
		var session model.GameSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue // Skip invalid data
		}
		if session.Status != model.StatusActive {
			continue
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	exists, err := s.client.Exists(ctx, playerKey(player.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}
	return s.SavePlayer(ctx, player)
}

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.PlayerProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	// Guest profiles expire; registered ones persist
	var ttl time.Duration
	if profile.IsGuest {
		ttl = s.cfg.GuestProfileTTL
	}

	return s.client.Set(ctx, profileKey(profile.ID), data, ttl).Err()
}

func (s *Storage) GetProfile(ctx context.Context, id model.PlayerID) (*model.PlayerProfile, error) {
	data, err := s.client.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	var profile model.PlayerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.PlayerAccount) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, accountKey(account.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(account.Username), string(account.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, playerID model.PlayerID) (*model.PlayerAccount, error) {
	data, err := s.client.Get(ctx, accountKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	var account model.PlayerAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.PlayerAccount, error) {
	playerID, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.PlayerID(playerID))
}
