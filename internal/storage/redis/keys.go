package redis

import (
	"fmt"

	"github.com/inkfield/inkfield/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "inkfield"

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.GameSessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// activeSessionsKey returns the Redis key for the SET of active session keys
func activeSessionsKey() string {
	return fmt.Sprintf("%s:idx:active_sessions", keyPrefix)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// profileKey returns the Redis key for a PlayerProfile
func profileKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, id)
}

// accountKey returns the Redis key for a PlayerAccount
func accountKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}
