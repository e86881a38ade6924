package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// PlayerID uniquely identifies a player across the system.
// IDs are 32 lowercase hex characters (128 bits), never reused.
type PlayerID string

// MaxPlayerNameLength is the maximum visible length of a player name after trimming
const MaxPlayerNameLength = 50

// ValidatePlayerName checks the name rule: 1-50 visible characters after trimming
func ValidatePlayerName(name string) error {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	if n < 1 || n > MaxPlayerNameLength {
		return &InvalidNameError{Name: name}
	}
	return nil
}

// Player is a game participant. Player values are immutable: mutators
// return a new value and the ID never changes across a player's lifetime.
type Player struct {
	ID       PlayerID
	Name     string
	Color    PlayerColor
	Position Position3D
	IsActive bool
	Score    GameScore
}

// NewPlayer creates a player, validating name, color and position
func NewPlayer(id PlayerID, name string, color PlayerColor, position Position3D) (Player, error) {
	if err := ValidatePlayerName(name); err != nil {
		return Player{}, err
	}
	if !color.IsValid() {
		return Player{}, &InvalidColorError{Color: color}
	}
	if !position.IsValid() {
		return Player{}, &InvalidPositionError{Position: position}
	}
	return Player{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Color:    color,
		Position: position,
		IsActive: true,
		Score:    ZeroScore(),
	}, nil
}

// UpdatePosition returns a copy of the player at the new position
func (p Player) UpdatePosition(position Position3D) Player {
	p.Position = position
	return p
}

// Deactivate returns a copy of the player marked inactive (stunned)
func (p Player) Deactivate() Player {
	p.IsActive = false
	return p
}

// Activate returns a copy of the player marked active
func (p Player) Activate() Player {
	p.IsActive = true
	return p
}

// UpdateScore returns a copy of the player with the new score
func (p Player) UpdateScore(score GameScore) Player {
	p.Score = score
	return p
}

// Equals reports identity equality: two values with the same ID are the same player
func (p Player) Equals(other Player) bool {
	return p.ID == other.ID
}

// PlayerProfile is a long-lived player identity record, stored outside
// any single game session.
type PlayerProfile struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool
	CreatedAt   time.Time
}

// PlayerAccount extends a profile with authentication data.
// Stored separately so the password hash never travels with the profile.
type PlayerAccount struct {
	PlayerID     PlayerID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
