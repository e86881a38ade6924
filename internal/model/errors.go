package model

import (
	"errors"
	"fmt"
	"time"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrProfileNotFound = errors.New("player profile not found")

	// Session errors
	ErrSessionNotFound = errors.New("game session not found")

	// Ink spot errors
	ErrInkSpotNotFound = errors.New("ink spot not found")
)

// InvalidScoreError reports a score value outside [0, 100]
type InvalidScoreError struct {
	Value float64
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("score %v is outside [0, %v]", e.Value, MaxScore)
}

// InvalidNameError reports a player name failing the length rule
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("player name %q must be 1-%d characters after trimming", e.Name, MaxPlayerNameLength)
}

// InvalidColorError reports a color outside the closed set
type InvalidColorError struct {
	Color PlayerColor
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid player color %q", string(e.Color))
}

// InvalidPositionError reports a position with NaN or infinite coordinates
type InvalidPositionError struct {
	Position Position3D
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("position (%v, %v, %v) has non-finite coordinates", e.Position.X, e.Position.Y, e.Position.Z)
}

// InvalidSizeError reports an ink spot size outside [MinInkSpotSize, MaxInkSpotSize]
type InvalidSizeError struct {
	Size float64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("ink spot size %v is outside [%v, %v]", e.Size, MinInkSpotSize, MaxInkSpotSize)
}

// InvalidDurationError reports a session duration outside [MinGameDuration, MaxGameDuration]
type InvalidDurationError struct {
	Duration time.Duration
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("game duration %s is outside [%s, %s]", e.Duration, MinGameDuration, MaxGameDuration)
}

// InvalidPlayerCountError reports a session with the wrong number of players
type InvalidPlayerCountError struct {
	Count int
}

func (e *InvalidPlayerCountError) Error() string {
	return fmt.Sprintf("game session requires exactly %d players, got %d", SessionPlayerCount, e.Count)
}
