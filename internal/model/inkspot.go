package model

import (
	"math"
	"time"
)

// InkSpotID uniquely identifies an ink spot
type InkSpotID string

// Ink spot size bounds (radius in field units)
const (
	MinInkSpotSize = 0.1
	MaxInkSpotSize = 2.0
)

// InkSpot is a colored circular territory marker
type InkSpot struct {
	ID        InkSpotID
	Position  Position3D
	Color     PlayerColor
	Size      float64
	OwnerID   PlayerID
	CreatedAt time.Time
}

// ValidateInkSpotSize checks that size is finite and within [MinInkSpotSize, MaxInkSpotSize]
func ValidateInkSpotSize(size float64) error {
	if math.IsNaN(size) || size < MinInkSpotSize || size > MaxInkSpotSize {
		return &InvalidSizeError{Size: size}
	}
	return nil
}

// NewInkSpot creates an ink spot, validating size, color and position
func NewInkSpot(id InkSpotID, position Position3D, color PlayerColor, size float64, ownerID PlayerID, createdAt time.Time) (InkSpot, error) {
	if err := ValidateInkSpotSize(size); err != nil {
		return InkSpot{}, err
	}
	if !color.IsValid() {
		return InkSpot{}, &InvalidColorError{Color: color}
	}
	if !position.IsValid() {
		return InkSpot{}, &InvalidPositionError{Position: position}
	}
	return InkSpot{
		ID:        id,
		Position:  position,
		Color:     color,
		Size:      size,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
	}, nil
}

// Area returns the painted area of the spot (pi * size^2)
func (s InkSpot) Area() float64 {
	return math.Pi * s.Size * s.Size
}

// Age returns the time elapsed since the spot was created
func (s InkSpot) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}

// Overlaps reports whether the two spot circles intersect:
// center distance strictly less than the sum of the radii
func (s InkSpot) Overlaps(other InkSpot) bool {
	return s.Position.DistanceTo(other.Position) < s.Size+other.Size
}

// WithSize returns a copy of the spot with a new size.
// Identity, position and creation time are preserved.
func (s InkSpot) WithSize(size float64) InkSpot {
	s.Size = size
	return s
}

// Equals reports identity equality by ID
func (s InkSpot) Equals(other InkSpot) bool {
	return s.ID == other.ID
}
