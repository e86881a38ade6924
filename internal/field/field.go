// Package field abstracts the playing field's geometry. The concrete AR
// plane detection lives outside this core; game rules only need the
// field's scalar area and a bounds check.
package field

import "github.com/inkfield/inkfield/internal/model"

// Provider supplies field geometry to rule validation and scoring
type Provider interface {
	// Size returns the scalar area of the field
	Size() float64

	// Contains reports whether a position lies within the field
	Contains(pos model.Position3D) bool
}

// Bounds is an axis-aligned box. X/Z span the floor plane, Y is height.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// DefaultBounds returns a 10x10 unit field with a 4 unit height band
func DefaultBounds() Bounds {
	return Bounds{
		MinX: -5, MaxX: 5,
		MinY: -2, MaxY: 2,
		MinZ: -5, MaxZ: 5,
	}
}

// BoundedField is a static rectangular field
type BoundedField struct {
	bounds Bounds
}

// Ensure BoundedField implements the interface
var _ Provider = (*BoundedField)(nil)

// NewBounded creates a field with the given bounds
func NewBounded(bounds Bounds) *BoundedField {
	return &BoundedField{bounds: bounds}
}

// Size returns the floor area of the field
func (f *BoundedField) Size() float64 {
	return (f.bounds.MaxX - f.bounds.MinX) * (f.bounds.MaxZ - f.bounds.MinZ)
}

// Contains reports whether the position is finite and inside the bounds
func (f *BoundedField) Contains(pos model.Position3D) bool {
	if !pos.IsValid() {
		return false
	}
	return pos.X >= f.bounds.MinX && pos.X <= f.bounds.MaxX &&
		pos.Y >= f.bounds.MinY && pos.Y <= f.bounds.MaxY &&
		pos.Z >= f.bounds.MinZ && pos.Z <= f.bounds.MaxZ
}
