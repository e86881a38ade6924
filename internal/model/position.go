package model

import "math"

// PositionTolerance is the per-axis tolerance for position equality.
// Distance calculations are exact; only equality is fuzzy.
const PositionTolerance = 0.01

// Position3D is a point in the AR field's coordinate space
type Position3D struct {
	X float64
	Y float64
	Z float64
}

// Equals reports whether both positions are the same within tolerance on every axis
func (p Position3D) Equals(other Position3D) bool {
	return math.Abs(p.X-other.X) < PositionTolerance &&
		math.Abs(p.Y-other.Y) < PositionTolerance &&
		math.Abs(p.Z-other.Z) < PositionTolerance
}

// DistanceTo returns the exact Euclidean distance to another position
func (p Position3D) DistanceTo(other Position3D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IsValid reports whether no coordinate is NaN or infinite
func (p Position3D) IsValid() bool {
	for _, c := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Midpoint returns the arithmetic mean of two positions
func (p Position3D) Midpoint(other Position3D) Position3D {
	return Position3D{
		X: (p.X + other.X) / 2,
		Y: (p.Y + other.Y) / 2,
		Z: (p.Z + other.Z) / 2,
	}
}
