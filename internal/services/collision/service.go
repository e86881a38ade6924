// Package collision is the geometric engine of the game: player/ink
// collision, ink/ink overlap, containment, and stun effect calculation.
// Every operation is pure; the service carries tuning only.
package collision

import (
	"math"
	"time"

	"github.com/inkfield/inkfield/internal/model"
)

// Config holds collision tuning constants
type Config struct {
	// PlayerCollisionRadius is the distance below which a player
	// contacts an opposing ink spot
	PlayerCollisionRadius float64

	// Stun effect bounds, scaled by spot size over [MinInkSpotSize, MaxInkSpotSize]
	MinStunDuration time.Duration
	MaxStunDuration time.Duration

	MinSpeedReduction float64
	MaxSpeedReduction float64
}

// DefaultConfig returns the standard collision tuning
func DefaultConfig() Config {
	return Config{
		PlayerCollisionRadius: 0.5,
		MinStunDuration:       1 * time.Second,
		MaxStunDuration:       5 * time.Second,
		MinSpeedReduction:     0.2,
		MaxSpeedReduction:     0.8,
	}
}

// Service performs collision and overlap detection
type Service struct {
	cfg Config
}

// New creates a collision service with the given tuning
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// CollisionResult describes a player/ink-spot collision check
type CollisionResult struct {
	HasCollision bool
	Distance     float64

	// CollisionPoint is set only when a collision occurred: the point on
	// the spot's edge along the line from spot center to player
	CollisionPoint *model.Position3D
}

// OverlapResult describes an ink-spot/ink-spot overlap check
type OverlapResult struct {
	HasOverlap  bool
	OverlapArea float64

	// MergedSize is set only when both spots share a color: the radius of
	// a circle whose area equals the union of the two spot circles.
	// Monotone in both radii and in the amount of overlap, and greater
	// than either input radius for any partial overlap. Callers cap it at
	// model.MaxInkSpotSize.
	MergedSize *float64
}

// SpotOverlap pairs a spot with its overlap result against a target
type SpotOverlap struct {
	Spot    model.InkSpot
	Overlap OverlapResult
}

// CollisionEffect is the gameplay consequence of touching opposing ink
type CollisionEffect struct {
	IsStunned      bool
	StunDuration   time.Duration
	SpeedReduction float64
}

// CheckPlayerInkCollision tests a single player against a single spot.
// A player never collides with their own ink, and an inactive (already
// stunned) player collides with nothing; both exclusions take precedence
// over the distance test.
func (s *Service) CheckPlayerInkCollision(player model.Player, spot model.InkSpot) CollisionResult {
	if spot.OwnerID == player.ID || !player.IsActive {
		return CollisionResult{}
	}

	distance := player.Position.DistanceTo(spot.Position)
	if distance >= s.cfg.PlayerCollisionRadius {
		return CollisionResult{Distance: distance}
	}

	point := edgePoint(spot, player.Position, distance)
	return CollisionResult{
		HasCollision:   true,
		Distance:       distance,
		CollisionPoint: &point,
	}
}

// edgePoint returns the point on the spot's edge along the spot->target line.
// With coincident centers the direction is undefined; the spot center is used.
func edgePoint(spot model.InkSpot, target model.Position3D, distance float64) model.Position3D {
	if distance == 0 {
		return spot.Position
	}
	scale := spot.Size / distance
	return model.Position3D{
		X: spot.Position.X + (target.X-spot.Position.X)*scale,
		Y: spot.Position.Y + (target.Y-spot.Position.Y)*scale,
		Z: spot.Position.Z + (target.Z-spot.Position.Z)*scale,
	}
}

// CheckPlayerInkCollisions filters spots down to those the player collides
// with, preserving input order
func (s *Service) CheckPlayerInkCollisions(player model.Player, spots []model.InkSpot) []model.InkSpot {
	var hits []model.InkSpot
	for _, spot := range spots {
		if s.CheckPlayerInkCollision(player, spot).HasCollision {
			hits = append(hits, spot)
		}
	}
	return hits
}

// CheckInkSpotOverlap tests two spots for circle intersection.
// Overlap holds when the center distance is strictly less than the sum of
// the radii. The overlap area is the circle-circle lens area; when one
// circle fully contains the other the smaller circle's whole area is used.
func (s *Service) CheckInkSpotOverlap(a, b model.InkSpot) OverlapResult {
	distance := a.Position.DistanceTo(b.Position)
	if distance >= a.Size+b.Size {
		return OverlapResult{}
	}

	area := lensArea(distance, a.Size, b.Size)

	result := OverlapResult{
		HasOverlap:  true,
		OverlapArea: area,
	}

	if a.Color == b.Color {
		union := a.Area() + b.Area() - area
		merged := math.Sqrt(union / math.Pi)
		result.MergedSize = &merged
	}

	return result
}

// lensArea computes the intersection area of two circles with center
// distance d and radii r1, r2. Callers guarantee d < r1+r2.
func lensArea(d, r1, r2 float64) float64 {
	small := math.Min(r1, r2)
	if d <= math.Abs(r1-r2) {
		// Full containment: the smaller circle's whole area
		return math.Pi * small * small
	}

	// Standard circle-circle lens formula
	d2 := d * d
	a1 := r1 * r1 * math.Acos((d2+r1*r1-r2*r2)/(2*d*r1))
	a2 := r2 * r2 * math.Acos((d2+r2*r2-r1*r1)/(2*d*r2))
	k := 0.5 * math.Sqrt((-d+r1+r2)*(d+r1-r2)*(d-r1+r2)*(d+r1+r2))
	return a1 + a2 - k
}

// FindOverlappingInkSpots tests the target against every other spot and
// returns only the overlapping ones, in input order
func (s *Service) FindOverlappingInkSpots(target model.InkSpot, spots []model.InkSpot) []SpotOverlap {
	var overlaps []SpotOverlap
	for _, spot := range spots {
		if spot.ID == target.ID {
			continue
		}
		result := s.CheckInkSpotOverlap(target, spot)
		if result.HasOverlap {
			overlaps = append(overlaps, SpotOverlap{Spot: spot, Overlap: result})
		}
	}
	return overlaps
}

// IsPositionInInkSpot reports whether the position lies strictly inside the spot
func (s *Service) IsPositionInInkSpot(pos model.Position3D, spot model.InkSpot) bool {
	return pos.DistanceTo(spot.Position) < spot.Size
}

// FindInkSpotsContaining returns the spots containing the position, in input order
func (s *Service) FindInkSpotsContaining(pos model.Position3D, spots []model.InkSpot) []model.InkSpot {
	var containing []model.InkSpot
	for _, spot := range spots {
		if s.IsPositionInInkSpot(pos, spot) {
			containing = append(containing, spot)
		}
	}
	return containing
}

// CalculatePlayerCollisionEffect derives the stun effect of a collision.
// Both stun duration and speed reduction scale linearly with spot size
// between the configured bounds.
func (s *Service) CalculatePlayerCollisionEffect(player model.Player, spot model.InkSpot) CollisionEffect {
	if !s.CheckPlayerInkCollision(player, spot).HasCollision {
		return CollisionEffect{}
	}

	t := (spot.Size - model.MinInkSpotSize) / (model.MaxInkSpotSize - model.MinInkSpotSize)
	t = math.Max(0, math.Min(1, t))

	stunRange := float64(s.cfg.MaxStunDuration - s.cfg.MinStunDuration)
	reductionRange := s.cfg.MaxSpeedReduction - s.cfg.MinSpeedReduction

	return CollisionEffect{
		IsStunned:      true,
		StunDuration:   s.cfg.MinStunDuration + time.Duration(t*stunRange),
		SpeedReduction: s.cfg.MinSpeedReduction + t*reductionRange,
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	CheckPlayerInkCollision(player model.Player, spot model.InkSpot) CollisionResult
	CheckPlayerInkCollisions(player model.Player, spots []model.InkSpot) []model.InkSpot
	CheckInkSpotOverlap(a, b model.InkSpot) OverlapResult
	FindOverlappingInkSpots(target model.InkSpot, spots []model.InkSpot) []SpotOverlap
	IsPositionInInkSpot(pos model.Position3D, spot model.InkSpot) bool
	FindInkSpotsContaining(pos model.Position3D, spots []model.InkSpot) []model.InkSpot
	CalculatePlayerCollisionEffect(player model.Player, spot model.InkSpot) CollisionEffect
}

var _ ServiceInterface = (*Service)(nil)
