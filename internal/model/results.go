package model

// GameResult is one player's entry in a score/ranking snapshot.
// Equal scores share a rank (competition ranking).
type GameResult struct {
	PlayerID   PlayerID
	PlayerName string
	Color      PlayerColor
	Score      GameScore
	Rank       int
	SpotCount  int

	// AreaEfficiency is the player's average spot area relative to the
	// maximum possible spot area, clamped to 1.0
	AreaEfficiency float64
}
