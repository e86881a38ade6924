package response

import (
	"time"

	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/services/auth"
	"github.com/inkfield/inkfield/internal/services/shooting"
)

// Position is a 3D coordinate in API responses
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PositionFromModel converts a model.Position3D to a response Position
func PositionFromModel(p model.Position3D) Position {
	return Position{X: p.X, Y: p.Y, Z: p.Z}
}

// Profile represents a player profile in API responses
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// ProfileFromModel converts a model.PlayerProfile to a response Profile
func ProfileFromModel(p *model.PlayerProfile) Profile {
	return Profile{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Profile      Profile `json:"profile"`
	SessionToken string  `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Profile:      ProfileFromModel(&s.Profile),
		SessionToken: s.Token,
	}
}

// Player represents a game participant
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Position Position `json:"position"`
	IsActive bool     `json:"is_active"`
	Score    float64  `json:"score"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Name:     p.Name,
		Color:    string(p.Color),
		Position: PositionFromModel(p.Position),
		IsActive: p.IsActive,
		Score:    p.Score.Value,
	}
}

// InkSpot represents an ink spot on the field
type InkSpot struct {
	ID        string    `json:"id"`
	Position  Position  `json:"position"`
	Color     string    `json:"color"`
	Size      float64   `json:"size"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// InkSpotFromModel converts a model.InkSpot to a response InkSpot
func InkSpotFromModel(s model.InkSpot) InkSpot {
	return InkSpot{
		ID:        string(s.ID),
		Position:  PositionFromModel(s.Position),
		Color:     string(s.Color),
		Size:      s.Size,
		OwnerID:   string(s.OwnerID),
		CreatedAt: s.CreatedAt,
	}
}

// GameSession represents a game session
type GameSession struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	Players          []Player   `json:"players"`
	InkSpots         []InkSpot  `json:"ink_spots"`
	DurationSeconds  float64    `json:"duration_seconds"`
	RemainingSeconds float64    `json:"remaining_seconds"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
}

// GameSessionFromModel converts a model.GameSession to a response GameSession
func GameSessionFromModel(g *model.GameSession, now time.Time) GameSession {
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerFromModel(p)
	}

	spots := make([]InkSpot, len(g.InkSpots))
	for i, s := range g.InkSpots {
		spots[i] = InkSpotFromModel(s)
	}

	return GameSession{
		ID:               string(g.ID),
		Status:           string(g.Status),
		Players:          players,
		InkSpots:         spots,
		DurationSeconds:  g.Duration.Seconds(),
		RemainingSeconds: g.RemainingTime(now).Seconds(),
		StartedAt:        g.StartedAt,
		EndedAt:          g.EndedAt,
	}
}

// GameSessionList is the response for listing active sessions
type GameSessionList struct {
	Sessions []GameSession `json:"sessions"`
}

// StunnedPlayer describes a stun applied by a shot
type StunnedPlayer struct {
	PlayerID            string  `json:"player_id"`
	StunDurationSeconds float64 `json:"stun_duration_seconds"`
	SpeedReduction      float64 `json:"speed_reduction"`
}

// MergeOutcome describes a same-color merge triggered by a shot
type MergeOutcome struct {
	RemovedIDs []string `json:"removed_ids"`
	Merged     InkSpot  `json:"merged"`
}

// ShrinkOutcome describes an opposing spot shrunk by a shot
type ShrinkOutcome struct {
	SpotID  string  `json:"spot_id"`
	NewSize float64 `json:"new_size"`
}

// ShootResult is the response after shooting ink
type ShootResult struct {
	Session    GameSession     `json:"session"`
	Spot       InkSpot         `json:"spot"`
	Stunned    []StunnedPlayer `json:"stunned,omitempty"`
	Merged     []MergeOutcome  `json:"merged,omitempty"`
	Shrunk     []ShrinkOutcome `json:"shrunk,omitempty"`
	RemovedIDs []string        `json:"removed_ids,omitempty"`
}

// ShootResultFromModel converts a shooting.Result to a response ShootResult
func ShootResultFromModel(r *shooting.Result, now time.Time) ShootResult {
	result := ShootResult{
		Session: GameSessionFromModel(r.Session, now),
		Spot:    InkSpotFromModel(r.Spot),
	}

	for _, s := range r.Stunned {
		result.Stunned = append(result.Stunned, StunnedPlayer{
			PlayerID:            string(s.PlayerID),
			StunDurationSeconds: s.Effect.StunDuration.Seconds(),
			SpeedReduction:      s.Effect.SpeedReduction,
		})
	}
	for _, m := range r.Merged {
		removed := make([]string, len(m.RemovedIDs))
		for i, id := range m.RemovedIDs {
			removed[i] = string(id)
		}
		result.Merged = append(result.Merged, MergeOutcome{
			RemovedIDs: removed,
			Merged:     InkSpotFromModel(m.Merged),
		})
	}
	for _, s := range r.Shrunk {
		result.Shrunk = append(result.Shrunk, ShrinkOutcome{
			SpotID:  string(s.SpotID),
			NewSize: s.NewSize,
		})
	}
	for _, rm := range r.Removed {
		result.RemovedIDs = append(result.RemovedIDs, string(rm.SpotID))
	}

	return result
}

// GameResult represents one player's final ranked result
type GameResult struct {
	PlayerID       string  `json:"player_id"`
	PlayerName     string  `json:"player_name"`
	Color          string  `json:"color"`
	Score          float64 `json:"score"`
	Rank           int     `json:"rank"`
	SpotCount      int     `json:"spot_count"`
	AreaEfficiency float64 `json:"area_efficiency"`
}

// GameResultFromModel converts a model.GameResult
func GameResultFromModel(r model.GameResult) GameResult {
	return GameResult{
		PlayerID:       string(r.PlayerID),
		PlayerName:     r.PlayerName,
		Color:          string(r.Color),
		Score:          r.Score.Value,
		Rank:           r.Rank,
		SpotCount:      r.SpotCount,
		AreaEfficiency: r.AreaEfficiency,
	}
}

// GameResultList is the response for final game results
type GameResultList struct {
	Results []GameResult `json:"results"`
}

// Event is a session delta event streamed to peers
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	PlayerID  string    `json:"player_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// EventFromModel converts a model.Event to a response Event
func EventFromModel(e model.Event) Event {
	return Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		SessionID: string(e.SessionID),
		PlayerID:  string(e.PlayerID),
		Payload:   e.Payload,
	}
}
