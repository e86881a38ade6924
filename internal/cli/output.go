package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Profile:
		o.printProfile(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case GameList:
		o.printGameList(v)
	case ShootResult:
		o.printShootResult(v)
	case ResultList:
		o.printResultList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Position response type (matches API)
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Profile response type
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines profile and token
type AuthResult struct {
	Profile      Profile `json:"profile"`
	SessionToken string  `json:"session_token"`
}

// GamePlayer response type
type GamePlayer struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Position Position `json:"position"`
	IsActive bool     `json:"is_active"`
	Score    float64  `json:"score"`
}

// InkSpot response type
type InkSpot struct {
	ID        string    `json:"id"`
	Position  Position  `json:"position"`
	Color     string    `json:"color"`
	Size      float64   `json:"size"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Game response type
type Game struct {
	ID               string       `json:"id"`
	Status           string       `json:"status"`
	Players          []GamePlayer `json:"players"`
	InkSpots         []InkSpot    `json:"ink_spots"`
	DurationSeconds  float64      `json:"duration_seconds"`
	RemainingSeconds float64      `json:"remaining_seconds"`
}

// GameList response type
type GameList struct {
	Sessions []Game `json:"sessions"`
}

// StunnedPlayer response type
type StunnedPlayer struct {
	PlayerID            string  `json:"player_id"`
	StunDurationSeconds float64 `json:"stun_duration_seconds"`
	SpeedReduction      float64 `json:"speed_reduction"`
}

// MergeOutcome response type
type MergeOutcome struct {
	RemovedIDs []string `json:"removed_ids"`
	Merged     InkSpot  `json:"merged"`
}

// ShrinkOutcome response type
type ShrinkOutcome struct {
	SpotID  string  `json:"spot_id"`
	NewSize float64 `json:"new_size"`
}

// ShootResult response type
type ShootResult struct {
	Session    Game            `json:"session"`
	Spot       InkSpot         `json:"spot"`
	Stunned    []StunnedPlayer `json:"stunned,omitempty"`
	Merged     []MergeOutcome  `json:"merged,omitempty"`
	Shrunk     []ShrinkOutcome `json:"shrunk,omitempty"`
	RemovedIDs []string        `json:"removed_ids,omitempty"`
}

// GameResult response type
type GameResult struct {
	PlayerID       string  `json:"player_id"`
	PlayerName     string  `json:"player_name"`
	Color          string  `json:"color"`
	Score          float64 `json:"score"`
	Rank           int     `json:"rank"`
	SpotCount      int     `json:"spot_count"`
	AreaEfficiency float64 `json:"area_efficiency"`
}

// ResultList response type
type ResultList struct {
	Results []GameResult `json:"results"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printProfile(p Profile) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printProfile(a.Profile)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Remaining: %.0fs of %.0fs\n", g.RemainingSeconds, g.DurationSeconds)
	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		activeStr := ""
		if !p.IsActive {
			activeStr = " [inactive]"
		}
		fmt.Printf("  - %s (%s) %s at (%.1f, %.1f, %.1f) score %.1f%s\n",
			p.Name, p.ID, p.Color, p.Position.X, p.Position.Y, p.Position.Z, p.Score, activeStr)
	}
	fmt.Printf("Ink spots (%d):\n", len(g.InkSpots))
	for _, s := range g.InkSpots {
		fmt.Printf("  - %s %s size %.2f at (%.1f, %.1f, %.1f)\n",
			s.ID, s.Color, s.Size, s.Position.X, s.Position.Y, s.Position.Z)
	}
}

func (o *Output) printGameList(l GameList) {
	fmt.Printf("Active games (%d):\n", len(l.Sessions))
	for _, g := range l.Sessions {
		fmt.Printf("  - %s: %d players, %d spots, %.0fs remaining\n",
			g.ID, len(g.Players), len(g.InkSpots), g.RemainingSeconds)
	}
}

func (o *Output) printShootResult(r ShootResult) {
	fmt.Printf("Spot: %s %s size %.2f at (%.1f, %.1f, %.1f)\n",
		r.Spot.ID, r.Spot.Color, r.Spot.Size, r.Spot.Position.X, r.Spot.Position.Y, r.Spot.Position.Z)

	for _, s := range r.Stunned {
		fmt.Printf("Stunned %s for %.1fs (speed -%.0f%%)\n",
			s.PlayerID, s.StunDurationSeconds, s.SpeedReduction*100)
	}
	for _, m := range r.Merged {
		fmt.Printf("Merged %d spots into %s (size %.2f)\n",
			len(m.RemovedIDs), m.Merged.ID, m.Merged.Size)
	}
	for _, s := range r.Shrunk {
		fmt.Printf("Shrunk %s to %.2f\n", s.SpotID, s.NewSize)
	}
	for _, id := range r.RemovedIDs {
		fmt.Printf("Removed %s\n", id)
	}
}

func (o *Output) printResultList(l ResultList) {
	fmt.Println("Final results:")
	for _, r := range l.Results {
		fmt.Printf("  %d. %s (%s) - %.1f%% coverage, %d spots, efficiency %.2f\n",
			r.Rank, r.PlayerName, r.Color, r.Score, r.SpotCount, r.AreaEfficiency)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
