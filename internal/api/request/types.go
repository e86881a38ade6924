package request

// Position is a 3D coordinate in request bodies
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CreateGuestRequest is the request body for creating a guest profile
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StartGamePlayer describes one participant in a start-game request
type StartGamePlayer struct {
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Position Position `json:"position"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	Players         []StartGamePlayer `json:"players"`
	DurationSeconds int               `json:"duration_seconds"`
}

// ShootInkRequest is the request body for shooting ink
type ShootInkRequest struct {
	PlayerID string   `json:"player_id"`
	Position Position `json:"position"`
	Size     float64  `json:"size"`
}

// MovePlayerRequest is the request body for updating a player's position
type MovePlayerRequest struct {
	PlayerID string   `json:"player_id"`
	Position Position `json:"position"`
}
