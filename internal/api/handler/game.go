package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inkfield/inkfield/internal/api/request"
	"github.com/inkfield/inkfield/internal/api/response"
	"github.com/inkfield/inkfield/internal/dependencies/clock"
	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/services/session"
	"github.com/inkfield/inkfield/internal/services/shooting"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	sessionController  session.ControllerInterface
	shootingController shooting.ControllerInterface
	clock              clock.Clock
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	sessionController session.ControllerInterface,
	shootingController shooting.ControllerInterface,
	clock clock.Clock,
) *GameHandler {
	return &GameHandler{
		sessionController:  sessionController,
		shootingController: shootingController,
		clock:              clock,
	}
}

func sessionIDVar(r *http.Request) model.GameSessionID {
	return model.GameSessionID(mux.Vars(r)["id"])
}

func toModelPosition(p request.Position) model.Position3D {
	return model.Position3D{X: p.X, Y: p.Y, Z: p.Z}
}

// Start handles POST /api/v1/games
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	params := make([]session.NewPlayerParams, len(req.Players))
	for i, p := range req.Players {
		params[i] = session.NewPlayerParams{
			Name:     p.Name,
			Color:    model.PlayerColor(p.Color),
			Position: toModelPosition(p.Position),
		}
	}
	duration := time.Duration(req.DurationSeconds) * time.Second

	g, err := h.sessionController.StartGame(r.Context(), params, duration)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameSessionFromModel(g, h.clock.Now()))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.sessionController.GetSession(r.Context(), sessionIDVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionFromModel(g, h.clock.Now()))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionController.ListActiveSessions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	now := h.clock.Now()
	resp := response.GameSessionList{Sessions: make([]response.GameSession, len(sessions))}
	for i, g := range sessions {
		resp.Sessions[i] = response.GameSessionFromModel(g, now)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Shoot handles POST /api/v1/games/{id}/shots
func (h *GameHandler) Shoot(w http.ResponseWriter, r *http.Request) {
	var req request.ShootInkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	result, err := h.shootingController.ShootInk(
		r.Context(),
		sessionIDVar(r),
		model.PlayerID(req.PlayerID),
		toModelPosition(req.Position),
		req.Size,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ShootResultFromModel(result, h.clock.Now()))
}

// Move handles POST /api/v1/games/{id}/position
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MovePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	g, err := h.sessionController.UpdatePlayerPosition(
		r.Context(),
		sessionIDVar(r),
		model.PlayerID(req.PlayerID),
		toModelPosition(req.Position),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionFromModel(g, h.clock.Now()))
}

// End handles POST /api/v1/games/{id}/end
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	g, err := h.sessionController.EndGame(r.Context(), sessionIDVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionFromModel(g, h.clock.Now()))
}

// Cancel handles DELETE /api/v1/games/{id}
func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessionController.CancelGame(r.Context(), sessionIDVar(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Results handles GET /api/v1/games/{id}/results
func (h *GameHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.sessionController.GameResults(r.Context(), sessionIDVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.GameResultList{Results: make([]response.GameResult, len(results))}
	for i, res := range results {
		resp.Results[i] = response.GameResultFromModel(res)
	}
	response.JSON(w, http.StatusOK, resp)
}
