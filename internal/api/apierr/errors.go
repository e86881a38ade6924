package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/services/auth"
	"github.com/inkfield/inkfield/internal/services/session"
	"github.com/inkfield/inkfield/internal/services/shooting"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeProfileNotFound    = "PROFILE_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeSpotNotFound       = "SPOT_NOT_FOUND"
	CodeNoPlayers          = "NO_PLAYERS"
	CodeInvalidPlayerCount = "INVALID_PLAYER_COUNT"
	CodeDuplicateName      = "DUPLICATE_NAME"
	CodeDuplicateColor     = "DUPLICATE_COLOR"
	CodeInvalidName        = "INVALID_NAME"
	CodeInvalidColor       = "INVALID_COLOR"
	CodeInvalidPosition    = "INVALID_POSITION"
	CodeInvalidSize        = "INVALID_SIZE"
	CodeInvalidDuration    = "INVALID_DURATION"
	CodePositionOutside    = "POSITION_OUTSIDE_FIELD"
	CodePlayerNotInGame    = "PLAYER_NOT_IN_GAME"
	CodePlayerStunned      = "PLAYER_STUNNED"
	CodeGameNotActive      = "GAME_NOT_ACTIVE"
	CodeGameNotPlayable    = "GAME_NOT_PLAYABLE"
	CodeGameNotFinished    = "GAME_NOT_FINISHED"
	CodeGameAlreadyEnded   = "GAME_ALREADY_ENDED"
	CodeGameTimeExpired    = "GAME_TIME_EXPIRED"
	CodeSpotLimitReached   = "SPOT_LIMIT_REACHED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Validation errors carry their own detail
	var (
		nameErr     *model.InvalidNameError
		colorErr    *model.InvalidColorError
		positionErr *model.InvalidPositionError
		sizeErr     *model.InvalidSizeError
		durationErr *model.InvalidDurationError
		countErr    *model.InvalidPlayerCountError
		limitErr    *shooting.SpotLimitError
	)
	switch {
	case errors.As(err, &nameErr):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, err.Error()}}
	case errors.As(err, &colorErr):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidColor, err.Error()}}
	case errors.As(err, &positionErr):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, err.Error()}}
	case errors.As(err, &sizeErr):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSize, err.Error()}}
	case errors.As(err, &durationErr):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDuration, err.Error()}}
	case errors.As(err, &countErr):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerCount, err.Error()}}
	case errors.As(err, &limitErr):
		return &httpError{http.StatusConflict, APIError{CodeSpotLimitReached, err.Error()}}
	}

	switch {
	// Map model errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrProfileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProfileNotFound, "Player profile not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Game session not found"}}
	case errors.Is(err, model.ErrInkSpotNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSpotNotFound, "Ink spot not found"}}

	// Map session lifecycle errors
	case errors.Is(err, session.ErrNoPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeNoPlayers, "At least one player is required"}}
	case errors.Is(err, session.ErrDuplicateName):
		return &httpError{http.StatusBadRequest, APIError{CodeDuplicateName, "Player names must be unique"}}
	case errors.Is(err, session.ErrDuplicateColor):
		return &httpError{http.StatusBadRequest, APIError{CodeDuplicateColor, "Player colors must be unique"}}
	case errors.Is(err, session.ErrPositionOutside), errors.Is(err, shooting.ErrPositionOutside):
		return &httpError{http.StatusBadRequest, APIError{CodePositionOutside, "Position is outside the playing field"}}
	case errors.Is(err, session.ErrPlayerNotInGame), errors.Is(err, shooting.ErrPlayerNotInGame):
		return &httpError{http.StatusForbidden, APIError{CodePlayerNotInGame, "Player is not part of this game"}}
	case errors.Is(err, session.ErrGameNotPlayable):
		return &httpError{http.StatusConflict, APIError{CodeGameNotPlayable, "Game is not in a playable state"}}
	case errors.Is(err, session.ErrGameNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameNotFinished, "Game has not finished"}}
	case errors.Is(err, session.ErrGameAlreadyEnded):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyEnded, "Game has already ended"}}

	// Map shooting errors
	case errors.Is(err, shooting.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is not active"}}
	case errors.Is(err, shooting.ErrGameTimeExpired):
		return &httpError{http.StatusConflict, APIError{CodeGameTimeExpired, "Game time has expired"}}
	case errors.Is(err, shooting.ErrPlayerStunned):
		return &httpError{http.StatusForbidden, APIError{CodePlayerStunned, "Player is stunned and cannot shoot"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
