package model

// SessionStatus represents the lifecycle phase of a game session.
// Transitions: waiting -> active -> {finished, cancelled}.
// The paused status exists but no transition currently produces it.
type SessionStatus string

const (
	StatusWaiting   SessionStatus = "waiting"
	StatusActive    SessionStatus = "active"
	StatusPaused    SessionStatus = "paused"
	StatusFinished  SessionStatus = "finished"
	StatusCancelled SessionStatus = "cancelled"
)

// CanStart reports whether a session in this status may be started
func (s SessionStatus) CanStart() bool {
	return s == StatusWaiting
}

// IsPlayable reports whether the session is in a state where play can occur or resume
func (s SessionStatus) IsPlayable() bool {
	return s == StatusActive || s == StatusPaused
}

// HasEnded reports whether the session has reached a terminal status
func (s SessionStatus) HasEnded() bool {
	return s == StatusFinished || s == StatusCancelled
}
