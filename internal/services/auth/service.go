// Package auth handles player identity: anonymous guest profiles,
// registered accounts with password login, and bearer-token sessions.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkfield/inkfield/internal/dependencies/clock"
	"github.com/inkfield/inkfield/internal/dependencies/random"
	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	PlayerID  model.PlayerID
	Profile   model.PlayerProfile
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service handles authentication and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// CreateGuestProfile creates an anonymous profile and session
func (s *Service) CreateGuestProfile(ctx context.Context, displayName string) (*Session, error) {
	profile := &model.PlayerProfile{
		ID:          model.PlayerID(s.random.ID()),
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.createSession(profile)
}

// Register creates a registered profile with a password-backed account
func (s *Service) Register(ctx context.Context, username, password, displayName string) (*Session, error) {
	// Check if username exists
	_, err := s.storage.GetAccountByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrProfileNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	profile := &model.PlayerProfile{
		ID:          model.PlayerID(s.random.ID()),
		DisplayName: displayName,
		IsGuest:     false,
		CreatedAt:   now,
	}
	account := &model.PlayerAccount{
		PlayerID:     profile.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.createSession(profile)
}

// Login authenticates a registered account and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.storage.GetProfile(ctx, account.PlayerID)
	if err != nil {
		return nil, err
	}

	return s.createSession(profile)
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetProfile returns the profile for a session token
func (s *Service) GetProfile(token string) (*model.PlayerProfile, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return &session.Profile, nil
}

// createSession creates a new session for a profile
func (s *Service) createSession(profile *model.PlayerProfile) (*Session, error) {
	token := s.random.ID()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		PlayerID:  profile.ID,
		Profile:   *profile,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateGuestProfile(ctx context.Context, displayName string) (*Session, error)
	Register(ctx context.Context, username, password, displayName string) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	ValidateSession(token string) (*Session, error)
	InvalidateSession(token string)
	GetProfile(token string) (*model.PlayerProfile, error)
}

var _ ServiceInterface = (*Service)(nil)
