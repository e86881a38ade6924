package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/inkfield/inkfield/internal/dependencies/mocks"
	"github.com/inkfield/inkfield/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, mocks.NewMockRandom(), DefaultConfig())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateGuestProfile() {
	session, err := s.service.CreateGuestProfile(s.ctx, "Anonymous Squid")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.True(session.Profile.IsGuest)
	s.Equal("Anonymous Squid", session.Profile.DisplayName)
	s.Equal(s.clock.CurrentTime.Add(24*time.Hour), session.ExpiresAt)

	stored, err := s.storage.GetProfile(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.True(stored.IsGuest)
}

func (s *ServiceSuite) TestRegisterAndLogin() {
	reg, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice")
	s.Require().NoError(err)
	s.False(reg.Profile.IsGuest)

	// Password hashes are never stored in the clear
	account, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEqual("hunter2", account.PasswordHash)

	login, err := s.service.Login(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	s.Equal(reg.PlayerID, login.PlayerID)
	s.NotEqual(reg.Token, login.Token)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "other", "Other Alice")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2", "Alice")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestValidateSession() {
	created, err := s.service.CreateGuestProfile(s.ctx, "Guest")
	s.Require().NoError(err)

	session, err := s.service.ValidateSession(created.Token)
	s.Require().NoError(err)
	s.Equal(created.PlayerID, session.PlayerID)

	_, err = s.service.ValidateSession("bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpiry() {
	created, err := s.service.CreateGuestProfile(s.ctx, "Guest")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(created.Token)
	s.ErrorIs(err, ErrInvalidSession)

	// Expired sessions are removed on validation
	_, err = s.service.ValidateSession(created.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	created, err := s.service.CreateGuestProfile(s.ctx, "Guest")
	s.Require().NoError(err)

	s.service.InvalidateSession(created.Token)

	_, err = s.service.ValidateSession(created.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestGetProfile() {
	created, err := s.service.CreateGuestProfile(s.ctx, "Guest")
	s.Require().NoError(err)

	profile, err := s.service.GetProfile(created.Token)
	s.Require().NoError(err)
	s.Equal(created.PlayerID, profile.ID)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	old, err := s.service.CreateGuestProfile(s.ctx, "Old Guest")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	fresh, err := s.service.CreateGuestProfile(s.ctx, "Fresh Guest")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(old.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
