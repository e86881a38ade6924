package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/inkfield/inkfield/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour
	cfg.PlayerTTL = time.Hour
	cfg.GuestProfileTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newSession(id model.GameSessionID) *model.GameSession {
	alice, err := model.NewPlayer("p1", "Alice", model.ColorRed, model.Position3D{X: 1.5})
	s.Require().NoError(err)
	bob, err := model.NewPlayer("p2", "Bob", model.ColorBlue, model.Position3D{})
	s.Require().NoError(err)

	session, err := model.NewGameSession(id, []model.Player{alice, bob}, 180*time.Second)
	s.Require().NoError(err)
	return &session
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.newSession("g1")
	withSpot, err := model.NewInkSpot("i1", model.Position3D{X: 0.25}, model.ColorRed, 0.75, "p1", time.Now().UTC())
	s.Require().NoError(err)
	stored := session.AddInkSpot(withSpot)

	s.Require().NoError(s.storage.SaveSession(s.ctx, &stored))

	got, err := s.storage.GetSession(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(stored.ID, got.ID)
	s.Len(got.Players, 2)
	s.Require().Len(got.InkSpots, 1)
	s.Equal(0.75, got.InkSpots[0].Size)
	s.Equal(model.Position3D{X: 1.5}, got.Players[0].Position)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nope")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestUpdateSessionRequiresExisting() {
	session := s.newSession("g1")
	s.ErrorIs(s.storage.UpdateSession(s.ctx, session), model.ErrSessionNotFound)
}

func (s *StorageSuite) TestActiveSessionIndex() {
	waiting := s.newSession("g1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, waiting))

	active := s.newSession("g2").Start(time.Now().UTC())
	s.Require().NoError(s.storage.SaveSession(s.ctx, &active))

	sessions, err := s.storage.ListActiveSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sessions, 1)
	s.Equal(model.GameSessionID("g2"), sessions[0].ID)

	// Ending the session removes it from the index
	ended := active.End(time.Now().UTC())
	s.Require().NoError(s.storage.UpdateSession(s.ctx, &ended))

	sessions, err = s.storage.ListActiveSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *StorageSuite) TestUpdateSessionAndPlayers() {
	session := s.newSession("g1").Start(time.Now().UTC())
	s.Require().NoError(s.storage.SaveSession(s.ctx, &session))
	for i := range session.Players {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, &session.Players[i]))
	}

	stunned := session.Players[1].Deactivate()
	updated := session.UpdatePlayer(stunned)
	s.Require().NoError(s.storage.UpdateSessionAndPlayers(s.ctx, &updated, []*model.Player{&stunned}))

	got, err := s.storage.GetSession(s.ctx, "g1")
	s.Require().NoError(err)
	gotBob, ok := got.Player("p2")
	s.Require().True(ok)
	s.False(gotBob.IsActive)

	player, err := s.storage.GetPlayer(s.ctx, "p2")
	s.Require().NoError(err)
	s.False(player.IsActive)

	// The transactional path maintains the active-session index too
	ended := updated.End(time.Now().UTC())
	s.Require().NoError(s.storage.UpdateSessionAndPlayers(s.ctx, &ended, nil))

	sessions, err := s.storage.ListActiveSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *StorageSuite) TestUpdateSessionAndPlayersRequiresExisting() {
	session := s.newSession("g1")
	s.ErrorIs(s.storage.UpdateSessionAndPlayers(s.ctx, session, nil), model.ErrSessionNotFound)

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	err := s.storage.UpdateSessionAndPlayers(s.ctx, session, []*model.Player{&session.Players[0]})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeleteSessionCleansIndex() {
	active := s.newSession("g1").Start(time.Now().UTC())
	s.Require().NoError(s.storage.SaveSession(s.ctx, &active))
	s.Require().NoError(s.storage.DeleteSession(s.ctx, "g1"))

	_, err := s.storage.GetSession(s.ctx, "g1")
	s.ErrorIs(err, model.ErrSessionNotFound)

	sessions, err := s.storage.ListActiveSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(sessions)
}

// Player tests

func (s *StorageSuite) TestPlayerRoundTrip() {
	player, err := model.NewPlayer("p1", "Alice", model.ColorRed, model.Position3D{X: 0.5, Y: 1, Z: -0.5})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.SavePlayer(s.ctx, &player))

	got, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(player.Name, got.Name)
	s.Equal(player.Position, got.Position)
	s.True(got.IsActive)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpdatePlayerRequiresExisting() {
	player, err := model.NewPlayer("p1", "Alice", model.ColorRed, model.Position3D{})
	s.Require().NoError(err)
	s.ErrorIs(s.storage.UpdatePlayer(s.ctx, &player), model.ErrPlayerNotFound)

	s.Require().NoError(s.storage.SavePlayer(s.ctx, &player))
	stunned := player.Deactivate()
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, &stunned))

	got, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.False(got.IsActive)
}

// Profile and account tests

func (s *StorageSuite) TestGuestProfileTTL() {
	guest := &model.PlayerProfile{ID: "guest-1", IsGuest: true}
	registered := &model.PlayerProfile{ID: "reg-1", IsGuest: false}

	s.Require().NoError(s.storage.SaveProfile(s.ctx, guest))
	s.Require().NoError(s.storage.SaveProfile(s.ctx, registered))

	s.Greater(s.mini.TTL(profileKey("guest-1")), time.Duration(0))
	s.Equal(time.Duration(0), s.mini.TTL(profileKey("reg-1")))
}

func (s *StorageSuite) TestAccountUsernameIndex() {
	account := &model.PlayerAccount{PlayerID: "p1", Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	got, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.PlayerID)

	_, err = s.storage.GetAccountByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrProfileNotFound)
}
