package client

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"festdraft/internal/client/api"
	"festdraft/internal/client/session"
	"festdraft/internal/client/storage"
	"festdraft/internal/client/wishlist"
	"festdraft/internal/integration_tests/harness"
	"festdraft/pkg/listquery"
)

// SessionSuite drives the client session gate against the real HTTP stack
// with a SQLite profile on disk, the way draftctl runs.
type SessionSuite struct {
	suite.Suite
	srv     *harness.Server
	profile string
	logger  *slog.Logger
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.srv = harness.Start(s.T())
	s.profile = filepath.Join(s.T().TempDir(), "profile.db")
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// view opens one client view: its own store instance, API client and gate.
func (s *SessionSuite) view() (*session.Gate, *api.Client, *storage.SQLiteStore) {
	ctx := context.Background()
	store, err := storage.OpenSQLite(ctx, s.profile,
		storage.WithLogger(s.logger),
		storage.WithPollInterval(20*time.Millisecond),
	)
	s.Require().NoError(err)

	var gate *session.Gate
	client, err := api.New(s.srv.URL, api.WithTokenSource(func() string { return gate.Token() }))
	s.Require().NoError(err)

	gate = session.New(store, session.FromClient(client), session.WithLogger(s.logger))
	s.T().Cleanup(func() {
		gate.Close()
		_ = store.Close()
	})
	return gate, client, store
}

func (s *SessionSuite) TestLoginSurvivesRestart() {
	ctx := context.Background()

	first, _, _ := s.view()
	first.Initialize(ctx)
	s.Require().NoError(first.Wait(ctx))
	s.Equal(session.Unauthenticated, first.State())

	res := first.Login(ctx, harness.ManagerEmail, harness.ManagerPassword)
	s.Require().True(res.OK, res.Message)
	s.Equal(harness.ManagerTeam, res.Session.Team)

	second, client, _ := s.view()
	second.Initialize(ctx)
	s.Require().NoError(second.Wait(ctx))
	s.Equal(session.Authenticated, second.State())
	s.True(second.IsTeamManager())
	s.Equal(first.Token(), second.Token())

	home, err := client.TeamHome(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(home.Team)
	s.Equal(harness.ManagerTeam, home.Team.Name)
}

func (s *SessionSuite) TestLogoutRevokesServerSide() {
	ctx := context.Background()

	gate, client, _ := s.view()
	gate.Initialize(ctx)
	s.Require().NoError(gate.Wait(ctx))
	s.Require().True(gate.Login(ctx, harness.AdminEmail, harness.AdminPassword).OK)
	token := gate.Token()

	gate.Logout(ctx)
	s.Equal(session.Unauthenticated, gate.State())

	_, err := client.WithToken(token).Profile(ctx)
	s.True(api.IsUnauthorized(err), "revoked token must be refused, got %v", err)

	restarted, _, _ := s.view()
	restarted.Initialize(ctx)
	s.Require().NoError(restarted.Wait(ctx))
	s.Equal(session.Unauthenticated, restarted.State())
}

func (s *SessionSuite) TestRevokedTokenIsDroppedOnRestart() {
	ctx := context.Background()

	gate, _, _ := s.view()
	gate.Initialize(ctx)
	s.Require().NoError(gate.Wait(ctx))
	res := gate.Login(ctx, harness.AdminEmail, harness.AdminPassword)
	s.Require().True(res.OK)

	// the session is ended from another client
	other, err := api.New(s.srv.URL, api.WithTokenSource(gate.Token))
	s.Require().NoError(err)
	_, err = other.Logout(ctx)
	s.Require().NoError(err)

	restarted, _, store := s.view()
	restarted.Initialize(ctx)
	s.Require().NoError(restarted.Wait(ctx))
	s.Equal(session.Unauthenticated, restarted.State())

	raw, err := store.Get(ctx, session.KeyUser)
	s.Require().NoError(err)
	s.Nil(raw)
}

func (s *SessionSuite) TestOtherViewsFollowLoginAndLogout() {
	ctx := context.Background()

	watcher, _, watcherStore := s.view()
	watcher.Initialize(ctx)
	s.Require().NoError(watcher.Wait(ctx))
	stop := watcher.Follow(watcherStore)
	defer stop()

	actor, _, _ := s.view()
	actor.Initialize(ctx)
	s.Require().NoError(actor.Wait(ctx))
	s.Require().True(actor.Login(ctx, harness.AdminEmail, harness.AdminPassword).OK)

	s.Eventually(func() bool { return watcher.IsAdmin() }, 5*time.Second, 20*time.Millisecond)

	actor.Logout(ctx)
	s.Eventually(func() bool { return watcher.State() == session.Unauthenticated }, 5*time.Second, 20*time.Millisecond)
}

func TestWishlistSyncsAcrossViews(t *testing.T) {
	srv := harness.Start(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile.db")

	open := func() *storage.SQLiteStore {
		store, err := storage.OpenSQLite(ctx, path, storage.WithPollInterval(20*time.Millisecond))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	}

	client, err := api.New(srv.URL)
	require.NoError(t, err)
	login, err := client.Login(ctx, harness.ManagerEmail, harness.ManagerPassword)
	require.NoError(t, err)
	candidates, err := client.WithToken(login.Token).AvailableParticipants(ctx, 0,
		listquery.Spec{SortField: "name"}.Values())
	require.NoError(t, err)
	require.NotEmpty(t, candidates.Items)

	changed := make(chan struct{}, 1)
	reader, err := wishlist.Open(ctx, open(), wishlist.WithOnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))
	require.NoError(t, err)
	defer reader.Close()

	writer, err := wishlist.Open(ctx, open())
	require.NoError(t, err)
	defer writer.Close()

	pick := candidates.Items[0]
	added, err := writer.Add(ctx, harness.ManagerTeam, pick)
	require.NoError(t, err)
	require.True(t, added)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("reader never saw the write")
	}
	got := reader.List(harness.ManagerTeam)
	require.Len(t, got, 1)
	assert.Equal(t, pick.ID, got[0].ID)
}
