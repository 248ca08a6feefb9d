package session

import (
	"context"
	"testing"
	"time"

	"festdraft/internal/auth/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type InMemorySessionStoreSuite struct {
	suite.Suite
	store *InMemorySessionStore
	now   time.Time
}

func (s *InMemorySessionStoreSuite) SetupTest() {
	s.store = New()
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemorySessionStoreSuite) newSession(userID id.UserID, age time.Duration) *models.Session {
	return &models.Session{
		ID:        id.SessionID(uuid.New()),
		UserID:    userID,
		Role:      id.RoleTeamManager,
		CreatedAt: s.now.Add(-age),
		ExpiresAt: s.now.Add(time.Hour - age),
	}
}

func (s *InMemorySessionStoreSuite) TestCreateAndFind() {
	session := s.newSession(id.UserID(uuid.New()), 0)
	require.NoError(s.T(), s.store.Create(context.Background(), session))

	found, err := s.store.FindByID(context.Background(), session.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), session, found)

	_, err = s.store.FindByID(context.Background(), id.SessionID(uuid.New()))
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemorySessionStoreSuite) TestListByUserNewestFirst() {
	userID := id.UserID(uuid.New())
	older := s.newSession(userID, 30*time.Minute)
	newer := s.newSession(userID, time.Minute)
	other := s.newSession(id.UserID(uuid.New()), 0)
	for _, session := range []*models.Session{older, newer, other} {
		require.NoError(s.T(), s.store.Create(context.Background(), session))
	}

	sessions, err := s.store.ListByUser(context.Background(), userID)
	require.NoError(s.T(), err)
	require.Len(s.T(), sessions, 2)
	assert.Equal(s.T(), newer.ID, sessions[0].ID)
	assert.Equal(s.T(), older.ID, sessions[1].ID)
}

func (s *InMemorySessionStoreSuite) TestRevokeSessionIfActive() {
	session := s.newSession(id.UserID(uuid.New()), 0)
	require.NoError(s.T(), s.store.Create(context.Background(), session))

	require.NoError(s.T(), s.store.RevokeSessionIfActive(context.Background(), session.ID, s.now))
	err := s.store.RevokeSessionIfActive(context.Background(), session.ID, s.now)
	assert.ErrorIs(s.T(), err, ErrSessionRevoked)
	assert.ErrorIs(s.T(), err, sentinel.ErrInvalidState)

	err = s.store.RevokeSessionIfActive(context.Background(), id.SessionID(uuid.New()), s.now)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	found, err := s.store.FindByID(context.Background(), session.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), found.IsActive(s.now))
}

func (s *InMemorySessionStoreSuite) TestRevokeAllForUser() {
	userID := id.UserID(uuid.New())
	a, b := s.newSession(userID, 0), s.newSession(userID, 0)
	require.NoError(s.T(), s.store.Create(context.Background(), a))
	require.NoError(s.T(), s.store.Create(context.Background(), b))
	require.NoError(s.T(), s.store.RevokeSessionIfActive(context.Background(), a.ID, s.now))

	n, err := s.store.RevokeAllForUser(context.Background(), userID, s.now)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, n)
}

func (s *InMemorySessionStoreSuite) TestDeleteExpiredSessions() {
	userID := id.UserID(uuid.New())
	live := s.newSession(userID, 0)
	expired := s.newSession(userID, 2*time.Hour)
	require.NoError(s.T(), s.store.Create(context.Background(), live))
	require.NoError(s.T(), s.store.Create(context.Background(), expired))

	n, err := s.store.DeleteExpiredSessions(context.Background(), s.now)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, n)

	_, err = s.store.FindByID(context.Background(), expired.ID)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func TestInMemorySessionStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemorySessionStoreSuite))
}
