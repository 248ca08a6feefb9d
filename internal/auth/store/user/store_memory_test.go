package user

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

type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
}

func newUser(email string) *models.User {
	return &models.User{
		ID:          id.UserID(uuid.New()),
		Email:       email,
		DisplayName: "Jane Smith",
		Role:        id.RoleTeamManager,
		TeamID:      11,
		TeamName:    "Axis",
		CreatedAt:   time.Now(),
	}
}

func (s *InMemoryUserStoreSuite) TestSaveAndFind() {
	user := newUser("jane@example.com")
	require.NoError(s.T(), s.store.Save(context.Background(), user))

	byID, err := s.store.FindByID(context.Background(), user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user, byID)

	byEmail, err := s.store.FindByEmail(context.Background(), "JANE@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, byEmail.ID)
}

func (s *InMemoryUserStoreSuite) TestReturnsCopies() {
	user := newUser("jane@example.com")
	require.NoError(s.T(), s.store.Save(context.Background(), user))

	found, err := s.store.FindByID(context.Background(), user.ID)
	require.NoError(s.T(), err)
	found.Role = id.RoleAdmin

	again, err := s.store.FindByID(context.Background(), user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), id.RoleTeamManager, again.Role)
}

func (s *InMemoryUserStoreSuite) TestDuplicateEmailRejected() {
	require.NoError(s.T(), s.store.Save(context.Background(), newUser("dup@example.com")))
	err := s.store.Save(context.Background(), newUser("Dup@Example.com"))
	assert.ErrorIs(s.T(), err, sentinel.ErrAlreadyUsed)
}

func (s *InMemoryUserStoreSuite) TestFindNotFound() {
	_, err := s.store.FindByID(context.Background(), id.UserID(uuid.New()))
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	_, err = s.store.FindByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryUserStoreSuite) TestListOrderedByEmail() {
	for _, email := range []string{"team2@example.com", "admin@example.com", "team1@example.com"} {
		require.NoError(s.T(), s.store.Save(context.Background(), newUser(email)))
	}
	users, err := s.store.List(context.Background())
	require.NoError(s.T(), err)
	require.Len(s.T(), users, 3)
	assert.Equal(s.T(), "admin@example.com", users[0].Email)
	assert.Equal(s.T(), "team2@example.com", users[2].Email)

	n, err := s.store.Count(context.Background())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 3, n)
}

func (s *InMemoryUserStoreSuite) TestUpdateRole() {
	user := newUser("jane@example.com")
	require.NoError(s.T(), s.store.Save(context.Background(), user))

	updated, err := s.store.UpdateRole(context.Background(), user.ID, id.RoleAdmin, 0, "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), id.RoleAdmin, updated.Role)
	assert.True(s.T(), updated.TeamID.IsNil())

	_, err = s.store.UpdateRole(context.Background(), id.UserID(uuid.New()), id.RoleAdmin, 0, "")
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}
