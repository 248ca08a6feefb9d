package team

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"
	"festdraft/pkg/testutil"
)

type InMemoryTeamStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryTeamStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryTeamStoreSuite))
}

func (s *InMemoryTeamStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	for i, name := range []string{"Vertex", "Axis", "Nexus"} {
		s.Require().NoError(s.store.Create(s.ctx, &models.Team{ID: id.TeamID(10 + i), Name: name, CreatedAt: time.Now()}))
	}
}

func (s *InMemoryTeamStoreSuite) TestCreateRejectsDuplicateName() {
	err := s.store.Create(s.ctx, &models.Team{ID: 99, Name: "axis"})
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *InMemoryTeamStoreSuite) TestConcurrentCreateKeepsNamesUnique() {
	res := testutil.RunConcurrent(20, func(idx int) error {
		return s.store.Create(s.ctx, &models.Team{ID: id.TeamID(100 + idx), Name: "Zenith"})
	})
	s.Equal(int32(1), res.Successes)
	s.Equal(int32(19), res.Conflicts)
	s.Equal(int32(20), res.Total())
}

func (s *InMemoryTeamStoreSuite) TestListOrderedByID() {
	teams, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 3)
	s.Equal("Vertex", teams[0].Name)
	s.Equal("Nexus", teams[2].Name)
}

func (s *InMemoryTeamStoreSuite) TestReturnedTeamsAreCopies() {
	t, err := s.store.FindByID(s.ctx, 11)
	s.Require().NoError(err)
	t.Name = "Mutated"

	again, err := s.store.FindByID(s.ctx, 11)
	s.Require().NoError(err)
	s.Equal("Axis", again.Name)
}

func (s *InMemoryTeamStoreSuite) TestUpdate() {
	s.Run("renames", func() {
		s.Require().NoError(s.store.Update(s.ctx, &models.Team{ID: 11, Name: "Axis FC", Colour: "Green"}))
		t, err := s.store.FindByID(s.ctx, 11)
		s.Require().NoError(err)
		s.Equal("Axis FC", t.Name)
	})

	s.Run("keeping its own name is allowed", func() {
		s.NoError(s.store.Update(s.ctx, &models.Team{ID: 12, Name: "NEXUS"}))
	})

	s.Run("clashing name", func() {
		err := s.store.Update(s.ctx, &models.Team{ID: 12, Name: "vertex"})
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("missing team", func() {
		err := s.store.Update(s.ctx, &models.Team{ID: 404, Name: "Ghost"})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryTeamStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Delete(s.ctx, 10))
	_, err := s.store.FindByID(s.ctx, 10)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, 10), sentinel.ErrNotFound)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}
