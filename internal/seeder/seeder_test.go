package seeder

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authmodels "festdraft/internal/auth/models"
	authservice "festdraft/internal/auth/service"
	sessionStore "festdraft/internal/auth/store/session"
	userStore "festdraft/internal/auth/store/user"
	jwttoken "festdraft/internal/jwt_token"
	rosterservice "festdraft/internal/roster/service"
	auctionStore "festdraft/internal/roster/store/auction"
	groupStore "festdraft/internal/roster/store/group"
	participantStore "festdraft/internal/roster/store/participant"
	sectionStore "festdraft/internal/roster/store/section"
	teamStore "festdraft/internal/roster/store/team"
	id "festdraft/pkg/domain"
	"festdraft/pkg/listquery"
)

func newServices(t *testing.T) (*authservice.Service, *rosterservice.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	roster, err := rosterservice.New(teamStore.NewInMemory(), sectionStore.NewInMemory(), groupStore.NewInMemory(),
		participantStore.NewInMemory(), auctionStore.NewInMemory(),
		rosterservice.WithLogger(logger),
	)
	require.NoError(t, err)
	tokens := jwttoken.NewJWTService("seed-secret", "festdraft", "festdraft-clients", time.Minute)
	auth, err := authservice.New(userStore.New(), sessionStore.New(), tokens,
		authservice.WithLogger(logger),
		authservice.WithBcryptCost(bcrypt.MinCost),
		authservice.WithTeamDirectory(roster),
	)
	require.NoError(t, err)
	return auth, roster
}

func TestSeedAll(t *testing.T) {
	ctx := context.Background()
	auth, roster := newServices(t)
	s := New(auth, roster, slog.New(slog.NewTextHandler(io.Discard, nil)))

	summary, err := s.SeedAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Summary{Teams: 4, Sections: 3, Participants: 12, Users: 5}, summary)

	available, err := roster.ListAvailableParticipants(ctx, 0, listquery.Spec{})
	require.NoError(t, err)
	assert.Equal(t, 9, available.Total)
	assert.Equal(t, 12, available.Of)

	login, err := auth.Login(ctx, &authmodels.LoginRequest{Email: "team1@example.com", Password: managerPassword})
	require.NoError(t, err)
	assert.Equal(t, "Axis", login.User.Team)
	assert.Equal(t, id.RoleTeamManager.String(), login.User.Role)

	login, err = auth.Login(ctx, &authmodels.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)
	assert.Equal(t, id.RoleAdmin.String(), login.User.Role)
}

func TestSeedAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	auth, roster := newServices(t)
	s := New(auth, roster, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := s.SeedAll(ctx)
	require.NoError(t, err)
	again, err := s.SeedAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Summary{}, again)

	teams, err := roster.ListTeams(ctx, listquery.Spec{})
	require.NoError(t, err)
	assert.Equal(t, 4, teams.Total)
}
