// Package harness runs the whole festdraft HTTP stack in process for
// end-to-end tests: memory stores, the demo seed data and the production
// router behind an httptest server.
package harness

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"festdraft/internal/admin"
	authhandler "festdraft/internal/auth/handler"
	authservice "festdraft/internal/auth/service"
	sessionStore "festdraft/internal/auth/store/session"
	userStore "festdraft/internal/auth/store/user"
	jwttoken "festdraft/internal/jwt_token"
	rosterhandler "festdraft/internal/roster/handler"
	rosterservice "festdraft/internal/roster/service"
	auctionStore "festdraft/internal/roster/store/auction"
	groupStore "festdraft/internal/roster/store/group"
	participantStore "festdraft/internal/roster/store/participant"
	sectionStore "festdraft/internal/roster/store/section"
	teamStore "festdraft/internal/roster/store/team"
	"festdraft/internal/seeder"
	httptransport "festdraft/internal/transport/http"
)

// Demo credentials created by the seeder.
const (
	AdminEmail      = "admin@example.com"
	AdminPassword   = "admin123"
	ManagerEmail    = "team1@example.com"
	ManagerPassword = "user123"
	ManagerTeam     = "Axis"
)

type Server struct {
	*httptest.Server
	Auth   *authservice.Service
	Roster *rosterservice.Service
}

type options struct {
	db    *sql.DB
	redis *goredis.Client
}

type Option func(*options)

// WithPostgres backs users, sessions and the roster with db. The schema
// must already be migrated.
func WithPostgres(db *sql.DB) Option {
	return func(o *options) { o.db = db }
}

// WithRedis keeps sessions in Redis; it takes precedence over WithPostgres
// for the session store.
func WithRedis(client *goredis.Client) Option {
	return func(o *options) { o.redis = client }
}

// Start builds and seeds a server. It is closed when tb finishes.
func Start(tb testing.TB, opts ...Option) *Server {
	tb.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var (
		teams        rosterservice.TeamStore        = teamStore.NewInMemory()
		sections     rosterservice.SectionStore     = sectionStore.NewInMemory()
		groups       rosterservice.GroupStore       = groupStore.NewInMemory()
		participants rosterservice.ParticipantStore = participantStore.NewInMemory()
		auctions     rosterservice.AuctionStore     = auctionStore.NewInMemory()
		users        authservice.UserStore          = userStore.New()
		sessions     authservice.SessionStore       = sessionStore.New()
	)
	if o.db != nil {
		teams = teamStore.NewPostgres(o.db)
		sections = sectionStore.NewPostgres(o.db)
		groups = groupStore.NewPostgres(o.db)
		participants = participantStore.NewPostgres(o.db)
		auctions = auctionStore.NewPostgres(o.db)
		users = userStore.NewPostgres(o.db)
		sessions = sessionStore.NewPostgres(o.db)
	}
	if o.redis != nil {
		sessions = sessionStore.NewRedis(o.redis)
	}

	roster, err := rosterservice.New(teams, sections, groups, participants, auctions, rosterservice.WithLogger(logger))
	require.NoError(tb, err)

	tokens := jwttoken.NewJWTService("harness-signing-key", jwttoken.DefaultIssuer, jwttoken.DefaultAudience, 15*time.Minute)
	auth, err := authservice.New(users, sessions, tokens,
		authservice.WithLogger(logger),
		authservice.WithTeamDirectory(roster),
		authservice.WithBcryptCost(bcrypt.MinCost),
	)
	require.NoError(tb, err)

	_, err = seeder.New(auth, roster, logger).SeedAll(context.Background())
	require.NoError(tb, err)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:    logger,
		Validator: jwttoken.NewJWTServiceAdapter(tokens),
		Sessions:  auth,
		Auth:      authhandler.New(auth, logger),
		Roster:    rosterhandler.New(roster, logger),
		Landing:   admin.NewHandler(admin.NewService(roster, auth), logger),
	})
	srv := httptest.NewServer(router)
	tb.Cleanup(srv.Close)
	return &Server{Server: srv, Auth: auth, Roster: roster}
}
