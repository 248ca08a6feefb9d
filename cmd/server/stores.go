package main

import (
	"fmt"
	"log/slog"

	authservice "festdraft/internal/auth/service"
	sessionStore "festdraft/internal/auth/store/session"
	userStore "festdraft/internal/auth/store/user"
	"festdraft/internal/platform/config"
	"festdraft/internal/platform/database"
	"festdraft/internal/platform/redis"
	rosterservice "festdraft/internal/roster/service"
	auctionStore "festdraft/internal/roster/store/auction"
	groupStore "festdraft/internal/roster/store/group"
	participantStore "festdraft/internal/roster/store/participant"
	sectionStore "festdraft/internal/roster/store/section"
	teamStore "festdraft/internal/roster/store/team"
)

type stores struct {
	users        authservice.UserStore
	sessions     authservice.SessionStore
	teams        rosterservice.TeamStore
	sections     rosterservice.SectionStore
	groups       rosterservice.GroupStore
	participants rosterservice.ParticipantStore
	auctions     rosterservice.AuctionStore
}

// buildStores keeps everything in memory unless a database is configured.
// Sessions follow cfg.Sessions independently.
func buildStores(cfg config.Server, pool *database.Pool, rdb *redis.Client, log *slog.Logger) (*stores, error) {
	s := &stores{}
	if pool != nil {
		db := pool.DB()
		s.users = userStore.NewPostgres(db)
		s.teams = teamStore.NewPostgres(db)
		s.sections = sectionStore.NewPostgres(db)
		s.groups = groupStore.NewPostgres(db)
		s.participants = participantStore.NewPostgres(db)
		s.auctions = auctionStore.NewPostgres(db)
	} else {
		s.users = userStore.New()
		s.teams = teamStore.NewInMemory()
		s.sections = sectionStore.NewInMemory()
		s.groups = groupStore.NewInMemory()
		s.participants = participantStore.NewInMemory()
		s.auctions = auctionStore.NewInMemory()
	}

	switch cfg.Sessions {
	case config.SessionsRedis:
		if rdb == nil {
			return nil, fmt.Errorf("session store %q needs REDIS_URL", cfg.Sessions)
		}
		s.sessions = sessionStore.NewRedis(rdb.Client)
	case config.SessionsPostgres:
		if pool == nil {
			return nil, fmt.Errorf("session store %q needs DATABASE_URL", cfg.Sessions)
		}
		s.sessions = sessionStore.NewPostgres(pool.DB())
	default:
		s.sessions = sessionStore.New()
	}

	log.Info("stores selected",
		"roster", backendName(pool != nil),
		"sessions", string(cfg.Sessions),
	)
	return s, nil
}

func backendName(postgres bool) string {
	if postgres {
		return "postgres"
	}
	return "memory"
}
