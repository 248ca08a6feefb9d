package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"festdraft/internal/admin"
	authhandler "festdraft/internal/auth/handler"
	authmetrics "festdraft/internal/auth/metrics"
	authservice "festdraft/internal/auth/service"
	"festdraft/internal/auth/workers/cleanup"
	jwttoken "festdraft/internal/jwt_token"
	"festdraft/internal/platform/config"
	"festdraft/internal/platform/database"
	"festdraft/internal/platform/health"
	"festdraft/internal/platform/ids"
	"festdraft/internal/platform/logger"
	"festdraft/internal/platform/metrics"
	"festdraft/internal/platform/redis"
	"festdraft/internal/platform/tracer"
	rosterhandler "festdraft/internal/roster/handler"
	rostermetrics "festdraft/internal/roster/metrics"
	rosterservice "festdraft/internal/roster/service"
	"festdraft/internal/seeder"
	httptransport "festdraft/internal/transport/http"
	request "festdraft/pkg/platform/middleware/request"
)

const (
	shutdownTimeout   = 10 * time.Second
	poolStatsInterval = 15 * time.Second
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log, closer, err := logger.NewWithOptions(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close() //nolint:errcheck // process is exiting

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	log.Info("initializing festdraft",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"version", health.Version,
	)
	platformMetrics := metrics.New()
	platformMetrics.SetBuildInfo(health.Version, cfg.Environment)

	pool, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close() //nolint:errcheck // shutdown path
	if pool != nil {
		if err := pool.Migrate(ctx); err != nil {
			return err
		}
	}

	var rdb *redis.Client
	if cfg.Sessions == config.SessionsRedis {
		if rdb, err = redis.New(cfg.Redis); err != nil {
			return err
		}
		defer rdb.Close() //nolint:errcheck // shutdown path
	}

	st, err := buildStores(cfg, pool, rdb, log)
	if err != nil {
		return err
	}

	roster, err := rosterservice.New(st.teams, st.sections, st.groups, st.participants, st.auctions,
		rosterservice.WithLogger(log),
		rosterservice.WithMetrics(rostermetrics.New()),
		rosterservice.WithTracer(tracer.NewOTel("festdraft/roster")),
		rosterservice.WithIDGenerator(ids.NewGenerator(cfg.SnowflakeNode)),
	)
	if err != nil {
		return err
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, jwttoken.DefaultIssuer, jwttoken.DefaultAudience, cfg.TokenTTL)
	tokens.SetEnv(cfg.Environment)
	authMetrics := authmetrics.New()
	auth, err := authservice.New(st.users, st.sessions, tokens,
		authservice.WithLogger(log),
		authservice.WithMetrics(authMetrics),
		authservice.WithSessionTTL(cfg.SessionTTL),
		authservice.WithTeamDirectory(roster),
	)
	if err != nil {
		return err
	}

	if cfg.SeedDemoData {
		summary, err := seeder.New(auth, roster, log).SeedAll(ctx)
		if err != nil {
			return err
		}
		platformMetrics.AddSeeded("teams", summary.Teams)
		platformMetrics.AddSeeded("sections", summary.Sections)
		platformMetrics.AddSeeded("participants", summary.Participants)
		platformMetrics.AddSeeded("users", summary.Users)
	}

	sweeper, err := cleanup.New(st.sessions,
		cleanup.WithCleanupInterval(cfg.Cleanup.Interval),
		cleanup.WithCleanupLogger(log),
		cleanup.WithRecorder(authMetrics),
	)
	if err != nil {
		return err
	}

	checks := health.New(cfg.Environment)
	if pool != nil {
		checks.RegisterCheck("database", pool.Health)
	}
	if rdb != nil {
		checks.RegisterCheck("redis", rdb.Health)
	}

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:         log,
		Validator:      jwttoken.NewJWTServiceAdapter(tokens),
		Sessions:       auth,
		Metrics:        request.NewMetrics(),
		Auth:           authhandler.New(auth, log),
		Roster:         rosterhandler.New(roster, log),
		Landing:        admin.NewHandler(admin.NewService(roster, auth), log),
		Health:         checks,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return ignoreCanceled(sweeper.Start(gctx))
	})
	g.Go(func() error {
		recordPoolStats(gctx, pool, rdb, platformMetrics)
		return nil
	})
	return g.Wait()
}

// recordPoolStats samples connection pool statistics until ctx ends.
func recordPoolStats(ctx context.Context, pool *database.Pool, rdb *redis.Client, m *metrics.Metrics) {
	if pool == nil && rdb == nil {
		return
	}
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if pool != nil {
				m.RecordDBStats(pool.Stats())
			}
			if rdb != nil {
				rdb.RecordPoolStats()
			}
		case <-ctx.Done():
			return
		}
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
