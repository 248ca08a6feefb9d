package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionStore exposes cleanup for expired sessions.
type SessionStore interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// Recorder observes how many sessions each run deleted.
type Recorder interface {
	RecordSessionsSwept(n int)
}

// CleanupResult summarizes the deletions performed by a cleanup run.
type CleanupResult struct {
	DeletedSessions int
}

// CleanupService periodically removes expired sessions.
type CleanupService struct {
	sessionStore SessionStore
	interval     time.Duration
	logger       *slog.Logger
	recorder     Recorder
	now          func() time.Time
}

type CleanupOption func(*CleanupService)

// WithCleanupInterval overrides the cleanup interval when greater than zero.
func WithCleanupInterval(interval time.Duration) CleanupOption {
	return func(s *CleanupService) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithCleanupLogger(logger *slog.Logger) CleanupOption {
	return func(s *CleanupService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(r Recorder) CleanupOption {
	return func(s *CleanupService) {
		s.recorder = r
	}
}

// WithClock injects the time source used to decide expiry.
func WithClock(now func() time.Time) CleanupOption {
	return func(s *CleanupService) {
		if now != nil {
			s.now = now
		}
	}
}

func New(sessionStore SessionStore, opts ...CleanupOption) (*CleanupService, error) {
	if sessionStore == nil {
		return nil, fmt.Errorf("sessionStore is required")
	}
	svc := &CleanupService{
		sessionStore: sessionStore,
		interval:     5 * time.Minute,
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Start runs cleanup periodically until ctx is cancelled.
func (s *CleanupService) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			res, err := s.RunOnce(ctx)
			if err != nil {
				s.logger.ErrorContext(ctx, "session cleanup failed", "error", err)
				continue
			}
			if res.DeletedSessions > 0 {
				s.logger.InfoContext(ctx, "expired sessions removed", "count", res.DeletedSessions)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single sweep.
func (s *CleanupService) RunOnce(ctx context.Context) (CleanupResult, error) {
	deleted, err := s.sessionStore.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return CleanupResult{}, fmt.Errorf("delete expired sessions: %w", err)
	}
	if s.recorder != nil {
		s.recorder.RecordSessionsSwept(deleted)
	}
	return CleanupResult{DeletedSessions: deleted}, nil
}
