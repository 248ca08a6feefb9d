package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"festdraft/internal/auth/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/platform/sentinel"
)

const (
	sessionKeyPrefix     = "festdraft:session:"
	userSessionKeyPrefix = "festdraft:user_sessions:"

	// maxSessionsPerUser caps how many sessions ListByUser loads.
	maxSessionsPerUser = 100

	// revokedRetention keeps revoked sessions readable so the revocation
	// check can distinguish "revoked" from "never existed".
	revokedRetention = time.Hour
)

// sessionJSON is the wire shape stored under each session key.
type sessionJSON struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Role              string `json:"role"`
	DeviceDisplayName string `json:"device_display_name"`
	CreatedAt         int64  `json:"created_at"`           // Unix nano
	ExpiresAt         int64  `json:"expires_at"`           // Unix nano
	RevokedAt         *int64 `json:"revoked_at,omitempty"` // Unix nano
}

func sessionToJSON(s *models.Session) *sessionJSON {
	j := &sessionJSON{
		ID:                uuid.UUID(s.ID).String(),
		UserID:            uuid.UUID(s.UserID).String(),
		Role:              s.Role.String(),
		DeviceDisplayName: s.DeviceDisplayName,
		CreatedAt:         s.CreatedAt.UnixNano(),
		ExpiresAt:         s.ExpiresAt.UnixNano(),
	}
	if s.RevokedAt != nil {
		ts := s.RevokedAt.UnixNano()
		j.RevokedAt = &ts
	}
	return j
}

func sessionFromJSON(j *sessionJSON) (*models.Session, error) {
	sessionID, err := uuid.Parse(j.ID)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	userID, err := uuid.Parse(j.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	s := &models.Session{
		ID:                id.SessionID(sessionID),
		UserID:            id.UserID(userID),
		Role:              id.Role(j.Role),
		DeviceDisplayName: j.DeviceDisplayName,
		CreatedAt:         time.Unix(0, j.CreatedAt),
		ExpiresAt:         time.Unix(0, j.ExpiresAt),
	}
	if j.RevokedAt != nil {
		t := time.Unix(0, *j.RevokedAt)
		s.RevokedAt = &t
	}
	return s, nil
}

func decodeSession(data string) (*models.Session, error) {
	var j sessionJSON
	if err := json.Unmarshal([]byte(data), &j); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return sessionFromJSON(&j)
}

// RedisStore persists sessions in Redis for multi-instance deployments.
// Keys expire with the session, so DeleteExpiredSessions has nothing to do.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(sessionID id.SessionID) string {
	return sessionKeyPrefix + uuid.UUID(sessionID).String()
}

func userSessionsKey(userID id.UserID) string {
	return userSessionKeyPrefix + uuid.UUID(userID).String()
}

// ttlFor is how long a session key should live from now.
func ttlFor(session *models.Session, now time.Time) time.Duration {
	if session.RevokedAt != nil {
		return revokedRetention
	}
	if remaining := session.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return time.Second
}

func (s *RedisStore) Create(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	data, err := json.Marshal(sessionToJSON(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := ttlFor(session, time.Now())
	userKey := userSessionsKey(session.UserID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, ttl)
	pipe.SAdd(ctx, userKey, uuid.UUID(session.ID).String())
	pipe.Expire(ctx, userKey, ttl+time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session by id: %w", err)
	}
	return decodeSession(data)
}

func (s *RedisStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Session, error) {
	userKey := userSessionsKey(userID)
	sessionIDs, err := s.client.SRandMemberN(ctx, userKey, maxSessionsPerUser).Result()
	if err != nil {
		return nil, fmt.Errorf("list session ids by user: %w", err)
	}
	if len(sessionIDs) == 0 {
		return []*models.Session{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(sessionIDs))
	for i, sid := range sessionIDs {
		cmds[i] = pipe.Get(ctx, sessionKeyPrefix+sid)
	}
	// Missing keys surface per command as redis.Nil.
	_, _ = pipe.Exec(ctx) //nolint:errcheck // inspected per command below

	sessions := make([]*models.Session, 0, len(sessionIDs))
	stale := make([]any, 0)
	for i, cmd := range cmds {
		data, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			stale = append(stale, sessionIDs[i])
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get session: %w", err)
		}
		session, err := decodeSession(data)
		if err != nil {
			continue
		}
		sessions = append(sessions, session)
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, userKey, stale...).Err(); err != nil {
			return nil, fmt.Errorf("prune user session set: %w", err)
		}
	}
	return sessions, nil
}

// RevokeSessionIfActive flips the session to revoked under WATCH so that
// concurrent revocations cannot both succeed.
func (s *RedisStore) RevokeSessionIfActive(ctx context.Context, sessionID id.SessionID, now time.Time) error {
	key := sessionKey(sessionID)
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get session for revoke: %w", err)
		}
		session, err := decodeSession(data)
		if err != nil {
			return err
		}
		if !session.Revoke(now) {
			return ErrSessionRevoked
		}
		updated, err := json.Marshal(sessionToJSON(session))
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, ttlFor(session, now))
			return nil
		})
		return err
	}, key)
}

func (s *RedisStore) RevokeAllForUser(ctx context.Context, userID id.UserID, now time.Time) (int, error) {
	sessions, err := s.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	revoked := 0
	for _, session := range sessions {
		err := s.RevokeSessionIfActive(ctx, session.ID, now)
		switch {
		case err == nil:
			revoked++
		case errors.Is(err, ErrSessionRevoked), errors.Is(err, sentinel.ErrNotFound):
		default:
			return revoked, err
		}
	}
	return revoked, nil
}

// DeleteExpiredSessions is a no-op: Redis expires session keys itself.
func (s *RedisStore) DeleteExpiredSessions(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}
