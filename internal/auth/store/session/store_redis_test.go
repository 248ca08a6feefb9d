package session

import (
	"testing"
	"time"

	"festdraft/internal/auth/models"
	id "festdraft/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionJSONRoundTripKeepsRevocation(t *testing.T) {
	now := time.Unix(0, time.Now().UnixNano())
	revoked := now.Add(time.Minute)
	session := &models.Session{
		ID:                id.SessionID(uuid.New()),
		UserID:            id.UserID(uuid.New()),
		Role:              id.RoleAdmin,
		DeviceDisplayName: "Firefox on Linux",
		CreatedAt:         now,
		ExpiresAt:         now.Add(time.Hour),
		RevokedAt:         &revoked,
	}

	back, err := sessionFromJSON(sessionToJSON(session))
	require.NoError(t, err)
	assert.True(t, session.CreatedAt.Equal(back.CreatedAt))
	require.NotNil(t, back.RevokedAt)
	assert.True(t, revoked.Equal(*back.RevokedAt))
	assert.Equal(t, session.Role, back.Role)
}

func TestDecodeSessionRejectsGarbage(t *testing.T) {
	_, err := decodeSession("{not json")
	assert.Error(t, err)

	_, err = decodeSession(`{"id":"nope","user_id":"` + uuid.NewString() + `"}`)
	assert.Error(t, err)
}

func TestTTLFor(t *testing.T) {
	now := time.Now()
	live := &models.Session{ExpiresAt: now.Add(time.Hour)}
	assert.Equal(t, time.Hour, ttlFor(live, now))

	expired := &models.Session{ExpiresAt: now.Add(-time.Hour)}
	assert.Equal(t, time.Second, ttlFor(expired, now))

	revokedAt := now
	assert.Equal(t, revokedRetention, ttlFor(&models.Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}, now))
}
