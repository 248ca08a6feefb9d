package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"FESTDRAFT_ADDR", "TOKEN_TTL", "DATABASE_URL", "REDIS_URL", "SESSION_STORE", "SEED_DEMO_DATA"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, TokenTTL, cfg.TokenTTL)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, SessionsMemory, cfg.Sessions)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FESTDRAFT_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("CLEANUP_INTERVAL", "not-a-duration")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, 5*time.Minute, cfg.Cleanup.Interval)
}

func TestResolveSessionBackend(t *testing.T) {
	withDB := Server{Database: Database{URL: "postgres://x"}}
	withRedis := Server{Redis: Redis{URL: "redis://x"}}

	assert.Equal(t, SessionsPostgres, resolveSessionBackend("", withDB))
	assert.Equal(t, SessionsMemory, resolveSessionBackend("", Server{}))
	assert.Equal(t, SessionsRedis, resolveSessionBackend("redis", withRedis))
	assert.Equal(t, SessionsMemory, resolveSessionBackend("redis", withDB), "redis without URL falls back")
	assert.Equal(t, SessionsMemory, resolveSessionBackend("memory", withDB))
	assert.Equal(t, SessionsMemory, resolveSessionBackend("etcd", withDB))
}
