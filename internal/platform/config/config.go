package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	Environment    string
	JWTSigningKey  string
	TokenTTL       time.Duration
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	SeedDemoData   bool
	SnowflakeNode  int64

	Database Database
	Redis    Redis
	Sessions SessionBackend
	Cleanup  Cleanup
	Log      Log
}

// Database configures the optional PostgreSQL backend. An empty URL keeps
// every store in memory.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Redis configures the optional Redis session backend.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SessionBackend selects where server sessions live: memory, postgres or redis.
type SessionBackend string

const (
	SessionsMemory   SessionBackend = "memory"
	SessionsPostgres SessionBackend = "postgres"
	SessionsRedis    SessionBackend = "redis"
)

type Cleanup struct {
	Interval time.Duration
}

type Log struct {
	Level string
	Dir   string
}

// Defaults applied when the environment is silent.
var (
	TokenTTL   = 12 * time.Hour
	SessionTTL = 7 * 24 * time.Hour
)

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first; real environment
// variables win over it.
func FromEnv() Server {
	_ = godotenv.Load() //nolint:errcheck // a missing .env file is normal

	cfg := Server{
		Addr:           getString("FESTDRAFT_ADDR", ":8080"),
		Environment:    getString("FESTDRAFT_ENV", "dev"),
		JWTSigningKey:  getString("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TokenTTL:       getDuration("TOKEN_TTL", TokenTTL),
		SessionTTL:     getDuration("SESSION_TTL", SessionTTL),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
		MaxBodyBytes:   getInt64("MAX_BODY_BYTES", 1<<20),
		SeedDemoData:   getBool("SEED_DEMO_DATA", true),
		SnowflakeNode:  getInt64("SNOWFLAKE_NODE", 1),
		Database: Database{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    int(getInt64("DATABASE_MAX_OPEN_CONNS", 25)),
			MaxIdleConns:    int(getInt64("DATABASE_MAX_IDLE_CONNS", 5)),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     int(getInt64("REDIS_POOL_SIZE", 10)),
			MinIdleConns: int(getInt64("REDIS_MIN_IDLE_CONNS", 2)),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Cleanup: Cleanup{Interval: getDuration("CLEANUP_INTERVAL", 5*time.Minute)},
		Log: Log{
			Level: getString("LOG_LEVEL", "info"),
			Dir:   os.Getenv("LOG_DIR"),
		},
	}
	cfg.Sessions = resolveSessionBackend(os.Getenv("SESSION_STORE"), cfg)
	return cfg
}

// resolveSessionBackend falls back to memory when the requested backend has
// no connection configured.
func resolveSessionBackend(requested string, cfg Server) SessionBackend {
	switch SessionBackend(requested) {
	case SessionsRedis:
		if cfg.Redis.URL != "" {
			return SessionsRedis
		}
	case SessionsPostgres:
		if cfg.Database.URL != "" {
			return SessionsPostgres
		}
	case SessionsMemory:
		return SessionsMemory
	case "":
		if cfg.Database.URL != "" {
			return SessionsPostgres
		}
	}
	return SessionsMemory
}

// IsProduction reports whether the server runs with production safeguards.
func (s Server) IsProduction() bool {
	return s.Environment == "prod" || s.Environment == "production"
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
