package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/segmentio/ksuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"festdraft/internal/client/storage/migrations"
)

const defaultPollInterval = time.Second

// SQLiteStore keeps the profile in a SQLite file. Several processes may open
// the same file; each row remembers its revision and the instance that last
// wrote it, which is how external changes are told apart from our own.
type SQLiteStore struct {
	db           *sql.DB
	path         string
	writer       string
	logger       *slog.Logger
	pollInterval time.Duration

	mu      sync.Mutex
	closed  bool
	subs    map[int]subscription
	nextSub int
	seen    map[string]int64
	stop    chan struct{}
	done    chan struct{}
}

var _ Profile = (*SQLiteStore)(nil)

type Option func(*SQLiteStore)

func WithLogger(logger *slog.Logger) Option {
	return func(s *SQLiteStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPollInterval sets how often watched keys are re-read when no file
// event arrives.
func WithPollInterval(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithWriterID fixes the instance identity; a random KSUID is used otherwise.
func WithWriterID(writer string) Option {
	return func(s *SQLiteStore) {
		if writer != "" {
			s.writer = writer
		}
	}
}

// migrateMu serializes goose, whose configuration is package-global.
var migrateMu sync.Mutex

func migrate(ctx context.Context, db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the profile at path.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, err
	}

	s := &SQLiteStore{
		db:           db,
		path:         path,
		writer:       ksuid.New().String(),
		logger:       slog.Default(),
		pollInterval: defaultPollInterval,
		subs:         make(map[int]subscription),
		seen:         make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Writer is this instance's identity as recorded on the rows it writes.
func (s *SQLiteStore) Writer() string { return s.writer }

func (s *SQLiteStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	return s.write(ctx, key, value)
}

// Remove leaves a tombstone row so other instances can see who removed it.
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	return s.write(ctx, key, nil)
}

func (s *SQLiteStore) write(ctx context.Context, key string, value []byte) error {
	if s.isClosed() {
		return ErrClosed
	}
	var revision int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO kv (key, value, revision, writer, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			revision = kv.revision + 1,
			writer = excluded.writer,
			updated_at = excluded.updated_at
		RETURNING revision`,
		key, value, s.writer, time.Now().UTC(),
	).Scan(&revision)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}

	s.mu.Lock()
	if _, watched := s.seen[key]; watched {
		s.seen[key] = revision
	}
	s.mu.Unlock()
	return nil
}

// OnExternalChange starts the change watcher on first use.
func (s *SQLiteStore) OnExternalChange(key string, fn ChangeFunc) func() {
	revision, _, _ := s.current(context.Background(), key)

	s.mu.Lock()
	s.nextSub++
	subID := s.nextSub
	s.subs[subID] = subscription{key: key, fn: fn}
	if _, ok := s.seen[key]; !ok {
		s.seen[key] = revision
	}
	if s.stop == nil && !s.closed {
		s.stop = make(chan struct{})
		s.done = make(chan struct{})
		go s.watch(s.stop, s.done)
	}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, subID)
			s.mu.Unlock()
		})
	}
}

// current reads the row state of key; a missing row is revision 0.
func (s *SQLiteStore) current(ctx context.Context, key string) (int64, string, []byte) {
	var (
		revision int64
		writer   string
		value    []byte
	)
	err := s.db.QueryRowContext(ctx, `SELECT revision, writer, value FROM kv WHERE key = ?`, key).
		Scan(&revision, &writer, &value)
	if err != nil {
		return 0, "", nil
	}
	return revision, writer, value
}

// poll re-reads every watched key and reports revisions written elsewhere.
func (s *SQLiteStore) poll(ctx context.Context) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.seen))
	for key := range s.seen {
		keys = append(keys, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		revision, writer, value := s.current(ctx, key)

		s.mu.Lock()
		if s.closed || revision == s.seen[key] {
			s.mu.Unlock()
			continue
		}
		s.seen[key] = revision
		var notify []ChangeFunc
		if writer != s.writer {
			for _, sub := range s.subs {
				if sub.key == key {
					notify = append(notify, sub.fn)
				}
			}
		}
		s.mu.Unlock()

		for _, fn := range notify {
			fn(clone(value))
		}
	}
}

// Close stops the watcher and closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	stop, done := s.stop, s.done
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	return s.db.Close()
}
