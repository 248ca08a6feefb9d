// Package session is the operator's signed-in identity on the client side.
//
// A Gate restores the stored session optimistically, re-validates it with
// the server in the background, and persists logins and logouts so every
// view sharing the storage profile agrees on who is signed in.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	authmodels "festdraft/internal/auth/models"
	"festdraft/internal/client/api"
	"festdraft/internal/client/storage"
	"festdraft/internal/guard"
	id "festdraft/pkg/domain"
)

// Storage keys shared with the web front end.
const (
	KeyUser  = "fms_user"
	KeyToken = "token"
)

// Session is the persisted identity of the signed-in operator.
type Session struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"displayName"`
	Role        id.Role `json:"role"`
	TeamID      string  `json:"teamId,omitempty"`
	Team        string  `json:"team,omitempty"`
	Avatar      string  `json:"avatar,omitempty"`
}

func fromProfile(p authmodels.UserProfile) (*Session, error) {
	role, err := id.ParseRole(p.Role)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        role,
		TeamID:      p.TeamID,
		Team:        p.Team,
		Avatar:      p.Avatar,
	}, nil
}

// normalize rejects records that are not usable identities and maps legacy
// role names onto the current ones.
func (s *Session) normalize() error {
	if s == nil || s.ID == "" {
		return errors.New("session record has no id")
	}
	role, err := id.ParseRole(string(s.Role))
	if err != nil {
		return err
	}
	s.Role = role
	return nil
}

// State is where the gate is in its lifecycle.
type State int

const (
	Initializing State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Gate owns the current session. It is safe for concurrent use.
type Gate struct {
	store  storage.Store
	auth   Authenticator
	logger *slog.Logger

	mu         sync.RWMutex
	state      State
	session    *Session
	token      string
	started    bool
	generation uint64
	ready      chan struct{}
	readyOnce  sync.Once

	loginMu sync.Mutex
	wg      sync.WaitGroup
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New returns a gate in the Initializing state. Call Initialize to restore
// a stored session.
func New(store storage.Store, auth Authenticator, opts ...Option) *Gate {
	g := &Gate{
		store:  store,
		auth:   auth,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:  Initializing,
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Initialize restores the stored session. A complete record is adopted at
// once and re-validated in the background; Loading stays true until the
// server answers. A missing or unreadable record settles the gate as
// unauthenticated. Later calls are no-ops.
func (g *Gate) Initialize(ctx context.Context) {
	g.mu.Lock()
	if g.started {
		g.mu.Unlock()
		return
	}
	g.started = true
	gen := g.generation
	g.mu.Unlock()

	sess, token := g.restore(ctx)
	if sess == nil {
		g.settle(gen, nil, "")
		return
	}

	g.mu.Lock()
	if g.generation != gen {
		g.mu.Unlock()
		return
	}
	g.session, g.token = sess, token
	g.mu.Unlock()

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.revalidate(ctx, gen, token)
	}()
}

// restore reads the stored record. Anything unusable is cleared.
func (g *Gate) restore(ctx context.Context) (*Session, string) {
	sess, err := storage.GetJSON[*Session](ctx, g.store, KeyUser, nil)
	if err != nil {
		g.logger.Warn("stored session unreadable", "error", err)
		g.clearStored(ctx)
		return nil, ""
	}
	raw, err := g.store.Get(ctx, KeyToken)
	if err != nil {
		g.logger.Warn("stored token unreadable", "error", err)
		return nil, ""
	}
	token := strings.TrimSpace(string(raw))
	if sess == nil && token == "" {
		return nil, ""
	}
	if sess == nil || token == "" {
		g.logger.Info("discarding incomplete stored session")
		g.clearStored(ctx)
		return nil, ""
	}
	if err := sess.normalize(); err != nil {
		g.logger.Warn("discarding stored session", "error", err)
		g.clearStored(ctx)
		return nil, ""
	}
	return sess, token
}

// revalidate confirms token with the server. Any failure ends the session
// quietly; a reply that arrives after a login or logout is ignored.
func (g *Gate) revalidate(ctx context.Context, gen uint64, token string) {
	profile, err := g.auth.Profile(ctx, token)
	if ctx.Err() != nil {
		// nobody is waiting; leave the stored record for the next start
		g.settle(gen, nil, "")
		return
	}
	var sess *Session
	if err == nil {
		sess, err = fromProfile(*profile)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.generation != gen {
		g.logger.Debug("discarding stale session check")
		return
	}
	persistCtx := context.WithoutCancel(ctx)
	if err != nil {
		g.logger.Info("stored session no longer valid", "error", err)
		g.clearStoredLocked(persistCtx)
		g.commitLocked(nil, "")
		return
	}
	if err := storage.SetJSON(persistCtx, g.store, KeyUser, sess); err != nil {
		g.logger.Warn("failed to refresh stored session", "error", err)
	}
	g.commitLocked(sess, token)
}

// settle finishes initialization unless a login or logout overtook it.
func (g *Gate) settle(gen uint64, sess *Session, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.generation != gen {
		return
	}
	g.commitLocked(sess, token)
}

func (g *Gate) commitLocked(sess *Session, token string) {
	g.session, g.token = sess, token
	if sess != nil {
		g.state = Authenticated
	} else {
		g.state = Unauthenticated
	}
	g.readyOnce.Do(func() { close(g.ready) })
}

func (g *Gate) clearStored(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearStoredLocked(ctx)
}

// clearStoredLocked removes the user record before the token so watchers
// keyed on the record see the logout.
func (g *Gate) clearStoredLocked(ctx context.Context) {
	if err := g.store.Remove(ctx, KeyUser); err != nil {
		g.logger.Warn("failed to remove stored session", "error", err)
	}
	if err := g.store.Remove(ctx, KeyToken); err != nil {
		g.logger.Warn("failed to remove stored token", "error", err)
	}
}

// Wait blocks until the gate has left the Initializing state.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close waits for a pending re-validation to finish.
func (g *Gate) Close() {
	g.wg.Wait()
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Loading is true until the initial session check completes.
func (g *Gate) Loading() bool {
	return g.State() == Initializing
}

// Current returns a copy of the session, or nil. While loading it is the
// optimistically restored record.
func (g *Gate) Current() *Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session == nil {
		return nil
	}
	cp := *g.session
	return &cp
}

func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

func (g *Gate) IsAdmin() bool {
	s := g.Current()
	return s != nil && s.Role.IsAdmin()
}

func (g *Gate) IsTeamManager() bool {
	s := g.Current()
	return s != nil && s.Role.IsTeamManager()
}

// GuardState is the view of the gate the route guard decides on.
func (g *Gate) GuardState() guard.GateState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	st := guard.GateState{
		Loading:       g.state == Initializing,
		Authenticated: g.state == Authenticated,
	}
	if g.session != nil && g.state == Authenticated {
		st.Role = g.session.Role
	}
	return st
}

// Login signs in with email and password. It never returns an error:
// failures come back in the result with a message safe to show the user.
// A second call while one is in flight fails with FailureBusy.
func (g *Gate) Login(ctx context.Context, email, password string) LoginResult {
	if !g.loginMu.TryLock() {
		return failed(FailureBusy)
	}
	defer g.loginMu.Unlock()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return failed(FailureInvalidInput)
	}

	res, err := g.auth.Login(ctx, email, password)
	if err != nil {
		kind := classify(err)
		g.logger.Info("login failed", "kind", kind.String(), "error", err)
		return failed(kind)
	}
	if res.Token == "" {
		g.logger.Warn("login reply carried no token")
		return failed(FailureServer)
	}
	sess, err := fromProfile(res.User)
	if err != nil {
		g.logger.Warn("login reply carried an unusable role", "error", err)
		return failed(FailureServer)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	persistCtx := context.WithoutCancel(ctx)
	if err := g.persistLocked(persistCtx, sess, res.Token); err != nil {
		g.logger.Error("failed to store session", "error", err)
		return failed(FailureStorage)
	}
	g.generation++
	g.commitLocked(sess, res.Token)

	cp := *sess
	return LoginResult{OK: true, Session: &cp}
}

// persistLocked writes the token before the user record; a watcher that
// sees the record can rely on the token already being there.
func (g *Gate) persistLocked(ctx context.Context, sess *Session, token string) error {
	if err := g.store.Set(ctx, KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := storage.SetJSON(ctx, g.store, KeyUser, sess); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Logout ends the session locally and then tells the server, best effort.
// It is safe to call when nobody is signed in.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	token := g.token
	g.generation++
	g.clearStoredLocked(context.WithoutCancel(ctx))
	g.commitLocked(nil, "")
	g.mu.Unlock()

	if token == "" {
		return
	}
	if err := g.auth.Logout(ctx, token); err != nil && !api.IsUnauthorized(err) {
		g.logger.Info("server logout failed", "error", err)
	}
}

// Follow adopts logins and logouts made by other views of the same
// profile. The returned func stops following.
func (g *Gate) Follow(w storage.Watcher) (cancel func()) {
	return w.OnExternalChange(KeyUser, func(value []byte) {
		if value == nil {
			g.adopt(nil, "")
			return
		}
		sess, ok := storage.DecodeJSON[*Session](value)
		if !ok || sess.normalize() != nil {
			g.logger.Warn("ignoring unreadable session written by another view")
			return
		}
		raw, err := g.store.Get(context.Background(), KeyToken)
		if err != nil || len(raw) == 0 {
			g.logger.Warn("session written by another view has no token", "error", err)
			return
		}
		g.adopt(sess, string(raw))
	})
}

func (g *Gate) adopt(sess *Session, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	g.commitLocked(sess, token)
}

// classify maps a login error onto a failure kind.
func classify(err error) FailureKind {
	switch {
	case api.IsNetwork(err):
		return FailureNetwork
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureNetwork
	}
	switch api.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusBadRequest, http.StatusNotFound:
		return FailureCredentials
	default:
		return FailureServer
	}
}
