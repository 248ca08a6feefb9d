package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"festdraft/internal/client/api"
	"festdraft/internal/client/config"
	"festdraft/internal/client/session"
	"festdraft/internal/client/storage"
	"festdraft/internal/guard"
	"festdraft/internal/platform/logger"
)

var version = "dev"

var (
	errNotSignedIn = errors.New("not signed in; run 'draftctl login' first")
	errDenied      = errors.New("this command needs an administrator account")
	errExpired     = errors.New("your session has expired; run 'draftctl login' again")
)

// Guard levels carried in command annotations.
const (
	guardKey     = "festdraft.guard"
	guardSession = "session"
	guardAdmin   = "admin"
)

func requires(level string) map[string]string {
	return map[string]string{guardKey: level}
}

// globalFlags override the config file for one invocation.
type globalFlags struct {
	configPath string
	server     string
	profile    string
	output     string
	logLevel   string
	timeout    time.Duration
}

// app carries what every command needs. setup fills it before a command
// runs and close releases it afterwards.
type app struct {
	in     io.Reader
	lines  *bufio.Reader
	out    io.Writer
	errOut io.Writer
	flags  globalFlags

	cfg    *config.Config
	logger *slog.Logger
	store  storage.Profile
	client *api.Client
	gate   *session.Gate

	openStore    func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Profile, error)
	readPassword func() ([]byte, error)
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:           in,
		out:          out,
		errOut:       errOut,
		openStore:    openSQLite,
		readPassword: readTerminalPassword,
	}
}

func openSQLite(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Profile, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Profile), 0o700); err != nil {
		return nil, fmt.Errorf("create profile directory: %w", err)
	}
	return storage.OpenSQLite(ctx, cfg.Profile,
		storage.WithLogger(logger),
		storage.WithPollInterval(cfg.PollInterval),
	)
}

func userAgent() string {
	return fmt.Sprintf("draftctl/%s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
}

// setup loads configuration, opens the profile and restores the session.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server = a.flags.server
	}
	if flags.Changed("profile") {
		cfg.Profile = a.flags.profile
	}
	if flags.Changed("output") {
		cfg.Output = a.flags.output
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.flags.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: logger.ParseLevel(cfg.LogLevel)}))

	ctx := cmd.Context()
	a.store, err = a.openStore(ctx, cfg, a.logger)
	if err != nil {
		return err
	}

	hc := &http.Client{
		Timeout:       cfg.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	a.client, err = api.New(cfg.Server,
		api.WithHTTPClient(hc),
		api.WithUserAgent(userAgent()),
		api.WithTokenSource(func() string { return a.gate.Token() }),
	)
	if err != nil {
		return err
	}

	a.gate = session.New(a.store, session.FromClient(a.client), session.WithLogger(a.logger))
	a.gate.Initialize(ctx)
	if err := a.gate.Wait(ctx); err != nil {
		return err
	}
	return a.authorize(cmd)
}

// authorize applies the command's guard annotation to the session.
func (a *app) authorize(cmd *cobra.Command) error {
	level, ok := cmd.Annotations[guardKey]
	if !ok {
		return nil
	}
	req := guard.RequireSession
	if level == guardAdmin {
		req = guard.RequireAdmin
	}
	out := guard.Decide(a.gate.GuardState(), req)
	switch out.Kind {
	case guard.Render:
		return nil
	case guard.Redirect:
		return errNotSignedIn
	case guard.Denied:
		return fmt.Errorf("%w; try 'draftctl home' for your %s page", errDenied, out.Location)
	default:
		return errors.New("session is still loading")
	}
}

// check turns a failed API call into what the user should see. A
// rejected credential ends the local session.
func (a *app) check(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) {
		a.gate.Logout(ctx)
		return errExpired
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message)
	}
	return err
}

func (a *app) close() {
	if a.gate != nil {
		a.gate.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.logger != nil {
			a.logger.Warn("failed to close profile", "error", err)
		}
	}
}
