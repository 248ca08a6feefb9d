package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"festdraft/internal/guard"
	adminmw "festdraft/pkg/platform/middleware/admin"
	authmw "festdraft/pkg/platform/middleware/auth"
	request "festdraft/pkg/platform/middleware/request"
)

// APIPrefix is where the JSON collaborators live.
const APIPrefix = "/api"

// Registrar mounts a domain's routes on a router.
type Registrar interface {
	Register(r chi.Router)
}

// AuthRoutes is implemented by the auth handler, which spans all three
// access levels.
type AuthRoutes interface {
	Registrar
	RegisterAuthenticated(r chi.Router)
	RegisterAdmin(r chi.Router)
}

// RosterRoutes serves reads to any session and mutations to admins.
type RosterRoutes interface {
	Registrar
	RegisterAdmin(r chi.Router)
}

// Dependencies is everything the router needs from main.
type Dependencies struct {
	Logger    *slog.Logger
	Validator authmw.JWTValidator
	Sessions  authmw.SessionChecker
	Metrics   *request.Metrics

	Auth    AuthRoutes
	Roster  RosterRoutes
	Landing Registrar
	Health  Registrar

	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter wires every endpoint with the shared middleware stack.
//
// /api/auth/login is public; the rest of /api needs a bearer token, and
// roster mutations plus account management need the admin role. The landing
// surface (/, /login, /admin, /team) authenticates leniently so the route
// guard can redirect anonymous callers instead of answering 401.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.ClientMetadata)
	r.Use(request.RequestTime)
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(deps.Metrics))

	if deps.Health != nil {
		deps.Health.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(api chi.Router) {
		api.Use(request.Timeout(timeout))
		if deps.MaxBodyBytes > 0 {
			api.Use(request.BodyLimit(deps.MaxBodyBytes))
		}
		api.Use(request.ContentTypeJSON)

		deps.Auth.Register(api)
		api.Group(func(authed chi.Router) {
			authed.Use(authmw.RequireAuth(deps.Validator, deps.Sessions, logger))
			deps.Auth.RegisterAuthenticated(authed)
			deps.Roster.Register(authed)

			authed.Group(func(admin chi.Router) {
				admin.Use(adminmw.RequireAdmin(logger))
				deps.Auth.RegisterAdmin(admin)
				deps.Roster.RegisterAdmin(admin)
			})
		})
		api.NotFound(guard.NotFound)
	})

	r.Group(func(pages chi.Router) {
		pages.Use(authmw.Authenticate(deps.Validator, deps.Sessions, logger))
		pages.Get("/", guard.RootRedirect)
		pages.Get(guard.PathLogin, guard.LoginPage(APIPrefix+"/auth/login"))
		if deps.Landing != nil {
			deps.Landing.Register(pages)
		}
	})
	r.NotFound(guard.NotFound)

	return r
}
