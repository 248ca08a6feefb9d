package guard

import (
	"log/slog"
	"net/http"

	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/platform/httputil"
	"festdraft/pkg/requestcontext"
)

// DeniedResponse is the body of an access-denied answer.
type DeniedResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Redirect         string `json:"redirect"`
}

// stateFromRequest reads the caller identity placed by the lenient auth
// middleware. A server request is never loading.
func stateFromRequest(r *http.Request) GateState {
	ctx := r.Context()
	return GateState{
		Authenticated: !requestcontext.UserID(ctx).IsNil(),
		Role:          requestcontext.Role(ctx),
	}
}

// Middleware enforces req on a route subtree. It must run after
// middleware/auth.Authenticate.
func Middleware(req Requirement, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out := Decide(stateFromRequest(r), req)
			switch out.Kind {
			case Render:
				next.ServeHTTP(w, r)
			case Denied:
				ctx := r.Context()
				logger.WarnContext(ctx, "route denied",
					"path", r.URL.Path,
					"role", requestcontext.Role(ctx).String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteJSON(w, http.StatusForbidden, DeniedResponse{
					Error:            "forbidden",
					ErrorDescription: "access denied",
					Redirect:         out.Location,
				})
			default:
				http.Redirect(w, r, out.Location, http.StatusSeeOther)
			}
		})
	}
}

// RootRedirect sends anonymous callers to the login route and signed-in
// callers to their landing route.
func RootRedirect(w http.ResponseWriter, r *http.Request) {
	state := stateFromRequest(r)
	target := PathLogin
	if state.Authenticated {
		target = Landing(state.Role)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// LoginPage tells anonymous callers where to send credentials, and sends
// signed-in callers home.
func LoginPage(loginEndpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := stateFromRequest(r)
		if state.Authenticated {
			http.Redirect(w, r, Landing(state.Role), http.StatusSeeOther)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"login": loginEndpoint,
		})
	}
}

// NotFound is the catch-all route.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "page not found"))
}
