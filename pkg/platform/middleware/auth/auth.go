package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "festdraft/pkg/domain"
	"festdraft/pkg/requestcontext"
)

// JWTValidator defines the interface for validating access tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// SessionChecker reports whether the server-side session behind a token
// is still live. A revoked session invalidates every token issued for it.
type SessionChecker interface {
	IsSessionActive(ctx context.Context, sessionID id.SessionID) (bool, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	UserID    string
	SessionID string
	Role      string
	TeamName  string
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// parsedClaims holds the typed values parsed from JWT claims.
type parsedClaims struct {
	UserID    id.UserID
	SessionID id.SessionID
	Role      id.Role
	TeamName  string
}

func parseClaims(claims *JWTClaims) (*parsedClaims, error) {
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	sessionID, err := id.ParseSessionID(claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session_id: %w", err)
	}
	role, err := id.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("invalid role: %w", err)
	}
	return &parsedClaims{UserID: userID, SessionID: sessionID, Role: role, TeamName: claims.TeamName}, nil
}

// failure is why a request could not be authenticated.
type failure struct {
	status int
	code   string
	desc   string
}

var (
	errMissingToken = &failure{http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header"}
	errInvalidToken = &failure{http.StatusUnauthorized, "unauthorized", "Invalid or expired token"}
	errRevoked      = &failure{http.StatusUnauthorized, "unauthorized", "Session has ended"}
	errCheckFailed  = &failure{http.StatusInternalServerError, "internal_error", "Failed to validate token"}
)

// authenticate validates the bearer token and returns a context carrying the caller identity.
func authenticate(r *http.Request, validator JWTValidator, sessions SessionChecker, logger *slog.Logger) (context.Context, *failure) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return ctx, errMissingToken
	}

	claims, err := validator.ValidateToken(token)
	if err != nil {
		logger.WarnContext(ctx, "unauthorized access - invalid token",
			"error", err,
			"request_id", requestID,
		)
		return ctx, errInvalidToken
	}

	parsed, err := parseClaims(claims)
	if err != nil {
		logger.WarnContext(ctx, "unauthorized access - malformed token claims",
			"error", err,
			"request_id", requestID,
		)
		return ctx, errInvalidToken
	}

	if sessions != nil {
		active, err := sessions.IsSessionActive(ctx, parsed.SessionID)
		if err != nil {
			logger.ErrorContext(ctx, "failed to check session state",
				"error", err,
				"request_id", requestID,
			)
			return ctx, errCheckFailed
		}
		if !active {
			logger.WarnContext(ctx, "unauthorized access - session revoked",
				"session_id", parsed.SessionID.String(),
				"request_id", requestID,
			)
			return ctx, errRevoked
		}
	}

	ctx = requestcontext.WithUserID(ctx, parsed.UserID)
	ctx = requestcontext.WithSessionID(ctx, parsed.SessionID)
	ctx = requestcontext.WithRole(ctx, parsed.Role)
	ctx = requestcontext.WithTeamName(ctx, parsed.TeamName)
	return ctx, nil
}

// RequireAuth rejects requests without a valid bearer token for a live session
// and stores the caller identity in the request context.
func RequireAuth(validator JWTValidator, sessions SessionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, fail := authenticate(r, validator, sessions, logger)
			if fail != nil {
				if fail == errMissingToken {
					logger.WarnContext(ctx, "unauthorized access - missing token",
						"request_id", requestcontext.RequestID(ctx),
					)
				}
				writeJSONError(w, fail.status, fail.code, fail.desc)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate is the lenient form of RequireAuth: a valid token populates
// the context, anything else passes the request through anonymously.
// Downstream handlers decide what an anonymous caller sees.
func Authenticate(validator JWTValidator, sessions SessionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, fail := authenticate(r, validator, sessions, logger)
			if fail != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
