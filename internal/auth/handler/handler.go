package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"festdraft/internal/auth/models"
	id "festdraft/pkg/domain"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/platform/httputil"
	"festdraft/pkg/requestcontext"
)

// Service defines the authentication and account operations exposed over HTTP.
type Service interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	Profile(ctx context.Context, userID id.UserID) (*models.UserProfile, error)
	Logout(ctx context.Context, sessionID id.SessionID) (*models.LogoutResult, error)
	Permissions(role id.Role) models.Permissions
	ListUsers(ctx context.Context) (*models.UsersResult, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserProfile, error)
	UpdateRole(ctx context.Context, userID id.UserID, req *models.UpdateRoleRequest) (*models.UserProfile, error)
}

// Handler serves the /auth endpoints.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the public routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// RegisterAuthenticated mounts routes that need a valid token. The parent
// router is responsible for applying the auth middleware.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Get("/auth/profile", h.HandleProfile)
	r.Post("/auth/logout", h.HandleLogout)
	r.Get("/auth/permissions", h.HandlePermissions)
}

// RegisterAdmin mounts account management; callers wrap it in RequireAdmin.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/auth/users", h.HandleListUsers)
	r.Post("/auth/users", h.HandleCreateUser)
	r.Patch("/auth/users/{user_id}/role", h.HandleUpdateRole)
}

// HandleLogin implements POST /auth/login.
//
// Input: { "email": "admin@example.com", "password": "..." }
// Output: { "user": {...}, "token": "...", "expiresAt": "..." }
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger)
	if !ok {
		return
	}

	res, err := h.auth.Login(ctx, req)
	if err != nil {
		h.logFailure(ctx, "login failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	profile, err := h.auth.Profile(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "profile lookup failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

// HandleLogout ends the caller's session. Repeating it is harmless.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := requestcontext.SessionID(ctx)
	if sessionID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing session"))
		return
	}

	res, err := h.auth.Logout(ctx, sessionID)
	if err != nil {
		h.logFailure(ctx, "logout failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandlePermissions(w http.ResponseWriter, r *http.Request) {
	role := requestcontext.Role(r.Context())
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"role":        role.String(),
		"permissions": h.auth.Permissions(role),
	})
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.auth.ListUsers(ctx)
	if err != nil {
		h.logFailure(ctx, "list users failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.CreateUserRequest](w, r, h.logger)
	if !ok {
		return
	}

	profile, err := h.auth.CreateUser(ctx, req)
	if err != nil {
		h.logFailure(ctx, "create user failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, profile)
}

func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user id"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateRoleRequest](w, r, h.logger)
	if !ok {
		return
	}

	profile, err := h.auth.UpdateRole(ctx, userID, req)
	if err != nil {
		h.logFailure(ctx, "update role failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}
