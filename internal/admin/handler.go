package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"festdraft/internal/guard"
	dErrors "festdraft/pkg/domain-errors"
	"festdraft/pkg/platform/httputil"
	"festdraft/pkg/requestcontext"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the landing routes behind their guards.
func (h *Handler) Register(r chi.Router) {
	r.With(guard.Middleware(guard.RequireAdmin, h.logger)).Get(guard.PathAdmin, h.HandleDashboard)
	r.With(guard.Middleware(guard.RequireSession, h.logger)).Get(guard.PathTeam, h.HandleTeamHome)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.service.Dashboard(ctx, userID)
	if err != nil {
		h.fail(w, r, "dashboard failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleTeamHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.service.TeamHome(ctx, userID)
	if err != nil {
		h.fail(w, r, "team home failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	httputil.WriteError(w, err)
}
