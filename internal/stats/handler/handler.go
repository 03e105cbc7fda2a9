package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"udcf/internal/platform/middleware"
	"udcf/internal/stats"
	dErrors "udcf/pkg/domain-errors"
	"udcf/pkg/platform/httputil"
)

// Service computes access statistics.
type Service interface {
	Daily(ctx context.Context) (stats.Snapshot, error)
	AllTime(ctx context.Context) (stats.Snapshot, error)
	GetOverview(ctx context.Context) (*stats.Overview, error)
}

// Handler exposes aggregated decision counts over HTTP.
type Handler struct {
	logger *slog.Logger
	stats  Service
}

// New constructs the stats handler.
func New(stats Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		stats:  stats,
	}
}

// Register mounts the stats routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stats", h.Get)
}

// SnapshotResponse is the wire shape of one aggregation window.
type SnapshotResponse struct {
	Scope   string `json:"scope"`
	Total   int64  `json:"totalChecks"`
	Allowed int64  `json:"allowed"`
	Blocked int64  `json:"blocked"`
}

// OverviewResponse combines both windows with the overall block rate.
type OverviewResponse struct {
	Daily     SnapshotResponse `json:"daily"`
	AllTime   SnapshotResponse `json:"allTime"`
	BlockRate float64          `json:"blockRate"`
}

func toSnapshotResponse(scope string, snapshot stats.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Scope:   scope,
		Total:   snapshot.Total,
		Allowed: snapshot.Allowed,
		Blocked: snapshot.Blocked,
	}
}

// Get handles GET /stats. With scope=daily or scope=alltime it returns that
// window alone; without a scope it returns the combined overview.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := r.URL.Query().Get("scope")

	switch scope {
	case "daily":
		snapshot, err := h.stats.Daily(ctx)
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toSnapshotResponse(scope, snapshot))
	case "alltime":
		snapshot, err := h.stats.AllTime(ctx)
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toSnapshotResponse(scope, snapshot))
	case "":
		overview, err := h.stats.GetOverview(ctx)
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, OverviewResponse{
			Daily:     toSnapshotResponse("daily", overview.Daily),
			AllTime:   toSnapshotResponse("alltime", overview.AllTime),
			BlockRate: overview.BlockRate,
		})
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "scope must be daily or alltime"))
	}
}

func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "failed to compute stats",
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	httputil.WriteError(w, err)
}
