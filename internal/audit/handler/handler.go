package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"udcf/internal/audit"
	"udcf/internal/platform/middleware"
	"udcf/internal/policy"
	id "udcf/pkg/domain"
	dErrors "udcf/pkg/domain-errors"
	"udcf/pkg/platform/httputil"
)

// Service reads the decision log.
type Service interface {
	List(ctx context.Context, filter audit.Filter) ([]audit.Entry, error)
}

// Handler exposes the audit trail over HTTP. The trail is read-only at this
// surface; entries are only ever written by the decision path.
type Handler struct {
	logger *slog.Logger
	audit  Service
}

// New constructs the audit handler.
func New(audit Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		audit:  audit,
	}
}

// Register mounts the audit routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit", h.List)
}

// EntryResponse is the wire shape of one audit entry.
type EntryResponse struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	OwnerID   string    `json:"ownerId"`
	CallerID  string    `json:"callerId"`
	Caller    string    `json:"callerName,omitempty"`
	Purpose   string    `json:"purpose"`
	Category  string    `json:"category"`
	Decision  string    `json:"decision"`
	Reason    string    `json:"reason"`
	RequestID string    `json:"requestId,omitempty"`
	Client    string    `json:"client,omitempty"`
}

// ListResponse wraps the entry list with its count.
type ListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Count   int             `json:"count"`
}

func toEntryResponse(entry audit.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID.String(),
		Seq:       entry.Seq,
		Timestamp: entry.Timestamp,
		OwnerID:   entry.OwnerID.String(),
		CallerID:  entry.CallerID.String(),
		Caller:    entry.CallerName,
		Purpose:   string(entry.Purpose),
		Category:  string(entry.Category),
		Decision:  string(entry.Outcome),
		Reason:    entry.Reason,
		RequestID: entry.RequestID,
		Client:    entry.Client,
	}
}

// List handles GET /audit. Entries come back most recent first and can be
// narrowed by ownerId and decision query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entries, err := h.audit.List(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list audit entries",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		httputil.WriteError(w, err)
		return
	}

	resp := ListResponse{Entries: make([]EntryResponse, 0, len(entries)), Count: len(entries)}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(entry))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func filterFromQuery(r *http.Request) (audit.Filter, error) {
	var filter audit.Filter

	if raw := r.URL.Query().Get("ownerId"); raw != "" {
		ownerID, err := id.ParseOwnerID(raw)
		if err != nil {
			return audit.Filter{}, err
		}
		filter.Owner = &ownerID
	}

	if raw := r.URL.Query().Get("decision"); raw != "" {
		outcome := policy.Outcome(raw)
		if outcome != policy.OutcomeAllow && outcome != policy.OutcomeBlock {
			return audit.Filter{}, dErrors.New(dErrors.CodeValidation, "decision must be ALLOW or BLOCK")
		}
		filter.Outcome = &outcome
	}

	return filter, nil
}
