package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"udcf/internal/consent/models"
	"udcf/internal/platform/middleware"
	"udcf/internal/policy"
	id "udcf/pkg/domain"
	"udcf/pkg/platform/httputil"
)

// Service defines the interface for consent operations.
type Service interface {
	Replace(ctx context.Context, ownerID id.OwnerID, categories policy.Consent) (*models.Record, error)
	Get(ctx context.Context, ownerID id.OwnerID) (*models.Record, error)
}

// Handler handles consent-related endpoints.
type Handler struct {
	logger  *slog.Logger
	consent Service
}

// New creates a new consent Handler.
func New(consent Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		consent: consent,
	}
}

// Register registers the consent routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Put("/consent/{ownerId}", h.handleReplaceConsent)
	r.Get("/consent/{ownerId}", h.handleGetConsent)
}

// handleReplaceConsent replaces the owner's full consent record.
func (h *Handler) handleReplaceConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	ownerID, err := id.ParseOwnerID(chi.URLParam(r, "ownerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.ReplaceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.consent.Replace(ctx, ownerID, req.ToConsent())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to replace consent record",
			"request_id", requestID,
			"owner_id", ownerID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.ToResponse(record))
}

// handleGetConsent returns the owner's consent record, defaulting to all-false.
func (h *Handler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	ownerID, err := id.ParseOwnerID(chi.URLParam(r, "ownerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.consent.Get(ctx, ownerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read consent record",
			"request_id", requestID,
			"owner_id", ownerID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.ToResponse(record))
}
