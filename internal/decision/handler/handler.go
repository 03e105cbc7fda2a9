package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"udcf/internal/decision"
	"udcf/internal/platform/middleware"
	"udcf/internal/policy"
	id "udcf/pkg/domain"
	dErrors "udcf/pkg/domain-errors"
	"udcf/pkg/platform/httputil"
)

// Service evaluates access attempts.
type Service interface {
	Check(ctx context.Context, req decision.Request) (*decision.Result, error)
}

// Handler exposes the access check endpoint.
type Handler struct {
	logger   *slog.Logger
	decision Service
}

// New constructs the decision handler.
func New(decision Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		decision: decision,
	}
}

// Register mounts the decision routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/access-check", h.Check)
}

// CheckRequest is the wire shape of an access attempt. Purpose and data
// category are closed enums: unrecognized values are rejected here, before
// anything reaches the decision path, so malformed requests never pollute
// the audit trail.
type CheckRequest struct {
	OwnerID    string `json:"ownerId"`
	CallerID   string `json:"callerId"`
	CallerName string `json:"callerName"`
	Purpose    string `json:"purpose"`
	Category   string `json:"category"`
}

// Normalize trims surrounding whitespace from identity fields.
func (req *CheckRequest) Normalize() {
	req.OwnerID = strings.TrimSpace(req.OwnerID)
	req.CallerID = strings.TrimSpace(req.CallerID)
	req.CallerName = strings.TrimSpace(req.CallerName)
}

// Validate checks field presence and enum membership.
func (req *CheckRequest) Validate() error {
	if req.OwnerID == "" {
		return dErrors.New(dErrors.CodeValidation, "ownerId is required")
	}
	if req.CallerID == "" {
		return dErrors.New(dErrors.CodeValidation, "callerId is required")
	}
	if !policy.Purpose(req.Purpose).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown purpose: "+req.Purpose)
	}
	if !policy.DataCategory(req.Category).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown data category: "+req.Category)
	}
	return nil
}

// ToRequest converts the validated wire request to the domain request.
func (req *CheckRequest) ToRequest() decision.Request {
	return decision.Request{
		OwnerID:    id.OwnerID(req.OwnerID),
		CallerID:   id.CallerID(req.CallerID),
		CallerName: req.CallerName,
		Purpose:    policy.Purpose(req.Purpose),
		Category:   policy.DataCategory(req.Category),
	}
}

// CheckResponse is the wire shape of a decision.
type CheckResponse struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
	LogID    string `json:"logId"`
}

// Check handles POST /access-check.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.decision.Check(ctx, req.ToRequest())
	if err != nil {
		h.logger.ErrorContext(ctx, "access check failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, CheckResponse{
		Decision: string(result.Outcome),
		Reason:   result.Reason,
		LogID:    result.LogID.String(),
	})
}
