package decision

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelCodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"udcf/internal/audit"
	"udcf/internal/platform/metrics"
	"udcf/internal/platform/middleware"
	"udcf/internal/policy"
	id "udcf/pkg/domain"
)

// ConsentSource provides the owner's current consent state. Owners who have
// never recorded consent come back all-false, never as an error.
type ConsentSource interface {
	Snapshot(ctx context.Context, ownerID id.OwnerID) (policy.Consent, error)
}

// Recorder persists decisions to the audit trail.
type Recorder interface {
	Append(ctx context.Context, input audit.EntryInput) (*audit.Entry, error)
}

// Service evaluates access attempts. Every evaluation produces exactly one
// audit entry; if the entry cannot be persisted, the attempt fails rather
// than proceed unrecorded.
type Service struct {
	consent ConsentSource
	engine  *policy.Engine
	trail   Recorder
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer allows injecting a pre-configured tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs the decision service.
func NewService(consent ConsentSource, engine *policy.Engine, trail Recorder, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		consent: consent,
		engine:  engine,
		trail:   trail,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("udcf/decision")
	}
	return s
}

// Check evaluates one access attempt and records the outcome. The consent
// gate runs before the purpose gate, so a missing consent masks any policy
// violation in the reported reason. The returned result carries the audit
// entry ID so callers can reference the record.
func (s *Service) Check(ctx context.Context, req Request) (result *Result, err error) {
	start := s.now()

	ctx, span := s.tracer.Start(ctx, "decision.Check", trace.WithAttributes(
		attribute.String("decision.purpose", string(req.Purpose)),
		attribute.String("decision.category", string(req.Category)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelCodes.Error, err.Error())
		}
		span.End()
	}()

	consent, err := s.consent.Snapshot(ctx, req.OwnerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load consent for access check",
			"error", err,
			"owner_id", req.OwnerID.String(),
		)
		return nil, err
	}

	verdict := s.engine.Evaluate(consent, req.Purpose, req.Category)
	span.SetAttributes(attribute.String("decision.outcome", string(verdict.Outcome)))

	entry, err := s.trail.Append(ctx, audit.EntryInput{
		OwnerID:    req.OwnerID,
		CallerID:   req.CallerID,
		CallerName: req.CallerName,
		Purpose:    req.Purpose,
		Category:   req.Category,
		Outcome:    verdict.Outcome,
		Reason:     verdict.Reason,
		RequestID:  middleware.GetRequestID(ctx),
		Client:     middleware.GetClientInfo(ctx).String(),
	})
	if err != nil {
		// An unrecorded decision must not take effect.
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementAccessChecks(string(verdict.Outcome), string(req.Purpose))
		s.metrics.ObserveAccessCheckLatency(s.now().Sub(start).Seconds())
	}

	s.logger.InfoContext(ctx, "access check evaluated",
		"owner_id", req.OwnerID.String(),
		"caller_id", req.CallerID.String(),
		"purpose", string(req.Purpose),
		"category", string(req.Category),
		"decision", string(verdict.Outcome),
		"log_id", entry.ID.String(),
	)

	return &Result{
		Outcome: verdict.Outcome,
		Reason:  verdict.Reason,
		LogID:   entry.ID,
	}, nil
}
