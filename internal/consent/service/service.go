package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"udcf/internal/consent/models"
	"udcf/internal/platform/metrics"
	"udcf/internal/policy"
	"udcf/internal/sentinel"
	id "udcf/pkg/domain"
	dErrors "udcf/pkg/domain-errors"
)

// Store defines the persistence interface for consent records.
// Error Contract:
// - FindByOwner returns sentinel.ErrNotFound when no record exists
// - Replace returns nil on success or wrapped errors on failure
type Store interface {
	Replace(ctx context.Context, record *models.Record) error
	FindByOwner(ctx context.Context, ownerID id.OwnerID) (*models.Record, error)
}

type Option func(*Service)

// Service persists consent decisions and enforces the wholesale-replacement rule.
type Service struct {
	store   Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithMetrics sets the metrics instance for the service
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
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

// Replace stores the owner's full consent record, creating it lazily on first
// write. The record is replaced wholesale; there is no per-category merge.
func (s *Service) Replace(ctx context.Context, ownerID id.OwnerID, categories policy.Consent) (*models.Record, error) {
	if ownerID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "owner ID cannot be empty")
	}

	record, err := models.NewRecord(ownerID, categories, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.store.Replace(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to store consent record")
	}

	if s.metrics != nil {
		s.metrics.IncrementConsentReplacements()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "consent record replaced",
			"owner_id", ownerID.String(),
			"categories", len(categories),
		)
	}
	return record, nil
}

// Get returns the owner's consent record, or the all-false default when no
// record exists. Absence is a valid state, never an error.
func (s *Service) Get(ctx context.Context, ownerID id.OwnerID) (*models.Record, error) {
	if ownerID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "owner ID cannot be empty")
	}

	record, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			record = models.Default(ownerID)
		} else {
			return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to read consent record")
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementConsentReads()
	}
	return record, nil
}

// Snapshot returns the owner's granted categories for policy evaluation.
func (s *Service) Snapshot(ctx context.Context, ownerID id.OwnerID) (policy.Consent, error) {
	record, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return record.Snapshot(), nil
}
