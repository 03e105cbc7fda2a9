package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"udcf/internal/platform/metrics"
	dErrors "udcf/pkg/domain-errors"
)

// Log is the append-only decision log. Appends are synchronous: a decision
// must not take effect without a durable record, so there is no buffering
// and no best-effort path.
type Log struct {
	store   Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// LogOption configures the Log.
type LogOption func(*Log)

// WithMetrics sets the metrics instance for the log.
func WithMetrics(m *metrics.Metrics) LogOption {
	return func(l *Log) {
		l.metrics = m
	}
}

// WithLogger sets a logger for append failure reporting.
func WithLogger(logger *slog.Logger) LogOption {
	return func(l *Log) {
		l.logger = logger
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) LogOption {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLog constructs a decision log over the given store.
func NewLog(store Store, opts ...LogOption) *Log {
	l := &Log{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append validates the input, assigns ID and UTC timestamp, and persists the
// entry. The returned entry includes the store-assigned sequence number.
// Any failure here must fail the caller's access attempt.
func (l *Log) Append(ctx context.Context, input EntryInput) (*Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:         uuid.New(),
		Timestamp:  l.now().UTC(),
		OwnerID:    input.OwnerID,
		CallerID:   input.CallerID,
		CallerName: input.CallerName,
		Purpose:    input.Purpose,
		Category:   input.Category,
		Outcome:    input.Outcome,
		Reason:     input.Reason,
		RequestID:  input.RequestID,
		Client:     input.Client,
	}

	if err := l.store.Append(ctx, entry); err != nil {
		if l.logger != nil {
			l.logger.ErrorContext(ctx, "failed to persist audit entry",
				"error", err,
				"owner_id", input.OwnerID.String(),
				"caller_id", input.CallerID.String(),
			)
		}
		if l.metrics != nil {
			l.metrics.IncrementAuditAppendFailures()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to persist audit entry")
	}

	if l.metrics != nil {
		l.metrics.IncrementAuditEntriesAppended()
	}
	return entry, nil
}

// List returns entries most recent first, optionally filtered.
func (l *Log) List(ctx context.Context, filter Filter) ([]Entry, error) {
	entries, err := l.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to list audit entries")
	}
	return entries, nil
}

// Summarize aggregates decision counts with Timestamp >= since.
func (l *Log) Summarize(ctx context.Context, since time.Time) (Summary, error) {
	summary, err := l.store.Summarize(ctx, since)
	if err != nil {
		return Summary{}, dErrors.Wrap(err, dErrors.CodeStorage, "failed to summarize audit entries")
	}
	return summary, nil
}
