package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"udcf/internal/audit"
)

// Summarizer aggregates decision counts from the audit trail. Stats are
// always derived from the log; there is no separate counter state to drift
// out of sync.
type Summarizer interface {
	Summarize(ctx context.Context, since time.Time) (audit.Summary, error)
}

// Snapshot is one aggregation window of the decision log.
type Snapshot struct {
	Total   int64
	Allowed int64
	Blocked int64
}

// Overview combines both windows with the overall block rate.
type Overview struct {
	Daily     Snapshot
	AllTime   Snapshot
	BlockRate float64
}

// Service computes access statistics over the audit trail.
type Service struct {
	audit Summarizer
	now   func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a stats service over the given summarizer.
func NewService(audit Summarizer, opts ...Option) *Service {
	s := &Service{audit: audit, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// midnightUTC truncates t to the start of its UTC day. The daily window is
// defined in UTC regardless of server locale, so two servers in different
// timezones report identical daily stats.
func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Daily returns counts for entries logged since UTC midnight.
func (s *Service) Daily(ctx context.Context) (Snapshot, error) {
	summary, err := s.audit.Summarize(ctx, midnightUTC(s.now()))
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot(summary), nil
}

// AllTime returns counts over the whole decision log.
func (s *Service) AllTime(ctx context.Context) (Snapshot, error) {
	summary, err := s.audit.Summarize(ctx, time.Time{})
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot(summary), nil
}

// GetOverview returns both windows plus the overall block rate. The two
// summaries are independent scans, so they run concurrently.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	var daily, allTime Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.Daily(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		allTime, err = s.AllTime(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &Overview{Daily: daily, AllTime: allTime}
	if allTime.Total > 0 {
		overview.BlockRate = float64(allTime.Blocked) / float64(allTime.Total)
	}
	return overview, nil
}
