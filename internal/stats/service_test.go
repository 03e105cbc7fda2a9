package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udcf/internal/audit"
	"udcf/internal/policy"
	id "udcf/pkg/domain"
)

type failingSummarizer struct {
	err error
}

func (s *failingSummarizer) Summarize(context.Context, time.Time) (audit.Summary, error) {
	return audit.Summary{}, s.err
}

func appendDecision(t *testing.T, store *audit.InMemoryStore, outcome policy.Outcome, at time.Time) {
	t.Helper()
	err := store.Append(context.Background(), &audit.Entry{
		ID:        uuid.New(),
		Timestamp: at,
		OwnerID:   id.OwnerID("alice"),
		CallerID:  id.CallerID("svc-analytics"),
		Purpose:   policy.PurposeAnalytics,
		Category:  policy.CategoryUsage,
		Outcome:   outcome,
		Reason:    "test decision",
	})
	require.NoError(t, err)
}

func TestService_DailyCountsSinceUTCMidnight(t *testing.T) {
	store := audit.NewInMemoryStore()
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	midnight := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	appendDecision(t, store, policy.OutcomeAllow, midnight.Add(-time.Hour))
	appendDecision(t, store, policy.OutcomeAllow, midnight.Add(time.Hour))
	appendDecision(t, store, policy.OutcomeAllow, midnight.Add(2*time.Hour))
	appendDecision(t, store, policy.OutcomeBlock, midnight.Add(3*time.Hour))

	service := NewService(store, WithClock(func() time.Time { return now }))

	daily, err := service.Daily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Total: 3, Allowed: 2, Blocked: 1}, daily)
}

func TestService_DailyBoundaryIsInclusive(t *testing.T) {
	store := audit.NewInMemoryStore()
	midnight := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	appendDecision(t, store, policy.OutcomeAllow, midnight)

	service := NewService(store, WithClock(func() time.Time { return midnight.Add(time.Minute) }))

	daily, err := service.Daily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), daily.Total, "entry logged exactly at midnight counts for that day")
}

func TestService_DailyUsesUTCRegardlessOfLocalClock(t *testing.T) {
	store := audit.NewInMemoryStore()
	// 01:30 on March 15 in UTC+4 is still 21:30 on March 14 in UTC.
	local := time.Date(2026, time.March, 15, 1, 30, 0, 0, time.FixedZone("UTC+4", 4*3600))

	appendDecision(t, store, policy.OutcomeAllow, time.Date(2026, time.March, 14, 20, 0, 0, 0, time.UTC))

	service := NewService(store, WithClock(func() time.Time { return local }))

	daily, err := service.Daily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), daily.Total)
}

func TestService_AllTimeSpansWholeLog(t *testing.T) {
	store := audit.NewInMemoryStore()
	old := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	appendDecision(t, store, policy.OutcomeAllow, old)
	appendDecision(t, store, policy.OutcomeBlock, time.Now().UTC())

	service := NewService(store)

	allTime, err := service.AllTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Total: 2, Allowed: 1, Blocked: 1}, allTime)
}

func TestService_GetOverview(t *testing.T) {
	store := audit.NewInMemoryStore()
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	midnight := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	appendDecision(t, store, policy.OutcomeBlock, midnight.Add(-time.Hour))
	appendDecision(t, store, policy.OutcomeAllow, midnight.Add(time.Hour))
	appendDecision(t, store, policy.OutcomeBlock, midnight.Add(2*time.Hour))

	service := NewService(store, WithClock(func() time.Time { return now }))

	overview, err := service.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Total: 2, Allowed: 1, Blocked: 1}, overview.Daily)
	assert.Equal(t, Snapshot{Total: 3, Allowed: 1, Blocked: 2}, overview.AllTime)
	assert.InDelta(t, 2.0/3.0, overview.BlockRate, 1e-9)
}

func TestService_GetOverviewEmptyLog(t *testing.T) {
	service := NewService(audit.NewInMemoryStore())

	overview, err := service.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Snapshot{}, overview.Daily)
	assert.Equal(t, Snapshot{}, overview.AllTime)
	assert.Zero(t, overview.BlockRate, "empty log has no block rate, not a division by zero")
}

func TestService_PropagatesSummarizerFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	service := NewService(&failingSummarizer{err: storeErr})

	_, err := service.Daily(context.Background())
	assert.ErrorIs(t, err, storeErr)

	_, err = service.GetOverview(context.Background())
	assert.ErrorIs(t, err, storeErr)
}
