package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udcf/internal/policy"
	id "udcf/pkg/domain"
	dErrors "udcf/pkg/domain-errors"
)

type failingStore struct {
	err error
}

func (s *failingStore) Append(context.Context, *Entry) error { return s.err }

func (s *failingStore) List(context.Context, Filter) ([]Entry, error) { return nil, s.err }

func (s *failingStore) Summarize(context.Context, time.Time) (Summary, error) {
	return Summary{}, s.err
}

func validInput() EntryInput {
	return EntryInput{
		OwnerID:    id.OwnerID("alice"),
		CallerID:   id.CallerID("svc-analytics"),
		CallerName: "analytics pipeline",
		Purpose:    policy.PurposeAnalytics,
		Category:   policy.CategoryUsage,
		Outcome:    policy.OutcomeAllow,
		Reason:     "consent verified and purpose authorized",
		RequestID:  "req-1",
		Client:     "curl/linux/x86_64",
	}
}

func TestLog_AppendAssignsIdentityAndTimestamp(t *testing.T) {
	fixed := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	log := NewLog(NewInMemoryStore(), WithClock(func() time.Time { return fixed }))

	entry, err := log.Append(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, fixed, entry.Timestamp)
	assert.Equal(t, uint64(1), entry.Seq)
	assert.Equal(t, id.OwnerID("alice"), entry.OwnerID)
	assert.Equal(t, policy.OutcomeAllow, entry.Outcome)
}

func TestLog_AppendRejectsInvalidInput(t *testing.T) {
	log := NewLog(NewInMemoryStore())

	tests := []struct {
		name   string
		mutate func(*EntryInput)
	}{
		{"missing owner", func(in *EntryInput) { in.OwnerID = "" }},
		{"missing caller", func(in *EntryInput) { in.CallerID = "" }},
		{"unknown outcome", func(in *EntryInput) { in.Outcome = "MAYBE" }},
		{"empty reason", func(in *EntryInput) { in.Reason = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			entry, err := log.Append(context.Background(), input)
			require.Error(t, err)
			assert.Nil(t, entry)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}

	entries, err := log.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected inputs must never reach the log")
}

func TestLog_AppendPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	log := NewLog(&failingStore{err: storeErr})

	entry, err := log.Append(context.Background(), validInput())
	require.Error(t, err)
	assert.Nil(t, entry)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeStorage))
	assert.ErrorIs(t, err, storeErr)
}

func TestLog_ListAndSummarizeWrapStoreFailure(t *testing.T) {
	log := NewLog(&failingStore{err: errors.New("connection refused")})

	_, err := log.List(context.Background(), Filter{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeStorage))

	_, err = log.Summarize(context.Background(), time.Time{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeStorage))
}
