package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udcf/internal/consent/models"
	"udcf/internal/policy"
	"udcf/internal/sentinel"
)

func TestInMemoryStoreOperations(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	// Replace and find
	record, err := models.NewRecord("alice", policy.Consent{policy.CategoryProfile: true}, now)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, record))

	fetched, err := store.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, fetched.Categories.Granted(policy.CategoryProfile))
	assert.False(t, fetched.Categories.Granted(policy.CategoryUsage))

	// Replace is wholesale: the previous grant does not survive
	updated, err := models.NewRecord("alice", policy.Consent{policy.CategoryUsage: true}, now.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, updated))

	fetched, err = store.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, fetched.Categories.Granted(policy.CategoryProfile))
	assert.True(t, fetched.Categories.Granted(policy.CategoryUsage))

	// Fetched copy integrity
	fetched.Categories[policy.CategoryProfile] = true
	again, err := store.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, again.Categories.Granted(policy.CategoryProfile))

	// Find non-existing
	noRecord, err := store.FindByOwner(ctx, "nobody")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Nil(t, noRecord)
}

func TestInMemoryStoreIdempotentReplace(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	record, err := models.NewRecord("alice", policy.Consent{policy.CategoryProfile: true}, now)
	require.NoError(t, err)

	require.NoError(t, store.Replace(ctx, record))
	require.NoError(t, store.Replace(ctx, record))

	fetched, err := store.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, record.Categories, fetched.Categories)
	assert.Equal(t, record.UpdatedAt, fetched.UpdatedAt)
}

// Concurrent readers must never observe a half-applied replacement.
func TestInMemoryStoreConcurrentReplace(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	allTrue, err := models.NewRecord("alice", policy.Consent{
		policy.CategoryProfile:   true,
		policy.CategoryUsage:     true,
		policy.CategoryAnalytics: true,
	}, now)
	require.NoError(t, err)
	allFalse, err := models.NewRecord("alice", policy.Consent{
		policy.CategoryProfile:   false,
		policy.CategoryUsage:     false,
		policy.CategoryAnalytics: false,
	}, now)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, allTrue))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(writer bool) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if writer {
					if j%2 == 0 {
						_ = store.Replace(ctx, allFalse)
					} else {
						_ = store.Replace(ctx, allTrue)
					}
					continue
				}
				record, err := store.FindByOwner(ctx, "alice")
				assert.NoError(t, err)
				granted := record.Categories.Granted(policy.CategoryProfile)
				assert.Equal(t, granted, record.Categories.Granted(policy.CategoryUsage))
				assert.Equal(t, granted, record.Categories.Granted(policy.CategoryAnalytics))
			}
		}(i%2 == 0)
	}
	wg.Wait()
}
