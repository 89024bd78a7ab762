package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanstudy/ingest/pkg/domain"
)

func TestHealthRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	runAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing record", func(t *testing.T) {
		_, found, err := repos.Health.GetHealth(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("insert then versioned update", func(t *testing.T) {
		h := domain.SourceHealth{SourceKey: "a", TotalRuns: 1, TotalFailures: 1, ConsecutiveFailures: 1,
			LastRunAt: runAt, LastStatus: domain.RunStatusError, LastError: "boom", UpdatedAt: runAt}
		require.NoError(t, repos.Health.SaveHealth(ctx, h))

		stored, found, err := repos.Health.GetHealth(ctx, "a")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(1), stored.Version)
		assert.Equal(t, 1, stored.TotalRuns)
		assert.Equal(t, domain.RunStatusError, stored.LastStatus)
		assert.Equal(t, "boom", stored.LastError)
		assert.True(t, runAt.Equal(stored.LastRunAt))
		assert.Nil(t, stored.LastSuccessAt)
		assert.Nil(t, stored.DegradedSince)

		degradedAt := runAt.Add(time.Hour)
		stored.TotalRuns = 2
		stored.Degraded = true
		stored.DegradedSince = &degradedAt
		stored.LastSuccessAt = &runAt
		require.NoError(t, repos.Health.SaveHealth(ctx, stored))

		updated, _, err := repos.Health.GetHealth(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Version)
		assert.Equal(t, 2, updated.TotalRuns)
		assert.True(t, updated.Degraded)
		require.NotNil(t, updated.DegradedSince)
		assert.True(t, degradedAt.Equal(*updated.DegradedSince))
		require.NotNil(t, updated.LastSuccessAt)
		assert.True(t, runAt.Equal(*updated.LastSuccessAt))
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		stale, _, err := repos.Health.GetHealth(ctx, "a")
		require.NoError(t, err)

		fresh := stale
		fresh.TotalRuns++
		require.NoError(t, repos.Health.SaveHealth(ctx, fresh))

		stale.TotalRuns += 10
		err = repos.Health.SaveHealth(ctx, stale)
		require.ErrorIs(t, err, domain.ErrVersionConflict)

		current, _, err := repos.Health.GetHealth(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, fresh.TotalRuns, current.TotalRuns)
	})

	t.Run("second insert conflicts", func(t *testing.T) {
		err := repos.Health.SaveHealth(ctx, domain.SourceHealth{SourceKey: "a", TotalRuns: 1, LastRunAt: runAt})
		require.ErrorIs(t, err, domain.ErrVersionConflict)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, repos.Health.SaveHealth(ctx, domain.SourceHealth{SourceKey: "0-first", TotalRuns: 1, LastRunAt: runAt}))
		list, err := repos.Health.ListHealth(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "0-first", list[0].SourceKey)
		assert.Equal(t, "a", list[1].SourceKey)
	})
}
