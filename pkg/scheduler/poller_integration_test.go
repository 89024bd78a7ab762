package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanstudy/ingest/pkg/domain"
	"github.com/hanstudy/ingest/pkg/feed"
	feedmocks "github.com/hanstudy/ingest/pkg/feed/mocks"
	"github.com/hanstudy/ingest/pkg/health"
	"github.com/hanstudy/ingest/pkg/repository"
	"github.com/hanstudy/ingest/pkg/source"
)

const integrationRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Flaky</title>
<item><title>Hello</title><link>https://example.com/hello</link><guid>hello-1</guid><description>Hello summary</description></item>
</channel></rss>`

func TestPoller_Integration(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(integrationRSS))
	}))
	defer ts.Close()

	searchHits := atomic.Int32{}
	searchTS := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searchHits.Add(1)
	}))
	defer searchTS.Close()

	reg, err := source.NewRegistry([]domain.SourceDefinition{
		{Key: "flaky", Type: domain.SourceTypeRSS, Endpoint: ts.URL, PollMinutes: 10, Enabled: true},
		{Key: "kw", Type: domain.SourceTypeSearch, Endpoint: searchTS.URL, PollMinutes: 10, Enabled: true},
	})
	require.NoError(t, err)

	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	bodies := &feedmocks.BodyFetcherMock{
		FetchArticleBodyFunc: func(ctx context.Context, url, fallback string) string { return fallback },
	}
	tracker := health.NewTracker(repos.Health, reg, health.Config{DegradeThreshold: 3})

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	var tick atomic.Int64
	poller := NewPoller(PollerParams{
		Registry: reg,
		Puller:   feed.New(feed.Options{Bodies: bodies, ProviderTimeout: time.Second}),
		Sink:     repos.Articles,
		Runs:     repos.Runs,
		Health:   tracker,
		Now:      func() time.Time { return base.Add(time.Duration(tick.Add(1)) * time.Minute) },
	})
	ctx := context.Background()

	t.Run("failure streak degrades source on threshold", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			res, err := poller.PollSource(ctx, "flaky")
			require.NoError(t, err)
			assert.Equal(t, domain.RunStatusError, res.Status)

			h, ok, err := repos.Health.GetHealth(ctx, "flaky")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, i, h.ConsecutiveFailures)
			assert.Equal(t, i == 3, h.Degraded, "poll %d", i)
			if i == 3 {
				require.NotNil(t, h.DegradedSince)
				assert.True(t, h.DegradedSince.Equal(res.StartedAt))
			}
		}
	})

	t.Run("success clears degraded state", func(t *testing.T) {
		failing.Store(false)
		res, err := poller.PollSource(ctx, "flaky")
		require.NoError(t, err)
		assert.Equal(t, domain.RunStatusOK, res.Status)
		assert.Equal(t, 1, res.Inserted)

		h, _, err := repos.Health.GetHealth(ctx, "flaky")
		require.NoError(t, err)
		assert.False(t, h.Degraded)
		assert.Nil(t, h.DegradedSince)
		assert.Zero(t, h.ConsecutiveFailures)
		assert.Equal(t, 4, h.TotalRuns)
		assert.Equal(t, 3, h.TotalFailures)

		res, err = poller.PollSource(ctx, "flaky")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Deduped, "same article again")

		count, err := repos.Articles.CountArticles(ctx, "flaky")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		runs, err := repos.Runs.RecentRuns(ctx, "flaky", 10)
		require.NoError(t, err)
		assert.Len(t, runs, 5)
	})

	t.Run("search without credentials is an ok run with no articles", func(t *testing.T) {
		res, err := poller.PollSource(ctx, "kw")
		require.NoError(t, err)
		assert.Equal(t, domain.RunStatusOK, res.Status)
		assert.Zero(t, res.Fetched)
		assert.Zero(t, searchHits.Load())

		h, ok, err := repos.Health.GetHealth(ctx, "kw")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, domain.RunStatusOK, h.LastStatus)
	})

	t.Run("health report joins registry", func(t *testing.T) {
		report, err := tracker.GetSourceHealth(ctx)
		require.NoError(t, err)
		require.Len(t, report, 2)
		assert.Equal(t, "flaky", report[0].SourceKey)
		assert.Equal(t, 5, report[0].TotalRuns)
		assert.Equal(t, "kw", report[1].SourceKey)
	})
}
