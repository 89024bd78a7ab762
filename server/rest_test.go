package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanstudy/ingest/pkg/domain"
	"github.com/hanstudy/ingest/pkg/scheduler"
	schedmocks "github.com/hanstudy/ingest/pkg/scheduler/mocks"
	"github.com/hanstudy/ingest/pkg/source"
	"github.com/hanstudy/ingest/server/mocks"
)

func serve(srv *Server, method, target, user, passwd string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	if user != "" {
		req.SetBasicAuth(user, passwd)
	}
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthHandler(t *testing.T) {
	ran := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	reporter := &mocks.HealthReporterMock{
		GetSourceHealthFunc: func(ctx context.Context) ([]domain.HealthReport, error) {
			return []domain.HealthReport{
				{SourceKey: "a", Name: "A", Enabled: true, PollMinutes: 15, DegradeThreshold: 3, TotalRuns: 4, ConsecutiveFailures: 3,
					Degraded: true, DegradedSince: &ran, LastRunAt: &ran, LastStatus: domain.RunStatusError, LastError: "HTTP 503"},
				{SourceKey: "b", Name: "b", PollMinutes: 60, DegradeThreshold: 3},
			}, nil
		},
	}
	srv := New(testConfig(":8080", ""), reporter, &mocks.RunReaderMock{}, &mocks.TriggersMock{}, "test", false)

	rec := serve(srv, http.MethodGet, "/api/v1/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report, 2)
	assert.Equal(t, "a", report[0]["sourceKey"])
	assert.Equal(t, true, report[0]["degraded"])
	assert.Equal(t, "2025-05-01T08:00:00Z", report[0]["degradedSince"])
	assert.Equal(t, "HTTP 503", report[0]["lastError"])
	_, hasLastRun := report[1]["lastRunAt"]
	assert.False(t, hasLastRun, "never-run source has no last run")

	t.Run("error", func(t *testing.T) {
		reporter.GetSourceHealthFunc = func(ctx context.Context) ([]domain.HealthReport, error) {
			return nil, errors.New("db down")
		}
		rec := serve(srv, http.MethodGet, "/api/v1/health", "", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "db down")
	})
}

func TestServer_RunsHandler(t *testing.T) {
	runs := &mocks.RunReaderMock{
		RecentRunsFunc: func(ctx context.Context, key string, limit int) ([]domain.RunRecord, error) {
			return []domain.RunRecord{{RunID: "r1", SourceKey: "a", Status: domain.RunStatusOK}}, nil
		},
	}
	srv := New(testConfig(":8080", ""), &mocks.HealthReporterMock{}, runs, &mocks.TriggersMock{}, "test", false)

	tests := []struct {
		name      string
		target    string
		code      int
		wantKey   string
		wantLimit int
	}{
		{name: "defaults", target: "/api/v1/runs", code: http.StatusOK, wantKey: "", wantLimit: 50},
		{name: "source and limit", target: "/api/v1/runs?source=a&limit=5", code: http.StatusOK, wantKey: "a", wantLimit: 5},
		{name: "limit capped", target: "/api/v1/runs?limit=10000", code: http.StatusOK, wantLimit: 500},
		{name: "bad limit", target: "/api/v1/runs?limit=x", code: http.StatusBadRequest},
		{name: "zero limit", target: "/api/v1/runs?limit=0", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(runs.RecentRunsCalls())
			rec := serve(srv, http.MethodGet, tt.target, "", "")
			require.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusOK {
				assert.Len(t, runs.RecentRunsCalls(), before)
				return
			}
			calls := runs.RecentRunsCalls()
			require.Len(t, calls, before+1)
			assert.Equal(t, tt.wantKey, calls[before].Key)
			assert.Equal(t, tt.wantLimit, calls[before].Limit)
			assert.Contains(t, rec.Body.String(), `"runId":"r1"`)
		})
	}
}

func TestServer_TriggerHandlers(t *testing.T) {
	triggers := &mocks.TriggersMock{
		TriggerSourceFunc: func(ctx context.Context, key string) (domain.TriggerResult, error) {
			switch key {
			case "missing":
				return domain.TriggerResult{}, scheduler.ErrSourceNotFound
			case "stopped":
				return domain.TriggerResult{}, scheduler.ErrStopped
			case "broken":
				return domain.TriggerResult{}, errors.New("boom")
			}
			return domain.TriggerResult{Scheduled: true, SourceKey: key}, nil
		},
		TriggerAllSourcesFunc: func(ctx context.Context, delay time.Duration) (domain.TriggerAllResult, error) {
			return domain.TriggerAllResult{Scheduled: 2, DelayMs: delay.Milliseconds()}, nil
		},
	}
	srv := New(testConfig(":8080", "secret"), &mocks.HealthReporterMock{}, &mocks.RunReaderMock{}, triggers, "test", false)

	tests := []struct {
		name   string
		target string
		user   string
		passwd string
		code   int
		body   string
	}{
		{name: "trigger source", target: "/api/v1/admin/sources/a/trigger", user: "admin", passwd: "secret",
			code: http.StatusAccepted, body: `{"scheduled":true,"sourceKey":"a"}`},
		{name: "unknown source", target: "/api/v1/admin/sources/missing/trigger", user: "admin", passwd: "secret", code: http.StatusNotFound},
		{name: "scheduler stopped", target: "/api/v1/admin/sources/stopped/trigger", user: "admin", passwd: "secret",
			code: http.StatusServiceUnavailable},
		{name: "trigger failure", target: "/api/v1/admin/sources/broken/trigger", user: "admin", passwd: "secret",
			code: http.StatusInternalServerError},
		{name: "trigger all", target: "/api/v1/admin/sources/trigger?delay_ms=1500", user: "admin", passwd: "secret",
			code: http.StatusAccepted, body: `{"scheduled":2,"delayMs":1500}`},
		{name: "trigger all without delay", target: "/api/v1/admin/sources/trigger", user: "admin", passwd: "secret",
			code: http.StatusAccepted, body: `{"scheduled":2,"delayMs":0}`},
		{name: "bad delay", target: "/api/v1/admin/sources/trigger?delay_ms=soon", user: "admin", passwd: "secret",
			code: http.StatusBadRequest},
		{name: "no credentials", target: "/api/v1/admin/sources/a/trigger", code: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(srv, http.MethodPost, tt.target, tt.user, tt.passwd)
			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}

	t.Run("wrong password", func(t *testing.T) {
		rec := serve(srv, http.MethodPost, "/api/v1/admin/sources/a/trigger", "admin", "bad")
		assert.Contains(t, []int{http.StatusUnauthorized, http.StatusForbidden}, rec.Code)
		assert.Len(t, triggers.TriggerSourceCalls(), 4, "only authorized source triggers reached")
	})
}

func TestServer_AdminDisabledWithoutPassword(t *testing.T) {
	triggers := &mocks.TriggersMock{}
	srv := New(testConfig(":8080", ""), &mocks.HealthReporterMock{}, &mocks.RunReaderMock{}, triggers, "test", false)
	rec := serve(srv, http.MethodPost, "/api/v1/admin/sources/a/trigger", "admin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, triggers.TriggerSourceCalls())
}

func TestServer_TriggerWithScheduler(t *testing.T) {
	reg, err := source.NewRegistry([]domain.SourceDefinition{
		{Key: "a", Type: domain.SourceTypeRSS, Endpoint: "https://example.com/a", PollMinutes: 10, Enabled: true},
	})
	require.NoError(t, err)
	polled := make(chan string, 1)
	poller := &schedmocks.SourcePollerMock{
		PollSourceFunc: func(ctx context.Context, key string) (domain.PollRunResult, error) {
			polled <- key
			return domain.PollRunResult{SourceKey: key}, nil
		},
	}
	sched := scheduler.NewScheduler(scheduler.Params{Registry: reg, Poller: poller, Authorizer: AdminAuthorizer{}})
	defer sched.Stop()
	srv := New(testConfig(":8080", "secret"), &mocks.HealthReporterMock{}, &mocks.RunReaderMock{}, sched, "test", false)

	rec := serve(srv, http.MethodPost, "/api/v1/admin/sources/a/trigger", "admin", "secret")
	require.Equal(t, http.StatusAccepted, rec.Code)
	select {
	case key := <-polled:
		assert.Equal(t, "a", key)
	case <-time.After(2 * time.Second):
		t.Fatal("poll not triggered")
	}

	// direct call without basic auth context is rejected by the scheduler itself
	_, err = sched.TriggerSource(context.Background(), "a")
	assert.ErrorIs(t, err, scheduler.ErrUnauthorized)
}

func TestAdminAuthorizer(t *testing.T) {
	assert.ErrorIs(t, AdminAuthorizer{}.Authorize(context.Background()), scheduler.ErrUnauthorized)
}
