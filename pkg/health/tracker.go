// Package health keeps per-source poll health with a failure streak based degrade flag.
// Updates are read-modify-write against a versioned store and retried on version conflicts,
// so concurrent polls of the same source never lose a run.
package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/hanstudy/ingest/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/registry.go -pkg mocks -skip-ensure -fmt goimports . Registry

// Store persists health records. SaveHealth inserts a record with zero Version and updates
// a stored one only if its version still equals h.Version, otherwise it returns domain.ErrVersionConflict.
type Store interface {
	GetHealth(ctx context.Context, key string) (domain.SourceHealth, bool, error)
	SaveHealth(ctx context.Context, h domain.SourceHealth) error
	ListHealth(ctx context.Context) ([]domain.SourceHealth, error)
}

// Registry lists configured sources
type Registry interface {
	All() []domain.SourceDefinition
}

// Config is the health policy
type Config struct {
	DegradeThreshold int // consecutive failures marking a source degraded, 3 if not set
	MaxAttempts      int // attempts to apply an update on version conflicts, 10 if not set
}

// errStop terminates the update retry loop on errors other than version conflicts
var errStop = errors.New("stop retry")

type stopError struct{ err error }

func (e *stopError) Error() string        { return e.err.Error() }
func (e *stopError) Unwrap() error        { return e.err }
func (e *stopError) Is(target error) bool { return target == errStop }

// Tracker applies poll outcomes to source health records and reports them
type Tracker struct {
	store       Store
	registry    Registry
	threshold   int
	maxAttempts int
}

// NewTracker creates a tracker
func NewTracker(store Store, registry Registry, cfg Config) *Tracker {
	if cfg.DegradeThreshold <= 0 {
		cfg.DegradeThreshold = 3
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &Tracker{store: store, registry: registry, threshold: cfg.DegradeThreshold, maxAttempts: cfg.MaxAttempts}
}

// Threshold returns the degrade threshold in use
func (t *Tracker) Threshold() int {
	return t.threshold
}

// UpdateSourceHealth records one poll outcome of the source. Every call counts as a run,
// callers are responsible for calling it exactly once per poll cycle.
func (t *Tracker) UpdateSourceHealth(ctx context.Context, key string, status domain.RunStatus, runAt time.Time, lastErr string) error {
	retrier := repeater.NewBackoff(t.maxAttempts, 5*time.Millisecond, repeater.WithMaxDelay(200*time.Millisecond))

	err := retrier.Do(ctx, func() error {
		prev, found, err := t.store.GetHealth(ctx, key)
		if err != nil {
			return &stopError{err: fmt.Errorf("get health of %s: %w", key, err)}
		}
		if !found {
			prev = domain.SourceHealth{SourceKey: key}
		}

		next := Apply(prev, status, runAt, lastErr, t.threshold)
		if err := t.store.SaveHealth(ctx, next); err != nil {
			if errors.Is(err, domain.ErrVersionConflict) {
				lgr.Printf("[DEBUG] health of %s changed concurrently, retrying", key)
				return err
			}
			return &stopError{err: fmt.Errorf("save health of %s: %w", key, err)}
		}

		switch {
		case next.Degraded && !prev.Degraded:
			lgr.Printf("[WARN] source %s degraded after %d consecutive failures, last error: %s", key, next.ConsecutiveFailures, next.LastError)
		case prev.Degraded && !next.Degraded:
			lgr.Printf("[INFO] source %s recovered", key)
		}
		return nil
	}, errStop)

	var se *stopError
	if errors.As(err, &se) {
		return se.err
	}
	if err != nil {
		return fmt.Errorf("update health of %s: %w", key, err)
	}
	return nil
}

// Apply returns the record after one more run with given status. It doesn't change the version.
func Apply(prev domain.SourceHealth, status domain.RunStatus, runAt time.Time, lastErr string, threshold int) domain.SourceHealth {
	next := prev
	next.TotalRuns++
	next.LastRunAt = runAt
	next.LastStatus = status
	next.UpdatedAt = runAt

	if status == domain.RunStatusOK {
		next.ConsecutiveFailures = 0
		next.LastError = ""
		successAt := runAt
		next.LastSuccessAt = &successAt
	} else {
		next.TotalFailures++
		next.ConsecutiveFailures++
		next.LastError = lastErr
	}

	next.Degraded = next.ConsecutiveFailures >= threshold
	switch {
	case next.Degraded && !prev.Degraded:
		since := runAt
		next.DegradedSince = &since
	case !next.Degraded:
		next.DegradedSince = nil
	}
	return next
}

// GetSourceHealth returns one report row per configured source in registry order,
// sources which never ran have zero counters
func (t *Tracker) GetSourceHealth(ctx context.Context) ([]domain.HealthReport, error) {
	records, err := t.store.ListHealth(ctx)
	if err != nil {
		return nil, fmt.Errorf("list health: %w", err)
	}
	byKey := make(map[string]domain.SourceHealth, len(records))
	for _, r := range records {
		byKey[r.SourceKey] = r
	}

	sources := t.registry.All()
	res := make([]domain.HealthReport, 0, len(sources))
	for _, src := range sources {
		report := domain.HealthReport{
			SourceKey:        src.Key,
			Name:             src.DisplayName(),
			Enabled:          src.Enabled,
			PollMinutes:      src.PollMinutes,
			DegradeThreshold: t.threshold,
		}
		if h, ok := byKey[src.Key]; ok {
			report.TotalRuns = h.TotalRuns
			report.TotalFailures = h.TotalFailures
			report.ConsecutiveFailures = h.ConsecutiveFailures
			report.Degraded = h.Degraded
			report.DegradedSince = h.DegradedSince
			report.LastStatus = h.LastStatus
			report.LastError = h.LastError
			report.LastSuccessAt = h.LastSuccessAt
			if !h.LastRunAt.IsZero() {
				lastRun := h.LastRunAt
				report.LastRunAt = &lastRun
			}
		}
		res = append(res, report)
	}
	return res, nil
}
