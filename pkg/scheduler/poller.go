package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/hanstudy/ingest/pkg/domain"
)

//go:generate moq -out mocks/registry.go -pkg mocks -skip-ensure -fmt goimports . Registry
//go:generate moq -out mocks/puller.go -pkg mocks -skip-ensure -fmt goimports . Puller
//go:generate moq -out mocks/sink.go -pkg mocks -skip-ensure -fmt goimports . Sink
//go:generate moq -out mocks/run_logger.go -pkg mocks -skip-ensure -fmt goimports . RunLogger
//go:generate moq -out mocks/health_updater.go -pkg mocks -skip-ensure -fmt goimports . HealthUpdater

// ErrSourceNotFound is returned for unknown or disabled source keys
var ErrSourceNotFound = errors.New("source not found")

// Registry resolves configured sources
type Registry interface {
	Resolve(key string) (domain.SourceDefinition, error)
	Enabled() []domain.SourceDefinition
}

// Puller pulls normalized articles of a source
type Puller interface {
	Pull(ctx context.Context, src domain.SourceDefinition) ([]domain.Article, error)
}

// Sink stores pulled articles
type Sink interface {
	Ingest(ctx context.Context, req domain.IngestRequest) (domain.IngestResult, error)
}

// RunLogger records poll cycles
type RunLogger interface {
	LogRun(ctx context.Context, rec domain.RunRecord) error
}

// HealthUpdater records poll outcome in source health
type HealthUpdater interface {
	UpdateSourceHealth(ctx context.Context, key string, status domain.RunStatus, runAt time.Time, lastErr string) error
}

// PollerParams contains dependencies of the poller
type PollerParams struct {
	Registry Registry
	Puller   Puller
	Sink     Sink
	Runs     RunLogger
	Health   HealthUpdater
	Now      func() time.Time // clock, time.Now if nil
}

// Poller runs one poll cycle of a source: pull, ingest, then record run and health
type Poller struct {
	registry Registry
	puller   Puller
	sink     Sink
	runs     RunLogger
	health   HealthUpdater
	now      func() time.Time
}

// NewPoller creates a poller
func NewPoller(params PollerParams) *Poller {
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Poller{
		registry: params.Registry,
		puller:   params.Puller,
		sink:     params.Sink,
		runs:     params.Runs,
		health:   params.Health,
		now:      params.Now,
	}
}

// PollSource runs one poll cycle of the source. Failures inside the cycle don't return an error,
// they make a result with error status, and the run log and health are updated in every case.
// The only error returned is ErrSourceNotFound for unknown or disabled keys, nothing is recorded then.
// The cycle is not interrupted by cancellation of ctx.
func (p *Poller) PollSource(ctx context.Context, key string) (domain.PollRunResult, error) {
	src, err := p.registry.Resolve(key)
	if err != nil {
		return domain.PollRunResult{}, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, key, err)
	}

	ctx = context.WithoutCancel(ctx)
	startedAt := p.now()
	res := domain.PollRunResult{RunID: uuid.NewString(), SourceKey: src.Key, StartedAt: startedAt}

	ingested, err := p.cycle(ctx, src)
	if err != nil {
		lgr.Printf("[WARN] poll of %s failed: %v", src.Key, err)
		res.Status = domain.RunStatusError
		res.Failed = 1
		res.Errors = []string{err.Error()}
	} else {
		res.Fetched = ingested.Fetched
		res.Inserted = ingested.Inserted
		res.Updated = ingested.Updated
		res.Deduped = ingested.Deduped
		res.Failed = ingested.Failed
		res.Errors = ingested.Errors
		res.Status = domain.RunStatusOK
		if ingested.Failed > 0 {
			res.Status = domain.RunStatusPartial
		}
	}
	res.DurationMs = p.now().Sub(startedAt).Milliseconds()

	if err := p.runs.LogRun(ctx, domain.NewRunRecord(res)); err != nil {
		lgr.Printf("[WARN] failed to log run %s of %s: %v", res.RunID, src.Key, err)
	}
	if err := p.health.UpdateSourceHealth(ctx, src.Key, res.Status, startedAt, lastError(res)); err != nil {
		lgr.Printf("[WARN] failed to update health of %s: %v", src.Key, err)
	}

	lgr.Printf("[INFO] polled %s: status %s, fetched %d, inserted %d, updated %d, deduped %d, failed %d in %dms",
		src.Key, res.Status, res.Fetched, res.Inserted, res.Updated, res.Deduped, res.Failed, res.DurationMs)
	return res, nil
}

// cycle pulls and ingests, a panic in puller or sink is returned as error
func (p *Poller) cycle(ctx context.Context, src domain.SourceDefinition) (res domain.IngestResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in poll of %s: %v", src.Key, r)
		}
	}()

	articles, err := p.puller.Pull(ctx, src)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("pull: %w", err)
	}
	res, err = p.sink.Ingest(ctx, domain.IngestRequest{SourceKey: src.Key, SourceType: src.Type, Articles: articles})
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("ingest: %w", err)
	}
	return res, nil
}

// lastError makes the health error message of a run, empty for ok runs
func lastError(res domain.PollRunResult) string {
	switch {
	case res.Status == domain.RunStatusOK:
		return ""
	case res.Status == domain.RunStatusPartial && len(res.Errors) > 0:
		return fmt.Sprintf("%d of %d items failed, first: %s", res.Failed, res.Fetched, res.Errors[0])
	case res.Status == domain.RunStatusPartial:
		return fmt.Sprintf("%d of %d items failed", res.Failed, res.Fetched)
	case len(res.Errors) > 0:
		return res.Errors[0]
	}
	return string(res.Status)
}
