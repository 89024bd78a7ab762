package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/hanstudy/ingest/pkg/domain"
)

//go:generate moq -out mocks/source_poller.go -pkg mocks -skip-ensure -fmt goimports . SourcePoller
//go:generate moq -out mocks/authorizer.go -pkg mocks -skip-ensure -fmt goimports . Authorizer

var (
	// ErrUnauthorized is returned by triggers when the caller is not an admin
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStopped is returned by triggers after the scheduler stopped
	ErrStopped = errors.New("scheduler stopped")
)

// SourcePoller runs a poll cycle of a source
type SourcePoller interface {
	PollSource(ctx context.Context, key string) (domain.PollRunResult, error)
}

// Authorizer checks if the caller in ctx may use admin triggers
type Authorizer interface {
	Authorize(ctx context.Context) error
}

// Params contains scheduler dependencies and settings
type Params struct {
	Registry   Registry
	Poller     SourcePoller
	Authorizer Authorizer // nil denies all triggers
	RunOnStart bool       // poll every enabled source once right after Start
}

// Scheduler runs recurring polls of enabled sources and one-shot polls from admin triggers
type Scheduler struct {
	registry   Registry
	poller     SourcePoller
	auth       Authorizer
	runOnStart bool
	cron       *cron.Cron

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	timers  map[uint64]*time.Timer
	nextID  uint64
	stopped bool
	wg      sync.WaitGroup
}

// NewScheduler creates a new scheduler, one-shot triggers are accepted before Start
func NewScheduler(params Params) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		registry:   params.Registry,
		poller:     params.Poller,
		auth:       params.Authorizer,
		runOnStart: params.RunOnStart,
		cron:       cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(cronLogger{})))),
		ctx:        ctx,
		cancel:     cancel,
		timers:     make(map[uint64]*time.Timer),
	}
}

// Start registers a recurring job for each enabled source and starts the cron runner
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	sources := s.registry.Enabled()
	for _, src := range sources {
		key := src.Key
		minutes := src.PollMinutes
		if minutes < 1 {
			minutes = 60
		}
		if _, err := s.cron.AddFunc(fmt.Sprintf("@every %dm", minutes), func() { s.poll(key) }); err != nil {
			return fmt.Errorf("schedule %s: %w", key, err)
		}
		lgr.Printf("[DEBUG] scheduled %s every %dm", key, minutes)
	}
	s.cron.Start()

	if s.runOnStart {
		for _, src := range sources {
			if err := s.schedule(src.Key, 0); err != nil {
				return fmt.Errorf("run %s on start: %w", src.Key, err)
			}
		}
	}

	lgr.Printf("[INFO] scheduler started with %d sources", len(sources))
	return nil
}

// Stop cancels pending one-shot polls, stops recurring jobs and waits for running polls to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.mu.Lock()
	s.stopped = true
	s.cancel()
	for id, t := range s.timers {
		if t.Stop() {
			s.wg.Done() // timer never fired, its poll won't run
		}
		delete(s.timers, id)
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Pending returns the number of one-shot polls waiting for their delay
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// TriggerSource schedules an immediate poll of the source and returns without waiting for it
func (s *Scheduler) TriggerSource(ctx context.Context, key string) (domain.TriggerResult, error) {
	if err := s.authorize(ctx); err != nil {
		return domain.TriggerResult{}, err
	}
	src, err := s.registry.Resolve(key)
	if err != nil {
		return domain.TriggerResult{}, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, key, err)
	}
	if err := s.schedule(src.Key, 0); err != nil {
		return domain.TriggerResult{}, err
	}
	lgr.Printf("[INFO] poll of %s triggered", src.Key)
	return domain.TriggerResult{Scheduled: true, SourceKey: src.Key}, nil
}

// TriggerAllSources schedules a poll of every enabled source after delay, negative delay is treated as zero.
// All polls share the same delay.
func (s *Scheduler) TriggerAllSources(ctx context.Context, delay time.Duration) (domain.TriggerAllResult, error) {
	if err := s.authorize(ctx); err != nil {
		return domain.TriggerAllResult{}, err
	}
	if delay < 0 {
		delay = 0
	}
	count := 0
	for _, src := range s.registry.Enabled() {
		if err := s.schedule(src.Key, delay); err != nil {
			return domain.TriggerAllResult{Scheduled: count, DelayMs: delay.Milliseconds()}, err
		}
		count++
	}
	lgr.Printf("[INFO] poll of %d sources triggered with delay %v", count, delay)
	return domain.TriggerAllResult{Scheduled: count, DelayMs: delay.Milliseconds()}, nil
}

func (s *Scheduler) authorize(ctx context.Context) error {
	if s.auth == nil {
		return ErrUnauthorized
	}
	if err := s.auth.Authorize(ctx); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return nil
}

// schedule runs a one-shot poll of key after delay, tracked so Stop can cancel it
func (s *Scheduler) schedule(key string, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}

	id := s.nextID
	s.nextID++
	s.wg.Add(1)
	s.timers[id] = time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.mu.Lock()
		_, tracked := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		if !tracked {
			return // cancelled by Stop after the timer fired
		}
		s.run(key)
	})
	return nil
}

// poll is the recurring job of a source
func (s *Scheduler) poll(key string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()
	s.run(key)
}

func (s *Scheduler) run(key string) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if _, err := s.poller.PollSource(ctx, key); err != nil {
		lgr.Printf("[WARN] scheduled poll of %s skipped: %v", key, err)
	}
}

// cronLogger sends cron runner messages to lgr
type cronLogger struct{}

func (cronLogger) Printf(format string, args ...any) {
	lgr.Printf("[WARN] cron: "+format, args...)
}
