package background

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"retailpulse/internal/analytics"
)

// Archiver uploads a snapshot of one period's dashboard.
type Archiver interface {
	Archive(ctx context.Context, periodKey string) (string, error)
}

type Config struct {
	MetricsRefreshInterval time.Duration
	LowStockScanInterval   time.Duration
	SnapshotInterval       time.Duration
}

// JobScheduler runs the periodic cache refresh, low stock scan and snapshot jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	logger    zerolog.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a scheduler with the standard jobs registered.
// archiver may be nil, in which case no snapshot job is scheduled.
func NewJobScheduler(cfg Config, refresh func(context.Context) error, lowStock func(context.Context) error, archiver Archiver, logger zerolog.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		logger:    logger.With().Str("component", "scheduler").Logger(),
		jobs:      make(map[string]gocron.Job),
	}

	js.addJob("metrics-refresh", cfg.MetricsRefreshInterval, refresh)
	js.addJob("low-stock-scan", cfg.LowStockScanInterval, lowStock)
	if archiver != nil {
		js.addJob("snapshot-archive", cfg.SnapshotInterval, func(ctx context.Context) error {
			_, err := archiver.Archive(ctx, analytics.DefaultPeriod)
			return err
		})
	}

	js.logger.Info().Int("jobs", len(js.jobs)).Msg("registered background jobs")
	return js, nil
}

// addJob skips jobs with a nil task or a non-positive interval.
func (js *JobScheduler) addJob(name string, interval time.Duration, task func(context.Context) error) {
	if task == nil || interval <= 0 {
		js.logger.Debug().Str("job", name).Msg("job disabled")
		return
	}

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		if err := task(ctx); err != nil {
			js.logger.Error().Err(err).Str("job", name).Msg("job failed")
		}
	}

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(run),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		js.logger.Error().Err(err).Str("job", name).Msg("failed to create job")
		return
	}

	js.mu.Lock()
	js.jobs[name] = job
	js.mu.Unlock()
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.logger.Info().Msg("starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	js.logger.Info().Msg("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// JobNames lists the registered jobs, sorted.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	jobs := make(map[string]interface{}, len(js.jobs))
	for name, job := range js.jobs {
		entry := map[string]interface{}{"id": job.ID().String()}
		if next, err := job.NextRun(); err == nil && !next.IsZero() {
			entry["next_run"] = next
		}
		if last, err := job.LastRun(); err == nil && !last.IsZero() {
			entry["last_run"] = last
		}
		jobs[name] = entry
	}

	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       jobs,
	}
}
