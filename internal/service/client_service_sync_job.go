package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/connectivity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

const (
	runKey        = "sync"
	jitterPercent = 10
)

// SyncJobOptions configures a [SyncJob].
type SyncJobOptions struct {
	// Interval is the period of scheduled runs.
	Interval time.Duration
	// RetryBase and RetryCap bound the backoff after a run that asked to be
	// retried.
	RetryBase time.Duration
	RetryCap  time.Duration

	// Reachable delivers the reachability events of the connectivity
	// monitor. Nil disables event triggered runs.
	Reachable <-chan connectivity.Event

	// Online gates scheduled and retried runs. Nil treats the remote store
	// as always reachable. Manual and reachability runs are never gated.
	Online func() bool
}

// NewSyncJobOptions maps the worker settings of the client config.
func NewSyncJobOptions(cfg config.ClientWorkers, monitor *connectivity.Monitor) SyncJobOptions {
	opts := SyncJobOptions{
		Interval:  cfg.SyncInterval,
		RetryBase: cfg.RetryBase,
		RetryCap:  cfg.RetryCap,
	}
	if monitor != nil {
		opts.Reachable = monitor.Events()
		opts.Online = func() bool { return monitor.State() == connectivity.Online }
	}
	return opts
}

type syncJob struct {
	orchestrator SyncOrchestrator
	opts         SyncJobOptions

	group   singleflight.Group
	trigger chan struct{}
	running atomic.Bool

	reportMu sync.RWMutex
	last     models.RunReport
	hasLast  bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a job that runs orchestrator on the triggers described
// by opts. The job is idle until Start is called. Zero durations fall back to
// the config defaults.
func NewSyncJob(orchestrator SyncOrchestrator, opts SyncJobOptions, logger *logger.Logger) SyncJob {
	if opts.Interval <= 0 {
		opts.Interval = config.DefaultSyncInterval
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = config.DefaultRetryBase
	}
	if opts.RetryCap < opts.RetryBase {
		opts.RetryCap = max(config.DefaultRetryCap, opts.RetryBase)
	}

	return &syncJob{
		orchestrator: orchestrator,
		opts:         opts,
		trigger:      make(chan struct{}, 1),
		logger:       logger,
	}
}

// Start implements SyncJob. It stops any previously running job, then
// launches the scheduling goroutine. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		j.loop(jobCtx)
	}()
}

// Stop implements SyncJob. It cancels the scheduling goroutine and blocks
// until it has exited.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// TriggerNow implements SyncTrigger. It never blocks. A trigger that arrives
// while a run is in flight joins that run.
func (j *syncJob) TriggerNow() {
	if j.running.Load() {
		j.logger.Debug().Msg("sync run in flight, trigger coalesced")
		return
	}
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

func (j *syncJob) RunNow(ctx context.Context) models.RunReport {
	return j.run(ctx, "manual")
}

func (j *syncJob) State() JobState {
	if j.running.Load() {
		return JobRunning
	}
	return JobIdle
}

func (j *syncJob) LastReport() (models.RunReport, bool) {
	j.reportMu.RLock()
	defer j.reportMu.RUnlock()
	return j.last, j.hasLast
}

func (j *syncJob) loop(ctx context.Context) {
	ticker := time.NewTicker(j.opts.Interval)
	defer ticker.Stop()

	retryTimer := time.NewTimer(j.opts.RetryCap)
	retryTimer.Stop()
	defer retryTimer.Stop()

	backoff := j.newBackoff()
	reachable := j.opts.Reachable
	var retryC <-chan time.Time

	for {
		var reason string
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reason = "interval"
		case _, ok := <-reachable:
			if !ok {
				reachable = nil
				continue
			}
			reason = "reachable"
		case <-j.trigger:
			reason = "trigger"
		case <-retryC:
			retryC = nil
			reason = "retry"
		}

		if (reason == "interval" || reason == "retry") && !j.online() {
			j.logger.Debug().Str("reason", reason).Msg("remote store unreachable, run skipped")
			continue
		}

		report := j.run(ctx, reason)
		if ctx.Err() != nil {
			return
		}

		switch report.Outcome {
		case models.RunShouldRetry:
			delay, _ := backoff.Next()
			retryTimer.Reset(delay)
			retryC = retryTimer.C
			j.logger.Warn().Err(report.Err).Dur("retry_in", delay).Msg("sync run will be retried")
		case models.RunCompleted:
			retryTimer.Stop()
			retryC = nil
			backoff = j.newBackoff()
		}
	}
}

// run executes the orchestrator once. Concurrent callers share the run in
// flight and its report.
func (j *syncJob) run(ctx context.Context, reason string) models.RunReport {
	v, _, shared := j.group.Do(runKey, func() (any, error) {
		j.running.Store(true)
		defer j.running.Store(false)

		j.logger.Debug().Str("reason", reason).Msg("sync run triggered")
		report := j.orchestrator.RunSync(ctx)

		j.reportMu.Lock()
		j.last, j.hasLast = report, true
		j.reportMu.Unlock()

		return report, nil
	})
	if shared {
		j.logger.Debug().Str("reason", reason).Msg("joined sync run in flight")
	}
	return v.(models.RunReport)
}

func (j *syncJob) online() bool {
	return j.opts.Online == nil || j.opts.Online()
}

func (j *syncJob) newBackoff() retry.Backoff {
	b := retry.NewExponential(j.opts.RetryBase)
	b = retry.WithCappedDuration(j.opts.RetryCap, b)
	return retry.WithJitterPercent(jitterPercent, b)
}
