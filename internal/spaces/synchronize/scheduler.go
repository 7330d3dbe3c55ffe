package synchronize

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/spacesync/internal/spaces/shared"
)

const (
	defaultTickIntervalConstant        = time.Minute
	schedulerStartedMessageConstant    = "Sync schedule started"
	schedulerStoppedMessageConstant    = "Sync schedule stopped"
	tickSkippedMessageConstant         = "Skipping tick outside cadence"
	tickRepeatedMessageConstant        = "Skipping tick in an already synced minute"
	tickCompletedMessageConstant       = "Scheduled sync finished"
	runnerNotConfiguredMessageConstant = "scheduler sync runner not configured"
	logFieldTickTimeConstant           = "tick"
	logFieldOutcomeConstant            = "outcome"
	logFieldIntervalConstant           = "interval"
	logFieldCadenceConstant            = "cadence_minutes"
)

// ErrSyncRunnerNotConfigured indicates the scheduler has nothing to trigger.
var ErrSyncRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)

// SyncRunner performs one sync cycle.
type SyncRunner func(executionContext context.Context) shared.Outcome

// Scheduler is the periodic trigger. Each tick that passes the cadence guard
// runs the sync synchronously, so ticks never overlap. A cadence minute
// triggers at most one sync however short the tick interval is.
type Scheduler struct {
	guard               CadenceGuard
	interval            time.Duration
	clock               shared.Clock
	runner              SyncRunner
	logger              *zap.Logger
	lastTriggeredMinute time.Time
}

// NewScheduler constructs a Scheduler. A non-positive interval defaults to one minute.
func NewScheduler(guard CadenceGuard, interval time.Duration, clock shared.Clock, runner SyncRunner, logger *zap.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, ErrSyncRunnerNotConfigured
	}
	if interval <= 0 {
		interval = defaultTickIntervalConstant
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{guard: guard, interval: interval, clock: clock, runner: runner, logger: logger}, nil
}

// Tick evaluates the cadence guard at the current time and runs the sync when
// it passes. triggered reports whether the sync ran.
func (scheduler *Scheduler) Tick(executionContext context.Context) (triggered bool, outcome shared.Outcome) {
	moment := scheduler.clock.Now()
	if !scheduler.guard.ShouldRun(moment) {
		scheduler.logger.Debug(tickSkippedMessageConstant, zap.Time(logFieldTickTimeConstant, moment))
		return false, shared.OutcomeCancelled
	}
	minute := moment.Truncate(time.Minute)
	if !scheduler.lastTriggeredMinute.IsZero() && minute.Equal(scheduler.lastTriggeredMinute) {
		scheduler.logger.Debug(tickRepeatedMessageConstant, zap.Time(logFieldTickTimeConstant, moment))
		return false, shared.OutcomeCancelled
	}
	scheduler.lastTriggeredMinute = minute

	outcome = scheduler.runner(executionContext)
	scheduler.logger.Info(tickCompletedMessageConstant, zap.Time(logFieldTickTimeConstant, moment), zap.Stringer(logFieldOutcomeConstant, outcome))
	return true, outcome
}

// Run ticks until the context is cancelled.
func (scheduler *Scheduler) Run(executionContext context.Context) error {
	ticker := time.NewTicker(scheduler.interval)
	defer ticker.Stop()

	scheduler.logger.Info(schedulerStartedMessageConstant, zap.Duration(logFieldIntervalConstant, scheduler.interval), zap.Int(logFieldCadenceConstant, scheduler.guard.Minutes))
	for {
		select {
		case <-executionContext.Done():
			scheduler.logger.Info(schedulerStoppedMessageConstant)
			return nil
		case <-ticker.C:
			scheduler.Tick(executionContext)
		}
	}
}
