package synchronize_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/spacesync/internal/spaces/shared"
	"github.com/temirov/spacesync/internal/spaces/synchronize"
	"github.com/temirov/spacesync/internal/spaces/testsupport"
)

func TestSchedulerTick(testInstance *testing.T) {
	testCases := []struct {
		name              string
		minute            int
		expectedTriggered bool
		expectedRuns      int
	}{
		{name: "on_cadence", minute: 35, expectedTriggered: true, expectedRuns: 1},
		{name: "off_cadence", minute: 36, expectedTriggered: false, expectedRuns: 0},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			runs := 0
			runner := func(context.Context) shared.Outcome {
				runs++
				return shared.OutcomeCompleted
			}
			clock := testsupport.FixedClock{Moment: time.Date(2024, time.March, 1, 9, testCase.minute, 0, 0, time.UTC)}

			scheduler, creationError := synchronize.NewScheduler(synchronize.CadenceGuard{Minutes: 5}, time.Minute, clock, runner, zap.NewNop())
			require.NoError(testInstance, creationError)

			triggered, _ := scheduler.Tick(context.Background())
			require.Equal(testInstance, testCase.expectedTriggered, triggered)
			require.Equal(testInstance, testCase.expectedRuns, runs)
		})
	}
}

func TestSchedulerTriggersOncePerCadenceMinute(testInstance *testing.T) {
	runs := 0
	runner := func(context.Context) shared.Outcome {
		runs++
		return shared.OutcomeCompleted
	}
	clock := &testsupport.FixedClock{Moment: time.Date(2024, time.March, 1, 9, 35, 0, 0, time.UTC)}

	scheduler, creationError := synchronize.NewScheduler(synchronize.CadenceGuard{Minutes: 5}, 10*time.Second, clock, runner, zap.NewNop())
	require.NoError(testInstance, creationError)

	moments := []struct {
		offset            time.Duration
		expectedTriggered bool
	}{
		{offset: 0, expectedTriggered: true},
		{offset: 10 * time.Second, expectedTriggered: false},
		{offset: 50 * time.Second, expectedTriggered: false},
		{offset: 5 * time.Minute, expectedTriggered: true},
		{offset: 5*time.Minute + 30*time.Second, expectedTriggered: false},
	}
	start := clock.Moment
	for _, moment := range moments {
		clock.Moment = start.Add(moment.offset)
		triggered, _ := scheduler.Tick(context.Background())
		require.Equal(testInstance, moment.expectedTriggered, triggered, moment.offset.String())
	}
	require.Equal(testInstance, 2, runs)
}

func TestSchedulerRunStopsOnCancellation(testInstance *testing.T) {
	runs := make(chan struct{}, 16)
	runner := func(context.Context) shared.Outcome {
		runs <- struct{}{}
		return shared.OutcomeCompleted
	}
	clock := testsupport.FixedClock{Moment: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}

	scheduler, creationError := synchronize.NewScheduler(synchronize.CadenceGuard{Minutes: 5}, 5*time.Millisecond, clock, runner, zap.NewNop())
	require.NoError(testInstance, creationError)

	executionContext, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() {
		finished <- scheduler.Run(executionContext)
	}()

	select {
	case <-runs:
	case <-time.After(2 * time.Second):
		testInstance.Fatal("scheduler never triggered a sync")
	}
	cancel()

	select {
	case runError := <-finished:
		require.NoError(testInstance, runError)
	case <-time.After(2 * time.Second):
		testInstance.Fatal("scheduler did not stop after cancellation")
	}
}

func TestNewSchedulerRequiresRunner(testInstance *testing.T) {
	_, creationError := synchronize.NewScheduler(synchronize.CadenceGuard{}, time.Minute, nil, nil, nil)
	require.ErrorIs(testInstance, creationError, synchronize.ErrSyncRunnerNotConfigured)
}
