package spaces

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/temirov/spacesync/internal/spaces/shared"
	"github.com/temirov/spacesync/internal/spaces/synchronize"
)

const (
	scheduleUseConstant              = "schedule"
	scheduleShortDescriptionConstant = "Sync the space periodically"
	scheduleLongDescriptionConstant  = "schedule checks the clock every tick interval and runs sync when the current minute is a multiple of the cadence. It stops on SIGINT or SIGTERM."
	onceFlagNameConstant             = "once"
	onceFlagUsageConstant            = "Evaluate a single tick and exit."
)

// SignalContextFactory derives a context cancelled by termination signals.
type SignalContextFactory func(parent context.Context) (context.Context, context.CancelFunc)

// ScheduleCommandBuilder assembles the schedule command.
type ScheduleCommandBuilder struct {
	Collaborators        Collaborators
	SignalContextFactory SignalContextFactory
}

// Build constructs the schedule command.
func (builder *ScheduleCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   scheduleUseConstant,
		Short: scheduleShortDescriptionConstant,
		Long:  scheduleLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	command.Flags().Bool(onceFlagNameConstant, false, onceFlagUsageConstant)
	return command, nil
}

func (builder *ScheduleCommandBuilder) run(command *cobra.Command, arguments []string) error {
	services, servicesError := builder.Collaborators.resolveServices(command)
	if servicesError != nil {
		return servicesError
	}

	syncExecutor := synchronize.NewExecutor(synchronize.Dependencies{
		GitManager: services.gitManager,
		Notifier:   services.notifier,
		Clock:      services.clock,
		Logger:     services.logger,
	})
	syncOptions := synchronize.Options{Layout: services.layout, CommitMessage: services.configuration.Sync.CommitMessage}

	scheduler, schedulerError := synchronize.NewScheduler(
		synchronize.CadenceGuard{Minutes: services.configuration.Sync.CadenceMinutes},
		services.configuration.Sync.TickInterval,
		services.clock,
		func(executionContext context.Context) shared.Outcome {
			return syncExecutor.Execute(executionContext, syncOptions)
		},
		services.logger,
	)
	if schedulerError != nil {
		return schedulerError
	}

	once, _ := command.Flags().GetBool(onceFlagNameConstant)
	if once {
		triggered, outcome := scheduler.Tick(command.Context())
		if !triggered {
			return nil
		}
		return outcomeError(command, outcome)
	}

	signalContext, stop := builder.resolveSignalContextFactory()(command.Context())
	defer stop()
	return scheduler.Run(signalContext)
}

func (builder *ScheduleCommandBuilder) resolveSignalContextFactory() SignalContextFactory {
	if builder.SignalContextFactory != nil {
		return builder.SignalContextFactory
	}
	return func(parent context.Context) (context.Context, context.CancelFunc) {
		return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	}
}
