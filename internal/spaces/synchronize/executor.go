package synchronize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/spacesync/internal/gitrepo"
	"github.com/temirov/spacesync/internal/spaces/shared"
)

const (
	defaultCommitMessageTemplateConstant = "bot - auto commit %d"
	startedMessageConstant               = "Starting sync with git repo"
	completedMessageConstant             = "Sync complete"
	notLinkedNotificationConstant        = "Space is not linked to a git repository. Run link first."
	failedNotificationTemplateConstant   = "Sync failed: %v"
	failedLogMessageConstant             = "Sync failed"
	cleanWorktreeMessageConstant         = "Nothing to commit"
	cleanWorktreeCheckFailedConstant     = "Unable to check working tree status, attempting commit"
	commitSwallowedMessageConstant       = "Commit failed, continuing with pull"
	logFieldSpaceConstant                = "space"
	logFieldCommitMessageConstant        = "commit_message"
	logFieldStageConstant                = "stage"
)

// Options configures a single sync cycle.
type Options struct {
	Layout        shared.SpaceLayout
	CommitMessage string
}

// Dependencies captures collaborators required to synchronize a space.
type Dependencies struct {
	GitManager shared.GitRepositoryManager
	Notifier   shared.Notifier
	Clock      shared.Clock
	Logger     *zap.Logger
}

// Executor runs the stage, commit, pull, push cycle.
type Executor struct {
	dependencies Dependencies
	probe        gitrepo.RemoteProbe
}

// NewExecutor constructs an Executor from the provided dependencies.
func NewExecutor(dependencies Dependencies) *Executor {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clock == nil {
		dependencies.Clock = shared.SystemClock{}
	}
	return &Executor{
		dependencies: dependencies,
		probe:        gitrepo.NewRemoteProbe(dependencies.GitManager, dependencies.Logger),
	}
}

// Execute runs one sync cycle and reports its outcome through the notifier.
// An unlinked space is reported as cancelled since nothing was attempted.
func (executor *Executor) Execute(executionContext context.Context, options Options) shared.Outcome {
	synchronizeError := executor.Synchronize(executionContext, options)
	switch {
	case synchronizeError == nil:
		executor.notify(completedMessageConstant)
		return shared.OutcomeCompleted
	case errors.Is(synchronizeError, shared.ErrNotLinked):
		executor.notify(notLinkedNotificationConstant)
		return shared.OutcomeCancelled
	default:
		fields := []zap.Field{zap.String(logFieldSpaceConstant, options.Layout.Root), zap.Error(synchronizeError)}
		var syncFailure shared.SyncFailedError
		if errors.As(synchronizeError, &syncFailure) {
			fields = append(fields, zap.String(logFieldStageConstant, string(syncFailure.Stage)))
		}
		executor.dependencies.Logger.Error(failedLogMessageConstant, fields...)
		executor.notify(fmt.Sprintf(failedNotificationTemplateConstant, synchronizeError))
		return shared.OutcomeFailed
	}
}

// Synchronize stages and commits local edits, then pulls, then pushes. Commit
// always precedes pull and pull always precedes push. Only staging, pull and
// push failures are returned; a commit failure is logged and skipped.
func (executor *Executor) Synchronize(executionContext context.Context, options Options) error {
	if executor.dependencies.GitManager == nil {
		return gitrepo.ErrExecutorNotConfigured
	}

	layout := options.Layout.Sanitize()
	logger := executor.dependencies.Logger.With(zap.String(logFieldSpaceConstant, layout.Root))

	probeResult := executor.probe.Probe(executionContext, layout.Root, layout.RemoteName)
	if !probeResult.Linked {
		return shared.ErrNotLinked
	}

	logger.Info(startedMessageConstant)

	if stageError := executor.dependencies.GitManager.StageAll(executionContext, layout.Root); stageError != nil {
		return shared.SyncFailedError{Stage: shared.SyncStageStage, Cause: stageError}
	}

	executor.commit(executionContext, layout.Root, executor.resolveCommitMessage(options.CommitMessage), logger)

	if pullError := executor.dependencies.GitManager.Pull(executionContext, layout.Root); pullError != nil {
		return shared.SyncFailedError{Stage: shared.SyncStagePull, Cause: pullError}
	}

	if pushError := executor.dependencies.GitManager.Push(executionContext, layout.Root); pushError != nil {
		return shared.SyncFailedError{Stage: shared.SyncStagePush, Cause: pushError}
	}

	return nil
}

func (executor *Executor) commit(executionContext context.Context, repositoryPath string, message string, logger *zap.Logger) {
	clean, statusError := executor.dependencies.GitManager.CheckCleanWorktree(executionContext, repositoryPath)
	if statusError != nil {
		logger.Warn(cleanWorktreeCheckFailedConstant, zap.Error(statusError))
	} else if clean {
		logger.Info(cleanWorktreeMessageConstant)
		return
	}

	if commitError := executor.dependencies.GitManager.Commit(executionContext, repositoryPath, message); commitError != nil {
		logger.Warn(commitSwallowedMessageConstant, zap.String(logFieldCommitMessageConstant, message), zap.Error(commitError))
	}
}

func (executor *Executor) resolveCommitMessage(message string) string {
	trimmed := strings.TrimSpace(message)
	if len(trimmed) > 0 {
		return trimmed
	}
	return fmt.Sprintf(defaultCommitMessageTemplateConstant, executor.dependencies.Clock.Now().UnixMilli())
}

func (executor *Executor) notify(message string) {
	if executor.dependencies.Notifier == nil {
		return
	}
	executor.dependencies.Notifier.Notify(message)
}

// Execute runs one sync cycle using transient executor state.
func Execute(executionContext context.Context, dependencies Dependencies, options Options) shared.Outcome {
	return NewExecutor(dependencies).Execute(executionContext, options)
}
