package credential

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
	credentialPromptConstant            = "Enter new token (For GitLab: username:access_token):"
	successNotificationConstant         = "Replaced token successfully!"
	cancelledNotificationConstant       = "User cancelled."
	notLinkedNotificationConstant       = "Space is not linked to a git repository. Run link first."
	replaceFailedNotificationConstant   = "Failed to replace token"
	failedNotificationTemplateConstant  = "Failed to replace token: %v"
	rotationCompletedLogMessageConstant = "Remote credential replaced"
	rotationFailedLogMessageConstant    = "Credential rotation failed"
	rotationSkippedLogMessageConstant   = "Credential rotation skipped"
	dependencyMissingMessageConstant    = "credential workflow dependencies not configured"
	logFieldSpaceConstant               = "space"
	logFieldRemoteConstant              = "remote"
)

// ErrDependenciesNotConfigured indicates a required collaborator is missing.
var ErrDependenciesNotConfigured = errors.New(dependencyMissingMessageConstant)

// Options configures a credential rotation.
type Options struct {
	Layout shared.SpaceLayout
}

// Dependencies captures collaborators required to rotate a credential.
type Dependencies struct {
	GitManager shared.GitRepositoryManager
	Prompter   shared.Prompter
	Notifier   shared.Notifier
	Logger     *zap.Logger
}

// Executor replaces the credential embedded in a space's remote URL.
type Executor struct {
	dependencies Dependencies
	probe        gitrepo.RemoteProbe
}

// NewExecutor constructs an Executor from the provided dependencies.
func NewExecutor(dependencies Dependencies) *Executor {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Executor{
		dependencies: dependencies,
		probe:        gitrepo.NewRemoteProbe(dependencies.GitManager, dependencies.Logger),
	}
}

// Execute rotates the credential and resolves every failure into a notification.
func (executor *Executor) Execute(executionContext context.Context, options Options) shared.Outcome {
	logger := executor.dependencies.Logger.With(zap.String(logFieldSpaceConstant, options.Layout.Root))
	rotatedURL, rotationError := executor.Rotate(executionContext, options)

	switch {
	case rotationError == nil:
		logger.Info(rotationCompletedLogMessageConstant, zap.String(logFieldRemoteConstant, rotatedURL.Redacted()))
		executor.notify(successNotificationConstant)
		return shared.OutcomeCompleted
	case errors.Is(rotationError, shared.ErrUserCancelled):
		logger.Info(rotationSkippedLogMessageConstant, zap.Error(rotationError))
		executor.notify(cancelledNotificationConstant)
		return shared.OutcomeCancelled
	case errors.Is(rotationError, shared.ErrNotLinked):
		logger.Info(rotationSkippedLogMessageConstant, zap.Error(rotationError))
		executor.notify(notLinkedNotificationConstant)
		return shared.OutcomeFailed
	case errors.Is(rotationError, shared.ErrEmptyResultURL):
		logger.Warn(rotationFailedLogMessageConstant, zap.Error(rotationError))
		executor.notify(replaceFailedNotificationConstant)
		return shared.OutcomeFailed
	default:
		logger.Error(rotationFailedLogMessageConstant, zap.Error(rotationError))
		executor.notify(fmt.Sprintf(failedNotificationTemplateConstant, rotationError))
		return shared.OutcomeFailed
	}
}

// Rotate prompts for a new credential, rewrites the authority of the current
// remote URL and writes it back. Only set-url mutates the repository, and it
// runs only after the rewritten URL was validated.
func (executor *Executor) Rotate(executionContext context.Context, options Options) (gitrepo.RemoteURL, error) {
	if executor.dependencies.GitManager == nil || executor.dependencies.Prompter == nil {
		return gitrepo.RemoteURL{}, ErrDependenciesNotConfigured
	}

	layout := options.Layout.Sanitize()

	promptResult, promptError := executor.dependencies.Prompter.Prompt(executionContext, shared.PromptRequest{
		Field:   shared.PromptFieldCredential,
		Message: credentialPromptConstant,
		Secret:  true,
	})
	if promptError != nil {
		return gitrepo.RemoteURL{}, promptError
	}
	newCredential, answered := promptResult.Value()
	if !answered {
		return gitrepo.RemoteURL{}, shared.ErrUserCancelled
	}

	probeResult := executor.probe.Probe(executionContext, layout.Root, layout.RemoteName)
	if !probeResult.Linked {
		return gitrepo.RemoteURL{}, shared.ErrNotLinked
	}

	currentURL, parseError := probeResult.RemoteURL()
	if parseError != nil {
		return gitrepo.RemoteURL{}, parseError
	}

	rotatedURL, replaceError := currentURL.ReplaceCredential(newCredential)
	if replaceError != nil {
		return gitrepo.RemoteURL{}, replaceError
	}

	serializedURL := rotatedURL.String()
	if len(strings.TrimSpace(serializedURL)) == 0 {
		return gitrepo.RemoteURL{}, shared.ErrEmptyResultURL
	}

	if updateError := executor.dependencies.GitManager.SetRemoteURL(executionContext, layout.Root, layout.RemoteName, serializedURL); updateError != nil {
		return gitrepo.RemoteURL{}, updateError
	}
	return rotatedURL, nil
}

func (executor *Executor) notify(message string) {
	if executor.dependencies.Notifier == nil {
		return
	}
	executor.dependencies.Notifier.Notify(message)
}

// Execute rotates a credential using transient executor state.
func Execute(executionContext context.Context, dependencies Dependencies, options Options) shared.Outcome {
	return NewExecutor(dependencies).Execute(executionContext, options)
}
