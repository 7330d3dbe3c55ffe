package link

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/spacesync/internal/gitrepo"
	"github.com/temirov/spacesync/internal/spaces/shared"
)

const (
	remoteURLPromptConstant                  = "Project URL:"
	credentialPromptConstant                 = "Access token (For GitLab: username:access_token):"
	authorNamePromptConstant                 = "Your name:"
	authorEmailPromptConstant                = "Your email:"
	overwritePromptTemplateConstant          = "This space is already linked to %s. Content from the new repository will override the current space, continue? (Yes/No)"
	notLinkedRelinkNotificationConstant      = "No linked repository found, linking a new one."
	cloningNotificationConstant              = "Cloning your git repo, it might take some time."
	completedNotificationConstant            = "Done. Now just wait for sync to kick in to get all the content."
	cancelledNotificationConstant            = "User cancelled."
	cloneFailedNotificationConstant          = "Failed to clone repository, please check your details"
	malformedURLNotificationTemplateConstant = "Invalid repository URL: %v"
	failedNotificationTemplateConstant       = "Linking failed: %v"
	linkFailedLogMessageConstant             = "Linking failed"
	linkCancelledLogMessageConstant          = "Linking cancelled"
	stagingCleanupFailedMessageConstant      = "Unable to remove staging directory"
	linkCompletedLogMessageConstant          = "Space linked"
	dependencyMissingMessageConstant         = "link workflow dependencies not configured"
	ignoreEntriesSeparatorConstant           = "\n"
	logFieldSpaceConstant                    = "space"
	logFieldRemoteConstant                   = "remote"
	logFieldStagingConstant                  = "staging"
)

// ErrDependenciesNotConfigured indicates a required collaborator is missing.
var ErrDependenciesNotConfigured = errors.New(dependencyMissingMessageConstant)

// Options configures a link or relink.
type Options struct {
	Layout             shared.SpaceLayout
	ConfirmationPolicy shared.ConfirmationPolicy
	Relink             bool
}

// Payload holds the collected inputs for repository initialization.
type Payload struct {
	RemoteURL   gitrepo.RemoteURL
	AuthorName  string
	AuthorEmail string
}

// Dependencies captures collaborators required to link a space.
type Dependencies struct {
	GitManager shared.GitRepositoryManager
	Files      shared.FileCommandExecutor
	FileSystem shared.FileSystem
	Prompter   shared.Prompter
	Notifier   shared.Notifier
	Logger     *zap.Logger
}

// Executor binds a space to a remote repository.
type Executor struct {
	dependencies Dependencies
	probe        gitrepo.RemoteProbe
	merger       DirectoryMerger
}

// NewExecutor constructs an Executor from the provided dependencies.
func NewExecutor(dependencies Dependencies) *Executor {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Executor{
		dependencies: dependencies,
		probe:        gitrepo.NewRemoteProbe(dependencies.GitManager, dependencies.Logger),
		merger:       NewDirectoryMerger(dependencies.FileSystem, dependencies.Files),
	}
}

// Execute links the space and resolves every failure into a notification.
func (executor *Executor) Execute(executionContext context.Context, options Options) shared.Outcome {
	logger := executor.dependencies.Logger.With(zap.String(logFieldSpaceConstant, options.Layout.Root))
	linkError := executor.Link(executionContext, options)

	var malformedURL gitrepo.MalformedURLError
	var cloneFailure shared.CloneFailedError
	switch {
	case linkError == nil:
		logger.Info(linkCompletedLogMessageConstant)
		executor.notify(completedNotificationConstant)
		return shared.OutcomeCompleted
	case errors.Is(linkError, shared.ErrUserCancelled):
		logger.Info(linkCancelledLogMessageConstant)
		executor.notify(cancelledNotificationConstant)
		return shared.OutcomeCancelled
	case errors.As(linkError, &malformedURL):
		logger.Warn(linkFailedLogMessageConstant, zap.Error(linkError))
		executor.notify(fmt.Sprintf(malformedURLNotificationTemplateConstant, malformedURL))
		return shared.OutcomeFailed
	case errors.As(linkError, &cloneFailure):
		logger.Error(linkFailedLogMessageConstant, zap.Error(linkError))
		executor.notify(cloneFailedNotificationConstant)
		return shared.OutcomeFailed
	default:
		logger.Error(linkFailedLogMessageConstant, zap.Error(linkError))
		executor.notify(fmt.Sprintf(failedNotificationTemplateConstant, linkError))
		return shared.OutcomeFailed
	}
}

// Link confirms an overwrite when the space is already linked, collects the
// inputs, clones into the staging directory and moves the clone into the
// space. Nothing is mutated until every input has been collected, the live
// space is only touched after the clone succeeded and the existing git
// metadata is replaced last.
func (executor *Executor) Link(executionContext context.Context, options Options) error {
	if executor.dependencies.GitManager == nil || executor.dependencies.Files == nil || executor.dependencies.FileSystem == nil || executor.dependencies.Prompter == nil {
		return ErrDependenciesNotConfigured
	}

	layout := options.Layout.Sanitize()

	probeResult := executor.probe.Probe(executionContext, layout.Root, layout.RemoteName)
	if probeResult.Linked {
		if confirmationError := executor.confirmOverwrite(executionContext, options.ConfirmationPolicy, probeResult); confirmationError != nil {
			return confirmationError
		}
	} else if options.Relink {
		executor.notify(notLinkedRelinkNotificationConstant)
	}

	payload, collectError := executor.collectPayload(executionContext)
	if collectError != nil {
		return collectError
	}

	return executor.initializeRepository(executionContext, layout, payload)
}

func (executor *Executor) confirmOverwrite(executionContext context.Context, policy shared.ConfirmationPolicy, probeResult gitrepo.ProbeResult) error {
	if !policy.ShouldPrompt() {
		return nil
	}

	currentRemote := probeResult.RawURL
	if parsedRemote, parseError := probeResult.RemoteURL(); parseError == nil {
		currentRemote = parsedRemote.Redacted()
	}

	confirmation, promptError := executor.dependencies.Prompter.Prompt(executionContext, shared.PromptRequest{
		Field:   shared.PromptFieldConfirmation,
		Message: fmt.Sprintf(overwritePromptTemplateConstant, currentRemote),
	})
	if promptError != nil {
		return promptError
	}
	if !confirmation.IsAffirmative() {
		return shared.ErrUserCancelled
	}
	return nil
}

func (executor *Executor) collectPayload(executionContext context.Context) (Payload, error) {
	rawURL, urlError := executor.ask(executionContext, shared.PromptFieldRemoteURL, remoteURLPromptConstant, false)
	if urlError != nil {
		return Payload{}, urlError
	}
	credential, credentialError := executor.ask(executionContext, shared.PromptFieldCredential, credentialPromptConstant, true)
	if credentialError != nil {
		return Payload{}, credentialError
	}
	authorName, nameError := executor.ask(executionContext, shared.PromptFieldAuthorName, authorNamePromptConstant, false)
	if nameError != nil {
		return Payload{}, nameError
	}
	authorEmail, emailError := executor.ask(executionContext, shared.PromptFieldAuthorEmail, authorEmailPromptConstant, false)
	if emailError != nil {
		return Payload{}, emailError
	}

	remoteURL, parseError := gitrepo.ParseRemoteURL(rawURL)
	if parseError != nil {
		return Payload{}, parseError
	}
	credentialedURL, injectError := remoteURL.InjectCredential(credential)
	if injectError != nil {
		return Payload{}, injectError
	}

	return Payload{RemoteURL: credentialedURL, AuthorName: authorName, AuthorEmail: authorEmail}, nil
}

func (executor *Executor) ask(executionContext context.Context, field shared.PromptField, message string, secret bool) (string, error) {
	result, promptError := executor.dependencies.Prompter.Prompt(executionContext, shared.PromptRequest{Field: field, Message: message, Secret: secret})
	if promptError != nil {
		return "", promptError
	}
	value, answered := result.Value()
	if !answered {
		return "", shared.ErrUserCancelled
	}
	return value, nil
}

func (executor *Executor) initializeRepository(executionContext context.Context, layout shared.SpaceLayout, payload Payload) error {
	logger := executor.dependencies.Logger.With(
		zap.String(logFieldSpaceConstant, layout.Root),
		zap.String(logFieldRemoteConstant, payload.RemoteURL.Redacted()),
		zap.String(logFieldStagingConstant, layout.StagingDirectory),
	)
	executor.notify(cloningNotificationConstant)

	if guardError := executor.ensureStagingReplaceable(layout); guardError != nil {
		return guardError
	}

	if removeError := removePath(executionContext, executor.dependencies.Files, layout.Root, layout.StagingDirectory); removeError != nil {
		return removeError
	}

	if cloneError := executor.dependencies.GitManager.Clone(executionContext, layout.Root, payload.RemoteURL.String(), layout.StagingDirectory); cloneError != nil {
		executor.discardStaging(executionContext, layout, logger)
		return shared.CloneFailedError{Cause: cloneError}
	}

	if seedError := executor.seedIgnoreFile(executionContext, layout); seedError != nil {
		return seedError
	}

	if mergeError := executor.merger.Merge(executionContext, layout.Root, layout.StagingDirectory, ".", shared.MetadataDirectoryNameConstant); mergeError != nil {
		executor.discardStaging(executionContext, layout, logger)
		return shared.MergeFailedError{Cause: mergeError}
	}

	// The existing metadata is only replaced once every content entry is in place.
	// A failed swap keeps the staged clone so its metadata can be recovered.
	if removeError := removePath(executionContext, executor.dependencies.Files, layout.Root, shared.MetadataDirectoryNameConstant); removeError != nil {
		return shared.MergeFailedError{Cause: removeError}
	}
	stagedMetadataPath := filepath.Join(layout.StagingDirectory, shared.MetadataDirectoryNameConstant)
	if moveError := movePath(executionContext, executor.dependencies.Files, layout.Root, stagedMetadataPath, shared.MetadataDirectoryNameConstant); moveError != nil {
		return shared.MergeFailedError{Cause: moveError}
	}

	if removeError := removePath(executionContext, executor.dependencies.Files, layout.Root, layout.StagingDirectory); removeError != nil {
		return removeError
	}

	if nameError := executor.dependencies.GitManager.SetConfigurationValue(executionContext, layout.Root, gitrepo.ConfigurationKeyUserName, payload.AuthorName); nameError != nil {
		return nameError
	}
	return executor.dependencies.GitManager.SetConfigurationValue(executionContext, layout.Root, gitrepo.ConfigurationKeyUserEmail, payload.AuthorEmail)
}

// ensureStagingReplaceable refuses to remove a staging path that exists without
// clone metadata inside it, such as an ordinary space folder.
func (executor *Executor) ensureStagingReplaceable(layout shared.SpaceLayout) error {
	stagingPath := filepath.Join(layout.Root, layout.StagingDirectory)
	stagingInfo, statError := executor.dependencies.FileSystem.Stat(stagingPath)
	if errors.Is(statError, fs.ErrNotExist) {
		return nil
	}
	if statError != nil {
		return statError
	}
	if !stagingInfo.IsDir() {
		return shared.StagingOccupiedError{Path: stagingPath}
	}
	metadataInfo, metadataError := executor.dependencies.FileSystem.Stat(filepath.Join(stagingPath, shared.MetadataDirectoryNameConstant))
	if metadataError != nil || !metadataInfo.IsDir() {
		return shared.StagingOccupiedError{Path: stagingPath}
	}
	return nil
}

func (executor *Executor) discardStaging(executionContext context.Context, layout shared.SpaceLayout, logger *zap.Logger) {
	if cleanupError := removePath(executionContext, executor.dependencies.Files, layout.Root, layout.StagingDirectory); cleanupError != nil {
		logger.Warn(stagingCleanupFailedMessageConstant, zap.Error(cleanupError))
	}
}

// seedIgnoreFile appends the ignore entries to the cloned ignore file so they
// survive the merge into the space.
func (executor *Executor) seedIgnoreFile(executionContext context.Context, layout shared.SpaceLayout) error {
	if len(layout.IgnoreEntries) == 0 {
		return nil
	}

	ignoreFilePath := filepath.Join(layout.StagingDirectory, shared.IgnoreFileNameConstant)
	content := strings.Join(layout.IgnoreEntries, ignoreEntriesSeparatorConstant) + ignoreEntriesSeparatorConstant
	if existingInfo, statError := executor.dependencies.FileSystem.Stat(filepath.Join(layout.Root, ignoreFilePath)); statError == nil && existingInfo.Size() > 0 {
		content = ignoreEntriesSeparatorConstant + content
	}
	return appendLines(executionContext, executor.dependencies.Files, layout.Root, ignoreFilePath, []byte(content))
}

func (executor *Executor) notify(message string) {
	if executor.dependencies.Notifier == nil {
		return
	}
	executor.dependencies.Notifier.Notify(message)
}

// Execute links a space using transient executor state.
func Execute(executionContext context.Context, dependencies Dependencies, options Options) shared.Outcome {
	return NewExecutor(dependencies).Execute(executionContext, options)
}
