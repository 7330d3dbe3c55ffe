package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/spacesync/internal/execshell"
)

const (
	remoteSubcommandConstant                   = "remote"
	getURLSubcommandConstant                   = "get-url"
	setURLSubcommandConstant                   = "set-url"
	statusSubcommandConstant                   = "status"
	porcelainFlagConstant                      = "--porcelain"
	addSubcommandConstant                      = "add"
	allFlagConstant                            = "--all"
	commitSubcommandConstant                   = "commit"
	commitAllFlagConstant                      = "-a"
	messageFlagConstant                        = "-m"
	pullSubcommandConstant                     = "pull"
	pushSubcommandConstant                     = "push"
	cloneSubcommandConstant                    = "clone"
	configSubcommandConstant                   = "config"
	requiredValueMessageConstant               = "value required"
	executorNotConfiguredMessageConstant       = "git executor not configured"
	invalidInputErrorTemplateConstant          = "%s: %s"
	operationErrorTemplateConstant             = "%s operation failed: %s"
	repositoryPathFieldNameConstant            = "repository_path"
	remoteNameFieldNameConstant                = "remote_name"
	remoteURLFieldNameConstant                 = "remote_url"
	commitMessageFieldNameConstant             = "commit_message"
	cloneDestinationFieldNameConstant          = "clone_destination"
	configurationKeyFieldNameConstant          = "configuration_key"
	getRemoteURLOperationNameConstant          = OperationName("GetRemoteURL")
	setRemoteURLOperationNameConstant          = OperationName("SetRemoteURL")
	checkCleanWorktreeOperationNameConstant    = OperationName("CheckCleanWorktree")
	stageAllOperationNameConstant              = OperationName("StageAll")
	commitOperationNameConstant                = OperationName("Commit")
	pullOperationNameConstant                  = OperationName("Pull")
	pushOperationNameConstant                  = OperationName("Push")
	cloneOperationNameConstant                 = OperationName("Clone")
	setConfigurationValueOperationNameConstant = OperationName("SetConfigurationValue")
)

// Git configuration keys written during linking.
const (
	ConfigurationKeyUserName  = "user.name"
	ConfigurationKeyUserEmail = "user.email"
)

// OperationName identifies a git operation performed by RepositoryManager.
type OperationName string

// GitCommandExecutor is the subset of execshell.ShellExecutor the manager needs.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

var (
	// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps a failed git invocation.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying execution failure.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// RepositoryManager issues git commands against a working tree.
type RepositoryManager struct {
	executor GitCommandExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitCommandExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// GetRemoteURL returns the trimmed output of git remote get-url.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, remoteNameFieldNameConstant, remoteName); validationError != nil {
		return "", validationError
	}

	executionResult, executionError := manager.run(executionContext, repositoryPath, getRemoteURLOperationNameConstant, remoteSubcommandConstant, getURLSubcommandConstant, strings.TrimSpace(remoteName))
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// SetRemoteURL points the named remote at remoteURL.
func (manager *RepositoryManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, remoteNameFieldNameConstant, remoteName, remoteURLFieldNameConstant, remoteURL); validationError != nil {
		return validationError
	}

	_, executionError := manager.run(executionContext, repositoryPath, setRemoteURLOperationNameConstant, remoteSubcommandConstant, setURLSubcommandConstant, strings.TrimSpace(remoteName), strings.TrimSpace(remoteURL))
	return executionError
}

// CheckCleanWorktree reports whether git status --porcelain prints nothing.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return false, validationError
	}

	executionResult, executionError := manager.run(executionContext, repositoryPath, checkCleanWorktreeOperationNameConstant, statusSubcommandConstant, porcelainFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// StageAll stages every change, including deletions and untracked files.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return validationError
	}

	_, executionError := manager.run(executionContext, repositoryPath, stageAllOperationNameConstant, addSubcommandConstant, allFlagConstant)
	return executionError
}

// Commit records all tracked changes with the provided message.
func (manager *RepositoryManager) Commit(executionContext context.Context, repositoryPath string, message string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, commitMessageFieldNameConstant, message); validationError != nil {
		return validationError
	}

	_, executionError := manager.run(executionContext, repositoryPath, commitOperationNameConstant, commitSubcommandConstant, commitAllFlagConstant, messageFlagConstant, message)
	return executionError
}

// Pull fetches and merges the upstream of the current branch.
func (manager *RepositoryManager) Pull(executionContext context.Context, repositoryPath string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return validationError
	}

	_, executionError := manager.run(executionContext, repositoryPath, pullOperationNameConstant, pullSubcommandConstant)
	return executionError
}

// Push publishes local commits to the upstream of the current branch.
func (manager *RepositoryManager) Push(executionContext context.Context, repositoryPath string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath); validationError != nil {
		return validationError
	}

	_, executionError := manager.run(executionContext, repositoryPath, pushOperationNameConstant, pushSubcommandConstant)
	return executionError
}

// Clone clones remoteURL into destination, resolved relative to workingDirectory.
func (manager *RepositoryManager) Clone(executionContext context.Context, workingDirectory string, remoteURL string, destination string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, workingDirectory, remoteURLFieldNameConstant, remoteURL, cloneDestinationFieldNameConstant, destination); validationError != nil {
		return validationError
	}

	_, executionError := manager.run(executionContext, workingDirectory, cloneOperationNameConstant, cloneSubcommandConstant, strings.TrimSpace(remoteURL), strings.TrimSpace(destination))
	return executionError
}

// SetConfigurationValue writes a key into the repository-local git configuration.
func (manager *RepositoryManager) SetConfigurationValue(executionContext context.Context, repositoryPath string, key string, value string) error {
	if validationError := requireValues(repositoryPathFieldNameConstant, repositoryPath, configurationKeyFieldNameConstant, key); validationError != nil {
		return validationError
	}

	_, executionError := manager.run(executionContext, repositoryPath, setConfigurationValueOperationNameConstant, configSubcommandConstant, strings.TrimSpace(key), value)
	return executionError
}

func (manager *RepositoryManager) run(executionContext context.Context, repositoryPath string, operation OperationName, arguments ...string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: strings.TrimSpace(repositoryPath),
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return execshell.ExecutionResult{}, OperationError{Operation: operation, Cause: executionError}
	}
	return executionResult, nil
}

// requireValues validates alternating field name and value pairs.
func requireValues(fieldsAndValues ...string) error {
	for pairIndex := 0; pairIndex+1 < len(fieldsAndValues); pairIndex += 2 {
		if len(strings.TrimSpace(fieldsAndValues[pairIndex+1])) == 0 {
			return InvalidInputError{FieldName: fieldsAndValues[pairIndex], Message: requiredValueMessageConstant}
		}
	}
	return nil
}
