package testsupport

import (
	"context"
	"io/fs"
	"path"
	"strings"
	"testing/fstest"
	"time"

	"github.com/temirov/spacesync/internal/execshell"
	"github.com/temirov/spacesync/internal/spaces/shared"
)

const (
	journalGetRemoteURLConstant   = "git remote get-url"
	journalStatusConstant         = "git status"
	journalEntrySeparatorConstant = " "
)

// CallJournal records collaborator calls across stubs in invocation order.
type CallJournal struct {
	Entries []string
}

// Record appends an entry composed of the provided parts.
func (journal *CallJournal) Record(parts ...string) {
	if journal == nil {
		return
	}
	journal.Entries = append(journal.Entries, strings.Join(parts, journalEntrySeparatorConstant))
}

// MutatingEntries returns the entries that change a space or its repository.
func (journal *CallJournal) MutatingEntries() []string {
	if journal == nil {
		return nil
	}
	mutating := make([]string, 0, len(journal.Entries))
	for _, entry := range journal.Entries {
		if strings.HasPrefix(entry, journalGetRemoteURLConstant) || strings.HasPrefix(entry, journalStatusConstant) {
			continue
		}
		mutating = append(mutating, entry)
	}
	return mutating
}

// GitManagerStub implements shared.GitRepositoryManager with scripted results.
type GitManagerStub struct {
	Journal            *CallJournal
	RemoteURL          string
	RemoteURLError     error
	CleanWorktree      bool
	CleanWorktreeError error
	StageError         error
	CommitError        error
	PullError          error
	PushError          error
	CloneError         error
	SetRemoteURLError  error
	ConfigurationError error
	ConfiguredValues   map[string]string
}

// GetRemoteURL returns the scripted remote.
func (manager *GitManagerStub) GetRemoteURL(_ context.Context, _ string, remoteName string) (string, error) {
	manager.Journal.Record(journalGetRemoteURLConstant, remoteName)
	return manager.RemoteURL, manager.RemoteURLError
}

// SetRemoteURL records the new remote.
func (manager *GitManagerStub) SetRemoteURL(_ context.Context, _ string, remoteName string, remoteURL string) error {
	manager.Journal.Record("git remote set-url", remoteName, remoteURL)
	if manager.SetRemoteURLError != nil {
		return manager.SetRemoteURLError
	}
	manager.RemoteURL = remoteURL
	return nil
}

// CheckCleanWorktree returns the scripted cleanliness.
func (manager *GitManagerStub) CheckCleanWorktree(context.Context, string) (bool, error) {
	manager.Journal.Record(journalStatusConstant)
	return manager.CleanWorktree, manager.CleanWorktreeError
}

// StageAll records staging.
func (manager *GitManagerStub) StageAll(context.Context, string) error {
	manager.Journal.Record("git add")
	return manager.StageError
}

// Commit records the commit message.
func (manager *GitManagerStub) Commit(_ context.Context, _ string, message string) error {
	manager.Journal.Record("git commit", message)
	return manager.CommitError
}

// Pull records the pull.
func (manager *GitManagerStub) Pull(context.Context, string) error {
	manager.Journal.Record("git pull")
	return manager.PullError
}

// Push records the push.
func (manager *GitManagerStub) Push(context.Context, string) error {
	manager.Journal.Record("git push")
	return manager.PushError
}

// Clone records the clone target.
func (manager *GitManagerStub) Clone(_ context.Context, _ string, remoteURL string, destination string) error {
	manager.Journal.Record("git clone", remoteURL, destination)
	return manager.CloneError
}

// SetConfigurationValue records the configuration write.
func (manager *GitManagerStub) SetConfigurationValue(_ context.Context, _ string, key string, value string) error {
	manager.Journal.Record("git config", key, value)
	if manager.ConfigurationError != nil {
		return manager.ConfigurationError
	}
	if manager.ConfiguredValues == nil {
		manager.ConfiguredValues = map[string]string{}
	}
	manager.ConfiguredValues[key] = value
	return nil
}

// FileCommandExecutorStub implements shared.FileCommandExecutor and records commands.
type FileCommandExecutorStub struct {
	Journal     *CallJournal
	Errors      map[execshell.CommandName]error
	EntryErrors map[string]error
	Commands    []execshell.ShellCommand
}

// ExecuteRemove records an rm invocation.
func (executor *FileCommandExecutorStub) ExecuteRemove(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(execshell.CommandRemove, details)
}

// ExecuteMove records an mv invocation.
func (executor *FileCommandExecutorStub) ExecuteMove(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(execshell.CommandMove, details)
}

// ExecuteTee records a tee invocation.
func (executor *FileCommandExecutorStub) ExecuteTee(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(execshell.CommandTee, details)
}

func (executor *FileCommandExecutorStub) record(name execshell.CommandName, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	command := execshell.ShellCommand{Name: name, Details: details}
	executor.Commands = append(executor.Commands, command)
	entryParts := append([]string{string(name)}, details.Arguments...)
	executor.Journal.Record(entryParts...)
	if commandError, exists := executor.Errors[name]; exists && commandError != nil {
		return execshell.ExecutionResult{}, commandError
	}
	if entryError, exists := executor.EntryErrors[strings.Join(entryParts, journalEntrySeparatorConstant)]; exists && entryError != nil {
		return execshell.ExecutionResult{}, entryError
	}
	return execshell.ExecutionResult{}, nil
}

// NotifierStub collects notifications.
type NotifierStub struct {
	Messages []string
}

// Notify records the message.
func (notifier *NotifierStub) Notify(message string) {
	notifier.Messages = append(notifier.Messages, message)
}

// PrompterStub answers prompts from a map keyed by field. Unlisted fields are cancelled.
type PrompterStub struct {
	Answers  map[shared.PromptField]shared.PromptResult
	Error    error
	Requests []shared.PromptRequest
}

// Prompt records the request and returns the scripted answer.
func (prompter *PrompterStub) Prompt(_ context.Context, request shared.PromptRequest) (shared.PromptResult, error) {
	prompter.Requests = append(prompter.Requests, request)
	if prompter.Error != nil {
		return shared.Cancelled(), prompter.Error
	}
	answer, exists := prompter.Answers[request.Field]
	if !exists {
		return shared.Cancelled(), nil
	}
	return answer, nil
}

// RequestedFields lists the prompted fields in order.
func (prompter *PrompterStub) RequestedFields() []shared.PromptField {
	fields := make([]shared.PromptField, 0, len(prompter.Requests))
	for _, request := range prompter.Requests {
		fields = append(fields, request.Field)
	}
	return fields
}

// FixedClock reports a constant moment.
type FixedClock struct {
	Moment time.Time
}

// Now returns the configured moment.
func (clock FixedClock) Now() time.Time {
	return clock.Moment
}

// MapFileSystem serves shared.FileSystem queries from an fstest.MapFS whose
// keys are absolute paths without the leading slash.
type MapFileSystem struct {
	Files fstest.MapFS
}

// Stat resolves metadata for an absolute path.
func (fileSystem MapFileSystem) Stat(absolutePath string) (fs.FileInfo, error) {
	return fs.Stat(fileSystem.Files, toMapKey(absolutePath))
}

// ReadDir lists an absolute directory path.
func (fileSystem MapFileSystem) ReadDir(absolutePath string) ([]fs.DirEntry, error) {
	return fs.ReadDir(fileSystem.Files, toMapKey(absolutePath))
}

func toMapKey(absolutePath string) string {
	cleaned := strings.TrimPrefix(path.Clean(absolutePath), "/")
	if len(cleaned) == 0 {
		return "."
	}
	return cleaned
}
