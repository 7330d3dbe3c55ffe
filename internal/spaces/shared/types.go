package shared

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/temirov/spacesync/internal/execshell"
)

// Layout defaults for a space.
const (
	// OriginRemoteNameConstant identifies the single remote a space synchronizes with.
	OriginRemoteNameConstant = "origin"
	// StagingDirectoryNameConstant is the staging subdirectory that receives fresh clones.
	StagingDirectoryNameConstant = "_sb_git"
	// MetadataDirectoryNameConstant is the git metadata directory at the space root.
	MetadataDirectoryNameConstant = ".git"
	// IgnoreFileNameConstant is the ignore file seeded during linking.
	IgnoreFileNameConstant = ".gitignore"
)

// DefaultIgnoreEntries lists the patterns seeded into the ignore file: local
// database files, the derived plugin cache and the library cache.
func DefaultIgnoreEntries() []string {
	return []string{".silverbullet.db*", "_plug/", "Library/"}
}

// SpaceLayout locates a space and its remote.
type SpaceLayout struct {
	Root             string
	RemoteName       string
	StagingDirectory string
	IgnoreEntries    []string
}

// Sanitize fills blank values with their defaults. A staging directory that
// is not a single plain name inside the space falls back to the default.
func (layout SpaceLayout) Sanitize() SpaceLayout {
	sanitized := layout
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = OriginRemoteNameConstant
	}
	if !IsStagingDirectoryName(sanitized.StagingDirectory) {
		sanitized.StagingDirectory = StagingDirectoryNameConstant
	}
	if sanitized.IgnoreEntries == nil {
		sanitized.IgnoreEntries = DefaultIgnoreEntries()
	}
	return sanitized
}

// IsStagingDirectoryName reports whether name is a single relative path
// component that can be removed and recreated without touching anything
// outside of it.
func IsStagingDirectoryName(name string) bool {
	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) == 0 || trimmedName != name {
		return false
	}
	if filepath.IsAbs(name) || len(filepath.VolumeName(name)) > 0 || strings.ContainsAny(name, `/\`) {
		return false
	}
	switch name {
	case ".", "..", MetadataDirectoryNameConstant:
		return false
	}
	return true
}

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FileSystem exposes the read-only filesystem queries used to plan a content merge.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
}

// Notifier delivers fire-and-forget status messages to the user.
type Notifier interface {
	Notify(message string)
}

// Prompter requests free-text input from the user.
type Prompter interface {
	Prompt(executionContext context.Context, request PromptRequest) (PromptResult, error)
}

// GitRepositoryManager exposes the git operations used by the space workflows.
type GitRepositoryManager interface {
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	StageAll(executionContext context.Context, repositoryPath string) error
	Commit(executionContext context.Context, repositoryPath string, message string) error
	Pull(executionContext context.Context, repositoryPath string) error
	Push(executionContext context.Context, repositoryPath string) error
	Clone(executionContext context.Context, workingDirectory string, remoteURL string, destination string) error
	SetConfigurationValue(executionContext context.Context, repositoryPath string, key string, value string) error
}

// GitExecutor exposes the git subset of execshell.ShellExecutor.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileCommandExecutor exposes the file mutation subset of execshell.ShellExecutor.
type FileCommandExecutor interface {
	ExecuteRemove(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteMove(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteTee(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
