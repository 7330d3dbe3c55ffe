package link

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/temirov/spacesync/internal/execshell"
	"github.com/temirov/spacesync/internal/spaces/shared"
)

const (
	recursiveForceFlagConstant = "-rf"
	forceFlagConstant          = "-f"
	appendFlagConstant         = "-a"
	endOfOptionsConstant       = "--"
)

// DirectoryMerger moves the contents of one directory into another. Directories
// present on both sides are merged recursively; any other collision is replaced
// by the source entry. Listing uses the read-only FileSystem and every mutation
// is an argument list run through the FileCommandExecutor.
type DirectoryMerger struct {
	fileSystem shared.FileSystem
	files      shared.FileCommandExecutor
}

// NewDirectoryMerger constructs a DirectoryMerger.
func NewDirectoryMerger(fileSystem shared.FileSystem, files shared.FileCommandExecutor) DirectoryMerger {
	return DirectoryMerger{fileSystem: fileSystem, files: files}
}

// Merge moves every entry of source into destination. Both paths are relative
// to root. Top-level source entries named in excluded are left in place.
func (merger DirectoryMerger) Merge(executionContext context.Context, root string, source string, destination string, excluded ...string) error {
	entries, readError := merger.fileSystem.ReadDir(filepath.Join(root, source))
	if readError != nil {
		return readError
	}

	for _, entry := range entries {
		if slices.Contains(excluded, entry.Name()) {
			continue
		}
		sourcePath := filepath.Join(source, entry.Name())
		destinationPath := filepath.Join(destination, entry.Name())

		destinationInfo, statError := merger.fileSystem.Stat(filepath.Join(root, destinationPath))
		switch {
		case statError == nil && entry.IsDir() && destinationInfo.IsDir():
			if mergeError := merger.Merge(executionContext, root, sourcePath, destinationPath); mergeError != nil {
				return mergeError
			}
			continue
		case statError == nil:
			if removeError := removePath(executionContext, merger.files, root, destinationPath); removeError != nil {
				return removeError
			}
		case !errors.Is(statError, fs.ErrNotExist):
			return statError
		}

		if moveError := movePath(executionContext, merger.files, root, sourcePath, destinationPath); moveError != nil {
			return moveError
		}
	}
	return nil
}

func removePath(executionContext context.Context, files shared.FileCommandExecutor, root string, target string) error {
	_, removeError := files.ExecuteRemove(executionContext, execshell.CommandDetails{
		Arguments:        []string{recursiveForceFlagConstant, endOfOptionsConstant, target},
		WorkingDirectory: root,
	})
	return removeError
}

func movePath(executionContext context.Context, files shared.FileCommandExecutor, root string, source string, destination string) error {
	_, moveError := files.ExecuteMove(executionContext, execshell.CommandDetails{
		Arguments:        []string{forceFlagConstant, endOfOptionsConstant, source, destination},
		WorkingDirectory: root,
	})
	return moveError
}

func appendLines(executionContext context.Context, files shared.FileCommandExecutor, root string, target string, content []byte) error {
	_, appendError := files.ExecuteTee(executionContext, execshell.CommandDetails{
		Arguments:        []string{appendFlagConstant, endOfOptionsConstant, target},
		WorkingDirectory: root,
		StandardInput:    content,
	})
	return appendError
}
