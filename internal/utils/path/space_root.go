package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	spaceRootResolutionErrorTemplateConstant   = "unable to resolve space root %q: %w"
	spaceRootNotDirectoryTemplateConstant      = "space root %q is not a directory"
	workingDirectoryUnavailableMessageConstant = "working directory unavailable"
)

// ErrWorkingDirectoryUnavailable indicates the relative base for a space root is missing.
var ErrWorkingDirectoryUnavailable = errors.New(workingDirectoryUnavailableMessageConstant)

// SpaceRootResolver converts user-supplied space paths into absolute directories.
type SpaceRootResolver struct {
	homeExpander     *HomeExpander
	workingDirectory func() (string, error)
	stat             func(string) (os.FileInfo, error)
}

// NewSpaceRootResolver constructs a resolver using the operating system.
func NewSpaceRootResolver() SpaceRootResolver {
	return NewSpaceRootResolverWith(NewHomeExpander(), os.Getwd, os.Stat)
}

// NewSpaceRootResolverWith constructs a resolver with explicit collaborators.
func NewSpaceRootResolverWith(homeExpander *HomeExpander, workingDirectory func() (string, error), stat func(string) (os.FileInfo, error)) SpaceRootResolver {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	if stat == nil {
		stat = os.Stat
	}
	return SpaceRootResolver{homeExpander: homeExpander, workingDirectory: workingDirectory, stat: stat}
}

// Resolve expands home shortcuts, anchors relative paths at the working
// directory and verifies the result is an existing directory. A blank
// candidate resolves to the working directory.
func (resolver SpaceRootResolver) Resolve(candidatePath string) (string, error) {
	expandedPath := resolver.homeExpander.Expand(strings.TrimSpace(candidatePath))

	if !filepath.IsAbs(expandedPath) {
		if resolver.workingDirectory == nil {
			return "", fmt.Errorf(spaceRootResolutionErrorTemplateConstant, candidatePath, ErrWorkingDirectoryUnavailable)
		}
		workingDirectory, workingDirectoryError := resolver.workingDirectory()
		if workingDirectoryError != nil {
			return "", fmt.Errorf(spaceRootResolutionErrorTemplateConstant, candidatePath, workingDirectoryError)
		}
		expandedPath = filepath.Join(workingDirectory, expandedPath)
	}

	cleanedPath := filepath.Clean(expandedPath)
	fileInfo, statError := resolver.stat(cleanedPath)
	if statError != nil {
		return "", fmt.Errorf(spaceRootResolutionErrorTemplateConstant, candidatePath, statError)
	}
	if !fileInfo.IsDir() {
		return "", fmt.Errorf(spaceRootNotDirectoryTemplateConstant, cleanedPath)
	}
	return cleanedPath, nil
}
