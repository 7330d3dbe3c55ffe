package pathutils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/spacesync/internal/utils/path"
)

func TestSpaceRootResolverResolve(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	workingDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(homeDirectory, "notes"), 0o755))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(workingDirectory, "space"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(workingDirectory, "file.md"), []byte("# notes"), 0o600))

	resolver := pathutils.NewSpaceRootResolverWith(
		pathutils.NewHomeExpanderWithProvider(func() (string, error) { return homeDirectory, nil }),
		func() (string, error) { return workingDirectory, nil },
		os.Stat,
	)

	testCases := []struct {
		name         string
		candidate    string
		expectedPath string
		expectError  bool
	}{
		{name: "blank_uses_working_directory", candidate: " ", expectedPath: workingDirectory},
		{name: "relative_path", candidate: "space/", expectedPath: filepath.Join(workingDirectory, "space")},
		{name: "home_shortcut", candidate: "~/notes", expectedPath: filepath.Join(homeDirectory, "notes")},
		{name: "absolute_path", candidate: filepath.Join(workingDirectory, "space", ".."), expectedPath: workingDirectory},
		{name: "missing_directory", candidate: "absent", expectError: true},
		{name: "regular_file", candidate: "file.md", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedPath, resolveError := resolver.Resolve(testCase.candidate)
			if testCase.expectError {
				require.Error(testInstance, resolveError)
				return
			}
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedPath, resolvedPath)
		})
	}
}

func TestSpaceRootResolverWorkingDirectoryFailure(testInstance *testing.T) {
	lookupFailure := errors.New("getwd failed")
	resolver := pathutils.NewSpaceRootResolverWith(nil, func() (string, error) { return "", lookupFailure }, nil)

	_, resolveError := resolver.Resolve("space")
	require.ErrorIs(testInstance, resolveError, lookupFailure)
}

func TestHomeExpanderExpand(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) { return "/home/writer", nil })

	require.Equal(testInstance, "/home/writer", expander.Expand("~"))
	require.Equal(testInstance, filepath.Join("/home/writer", "space"), expander.Expand("~/space"))
	require.Equal(testInstance, "relative/~", expander.Expand("relative/~"))
	require.Equal(testInstance, "", expander.Expand(""))
	require.Equal(testInstance, "~alice/space", expander.Expand("~alice/space"))

	failingExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) { return "", errors.New("no home") })
	require.Equal(testInstance, "~/space", failingExpander.Expand("~/space"))
}
