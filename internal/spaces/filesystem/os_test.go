package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spacesync/internal/spaces/filesystem"
)

func TestOSFileSystemReadsDirectories(testInstance *testing.T) {
	root := testInstance.TempDir()
	require.NoError(testInstance, os.Mkdir(filepath.Join(root, "journal"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(root, "index.md"), []byte("# index"), 0o644))

	fileSystem := filesystem.OSFileSystem{}

	entries, readError := fileSystem.ReadDir(root)
	require.NoError(testInstance, readError)
	require.Len(testInstance, entries, 2)
	require.Equal(testInstance, "index.md", entries[0].Name())
	require.Equal(testInstance, "journal", entries[1].Name())
	require.True(testInstance, entries[1].IsDir())

	info, statError := fileSystem.Stat(filepath.Join(root, "index.md"))
	require.NoError(testInstance, statError)
	require.False(testInstance, info.IsDir())

	_, missingError := fileSystem.Stat(filepath.Join(root, "missing"))
	require.True(testInstance, os.IsNotExist(missingError))
}

func TestOSFileSystemDoesNotFollowLinks(testInstance *testing.T) {
	root := testInstance.TempDir()
	targetDirectory := filepath.Join(root, "archive")
	require.NoError(testInstance, os.Mkdir(targetDirectory, 0o755))

	linkPath := filepath.Join(root, "journal")
	if linkError := os.Symlink(targetDirectory, linkPath); linkError != nil {
		testInstance.Skipf("symbolic links unavailable: %v", linkError)
	}

	info, statError := filesystem.OSFileSystem{}.Stat(linkPath)
	require.NoError(testInstance, statError)
	require.False(testInstance, info.IsDir())
	require.NotZero(testInstance, info.Mode()&os.ModeSymlink)
}
