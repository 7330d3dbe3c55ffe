package dependencies_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/spacesync/internal/execshell"
	"github.com/temirov/spacesync/internal/gitrepo"
	"github.com/temirov/spacesync/internal/spaces/dependencies"
	"github.com/temirov/spacesync/internal/spaces/filesystem"
	"github.com/temirov/spacesync/internal/spaces/shared"
	"github.com/temirov/spacesync/internal/spaces/testsupport"
)

func TestResolveFileSystem(testInstance *testing.T) {
	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))

	existing := testsupport.MapFileSystem{}
	require.Equal(testInstance, existing, dependencies.ResolveFileSystem(existing))
}

func TestResolveClock(testInstance *testing.T) {
	require.IsType(testInstance, shared.SystemClock{}, dependencies.ResolveClock(nil))

	existing := testsupport.FixedClock{Moment: time.Date(2024, time.March, 4, 9, 10, 0, 0, time.UTC)}
	require.Equal(testInstance, existing, dependencies.ResolveClock(existing))
}

func TestResolveShellExecutor(testInstance *testing.T) {
	resolvedExecutor, resolveError := dependencies.ResolveShellExecutor(nil, nil)
	require.NoError(testInstance, resolveError)
	require.NotNil(testInstance, resolvedExecutor)

	existing, constructionError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, constructionError)

	reusedExecutor, reuseError := dependencies.ResolveShellExecutor(existing, zap.NewNop())
	require.NoError(testInstance, reuseError)
	require.Same(testInstance, existing, reusedExecutor)
}

func TestResolveGitRepositoryManager(testInstance *testing.T) {
	existing := &testsupport.GitManagerStub{}
	reusedManager, reuseError := dependencies.ResolveGitRepositoryManager(existing, nil)
	require.NoError(testInstance, reuseError)
	require.Same(testInstance, existing, reusedManager)

	shellExecutor, constructionError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, constructionError)

	resolvedManager, resolveError := dependencies.ResolveGitRepositoryManager(nil, shellExecutor)
	require.NoError(testInstance, resolveError)
	require.IsType(testInstance, &gitrepo.RepositoryManager{}, resolvedManager)
}
