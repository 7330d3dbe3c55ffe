package link_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spacesync/internal/execshell"
	"github.com/temirov/spacesync/internal/spaces/link"
	"github.com/temirov/spacesync/internal/spaces/testsupport"
)

func TestDirectoryMergerResolvesCollisions(testInstance *testing.T) {
	journal := &testsupport.CallJournal{}
	files := &testsupport.FileCommandExecutorStub{Journal: journal}
	fileSystem := testsupport.MapFileSystem{Files: fstest.MapFS{
		"root/staging/docs/guide.md":    {Data: []byte("guide")},
		"root/staging/docs/nested/a.md": {Data: []byte("a")},
		"root/staging/notes":            {Data: []byte("file replaces directory")},
		"root/staging/-dash.md":         {Data: []byte("dash")},
		"root/docs/guide.md":            {Data: []byte("old guide")},
		"root/docs/local.md":            {Data: []byte("kept")},
		"root/notes/inner.md":           {Data: []byte("old directory")},
	}}

	mergeError := link.NewDirectoryMerger(fileSystem, files).Merge(context.Background(), "/root", "staging", ".")
	require.NoError(testInstance, mergeError)

	require.Equal(testInstance, []string{
		"mv -f -- staging/-dash.md -dash.md",
		"rm -rf -- docs/guide.md",
		"mv -f -- staging/docs/guide.md docs/guide.md",
		"mv -f -- staging/docs/nested docs/nested",
		"rm -rf -- notes",
		"mv -f -- staging/notes notes",
	}, journal.Entries)

	for _, command := range files.Commands {
		require.Equal(testInstance, "/root", command.Details.WorkingDirectory)
	}
}

func TestDirectoryMergerSkipsExcludedTopLevelEntries(testInstance *testing.T) {
	journal := &testsupport.CallJournal{}
	files := &testsupport.FileCommandExecutorStub{Journal: journal}
	fileSystem := testsupport.MapFileSystem{Files: fstest.MapFS{
		"root/staging/.git/HEAD":      {Data: []byte("ref")},
		"root/staging/docs/.git/HEAD": {Data: []byte("nested")},
		"root/staging/index.md":       {Data: []byte("index")},
		"root/.git/HEAD":              {Data: []byte("old")},
	}}

	mergeError := link.NewDirectoryMerger(fileSystem, files).Merge(context.Background(), "/root", "staging", ".", ".git")
	require.NoError(testInstance, mergeError)

	require.Equal(testInstance, []string{
		"mv -f -- staging/docs docs",
		"mv -f -- staging/index.md index.md",
	}, journal.Entries)
}

func TestDirectoryMergerStopsOnFirstFailure(testInstance *testing.T) {
	moveFailure := errors.New("permission denied")
	files := &testsupport.FileCommandExecutorStub{Errors: map[execshell.CommandName]error{execshell.CommandMove: moveFailure}}
	fileSystem := testsupport.MapFileSystem{Files: fstest.MapFS{
		"root/staging/a.md": {Data: []byte("a")},
		"root/staging/b.md": {Data: []byte("b")},
	}}

	mergeError := link.NewDirectoryMerger(fileSystem, files).Merge(context.Background(), "/root", "staging", ".")
	require.ErrorIs(testInstance, mergeError, moveFailure)
	require.Len(testInstance, files.Commands, 1)
}

func TestDirectoryMergerReportsMissingSource(testInstance *testing.T) {
	files := &testsupport.FileCommandExecutorStub{}
	fileSystem := testsupport.MapFileSystem{Files: fstest.MapFS{}}

	mergeError := link.NewDirectoryMerger(fileSystem, files).Merge(context.Background(), "/root", "staging", ".")
	require.Error(testInstance, mergeError)
	require.Empty(testInstance, files.Commands)
}
