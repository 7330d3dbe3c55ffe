package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/spacesync/internal/gitrepo"
)

type stubRemoteURLReader struct {
	remoteURL   string
	lookupError error
}

func (reader stubRemoteURLReader) GetRemoteURL(context.Context, string, string) (string, error) {
	return reader.remoteURL, reader.lookupError
}

func TestRemoteProbe(testInstance *testing.T) {
	testCases := []struct {
		name           string
		reader         gitrepo.RemoteURLReader
		expectedLinked bool
		expectedRawURL string
	}{
		{
			name:           "linked",
			reader:         stubRemoteURLReader{remoteURL: " https://tok@github.com/u/r.git\n"},
			expectedLinked: true,
			expectedRawURL: "https://tok@github.com/u/r.git",
		},
		{
			name:   "lookup_failure_is_not_linked",
			reader: stubRemoteURLReader{lookupError: errors.New("error: No such remote 'origin'")},
		},
		{
			name:   "blank_output_is_not_linked",
			reader: stubRemoteURLReader{remoteURL: "   "},
		},
		{
			name:   "missing_reader_is_not_linked",
			reader: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			probe := gitrepo.NewRemoteProbe(testCase.reader, nil)
			result := probe.Probe(context.Background(), testRepositoryPathConstant, testRemoteNameConstant)
			require.Equal(testInstance, testCase.expectedLinked, result.Linked)
			require.Equal(testInstance, testCase.expectedRawURL, result.RawURL)
		})
	}
}

func TestRemoteProbeLogsRedactedURL(testInstance *testing.T) {
	observerCore, observerLogs := observer.New(zap.DebugLevel)
	probe := gitrepo.NewRemoteProbe(stubRemoteURLReader{remoteURL: "https://secret@github.com/u/r"}, zap.New(observerCore))

	result := probe.Probe(context.Background(), testRepositoryPathConstant, testRemoteNameConstant)
	require.True(testInstance, result.Linked)

	parsed, parseError := result.RemoteURL()
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, "github.com", parsed.Host())

	require.Equal(testInstance, 1, observerLogs.Len())
	require.Equal(testInstance, "https://***@github.com/u/r", observerLogs.All()[0].ContextMap()["remote_url"])
}
