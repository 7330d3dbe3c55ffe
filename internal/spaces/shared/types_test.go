package shared_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/spacesync/internal/spaces/shared"
)

func TestPromptResultValue(testInstance *testing.T) {
	testCases := []struct {
		name          string
		result        shared.PromptResult
		expectedValue string
		expectedOK    bool
	}{
		{name: "answered", result: shared.Answered("  value \n"), expectedValue: "value", expectedOK: true},
		{name: "blank", result: shared.Answered("   "), expectedOK: false},
		{name: "cancelled", result: shared.Cancelled(), expectedOK: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			value, ok := testCase.result.Value()
			require.Equal(testInstance, testCase.expectedValue, value)
			require.Equal(testInstance, testCase.expectedOK, ok)
		})
	}
}

func TestPromptResultIsAffirmative(testInstance *testing.T) {
	testCases := []struct {
		response string
		expected bool
	}{
		{response: "y", expected: true},
		{response: "Y", expected: true},
		{response: "yes", expected: true},
		{response: " YeS ", expected: true},
		{response: "no", expected: false},
		{response: "n", expected: false},
		{response: "yep", expected: false},
		{response: "", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.response, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, shared.Answered(testCase.response).IsAffirmative())
		})
	}
	require.False(testInstance, shared.Cancelled().IsAffirmative())
}

func TestSpaceLayoutSanitize(testInstance *testing.T) {
	sanitized := shared.SpaceLayout{Root: "/space"}.Sanitize()
	require.Equal(testInstance, "/space", sanitized.Root)
	require.Equal(testInstance, shared.OriginRemoteNameConstant, sanitized.RemoteName)
	require.Equal(testInstance, shared.StagingDirectoryNameConstant, sanitized.StagingDirectory)
	require.Equal(testInstance, []string{".silverbullet.db*", "_plug/", "Library/"}, sanitized.IgnoreEntries)

	customized := shared.SpaceLayout{Root: "/space", RemoteName: "upstream", StagingDirectory: "tmp", IgnoreEntries: []string{}}.Sanitize()
	require.Equal(testInstance, "upstream", customized.RemoteName)
	require.Equal(testInstance, "tmp", customized.StagingDirectory)
	require.Empty(testInstance, customized.IgnoreEntries)
}

func TestIsStagingDirectoryName(testInstance *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "default", value: shared.StagingDirectoryNameConstant, expected: true},
		{name: "custom", value: "_staging", expected: true},
		{name: "blank", value: "  ", expected: false},
		{name: "padded", value: " _staging", expected: false},
		{name: "absolute", value: "/home/writer", expected: false},
		{name: "nested", value: "journal/_staging", expected: false},
		{name: "backslash", value: `journal\_staging`, expected: false},
		{name: "current", value: ".", expected: false},
		{name: "parent", value: "..", expected: false},
		{name: "escaping", value: "../outside", expected: false},
		{name: "metadata", value: ".git", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, shared.IsStagingDirectoryName(testCase.value))
		})
	}
}

func TestSpaceLayoutSanitizeReplacesUnsafeStagingDirectory(testInstance *testing.T) {
	for _, unsafeValue := range []string{"/home/writer", "..", ".git", "a/b"} {
		sanitized := shared.SpaceLayout{Root: "/space", StagingDirectory: unsafeValue}.Sanitize()
		require.Equal(testInstance, shared.StagingDirectoryNameConstant, sanitized.StagingDirectory, unsafeValue)
	}
}

func TestConfirmationPolicyFromBool(testInstance *testing.T) {
	require.True(testInstance, shared.ConfirmationPolicyFromBool(false).ShouldPrompt())
	require.False(testInstance, shared.ConfirmationPolicyFromBool(true).ShouldPrompt())
}

func TestOutcomeString(testInstance *testing.T) {
	require.Equal(testInstance, "completed", shared.OutcomeCompleted.String())
	require.Equal(testInstance, "cancelled", shared.OutcomeCancelled.String())
	require.Equal(testInstance, "failed", shared.OutcomeFailed.String())
}

func TestTypedErrorsUnwrap(testInstance *testing.T) {
	cause := errors.New("exit status 1")

	syncFailure := shared.SyncFailedError{Stage: shared.SyncStagePull, Cause: cause}
	require.ErrorIs(testInstance, syncFailure, cause)
	require.Equal(testInstance, "sync failed during pull: exit status 1", syncFailure.Error())

	cloneFailure := shared.CloneFailedError{Cause: cause}
	require.ErrorIs(testInstance, cloneFailure, cause)

	mergeFailure := shared.MergeFailedError{Cause: cause}
	require.ErrorIs(testInstance, mergeFailure, cause)
}
