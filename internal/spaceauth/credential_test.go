package spaceauth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveCredential(testInstance *testing.T) {
	testCases := []struct {
		name          string
		environment   map[string]string
		expectedValue string
		expectFound   bool
	}{
		{
			name:          "explicit_credential_preferred",
			environment:   map[string]string{EnvGitHubToken: "github", EnvSpaceSyncCredential: "user:space"},
			expectedValue: "user:space",
			expectFound:   true,
		},
		{
			name:          "gitlab_token_used_last",
			environment:   map[string]string{EnvGitLabToken: "gitlab"},
			expectedValue: "gitlab",
			expectFound:   true,
		},
		{
			name:          "blank_values_skipped",
			environment:   map[string]string{EnvSpaceSyncCredential: "  ", EnvGitHubCLIToken: " cli "},
			expectedValue: "cli",
			expectFound:   true,
		},
		{
			name:        "nothing_configured",
			environment: map[string]string{EnvGitHubToken: ""},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			lookup := func(key string) (string, bool) {
				value, exists := testCase.environment[key]
				return value, exists
			}

			value, found := ResolveCredential(lookup)
			require.Equal(testInstance, testCase.expectFound, found)
			require.Equal(testInstance, testCase.expectedValue, value)
		})
	}
}

func TestResolveCredentialReadsProcessEnvironment(testInstance *testing.T) {
	for _, key := range credentialPreference {
		testInstance.Setenv(key, "")
	}
	testInstance.Setenv(EnvGitHubToken, "process-token")

	value, found := ResolveCredential(nil)
	require.True(testInstance, found)
	require.Equal(testInstance, "process-token", value)
}
