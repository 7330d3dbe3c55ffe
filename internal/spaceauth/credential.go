package spaceauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for a default remote credential.
const (
	EnvSpaceSyncCredential = "SPACESYNC_CREDENTIAL"
	EnvGitHubCLIToken      = "GH_TOKEN"
	EnvGitHubToken         = "GITHUB_TOKEN"
	EnvGitLabToken         = "GITLAB_TOKEN"
)

var credentialPreference = []string{
	EnvSpaceSyncCredential,
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitLabToken,
}

// EnvironmentLookup resolves an environment variable.
type EnvironmentLookup func(key string) (string, bool)

// ResolveCredential returns the first non-blank credential found through
// lookup, in preference order. A nil lookup reads the process environment.
func ResolveCredential(lookup EnvironmentLookup) (string, bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range credentialPreference {
		value, exists := lookup(key)
		if !exists {
			continue
		}
		if trimmedValue := strings.TrimSpace(value); len(trimmedValue) > 0 {
			return trimmedValue, true
		}
	}
	return "", false
}
