package execshell

import "strings"

const (
	schemeSeparatorConstant         = "://"
	credentialSeparatorConstant     = "@"
	authorityTerminatorsConstant    = "/ \t\r\n"
	redactedCredentialValueConstant = "***"
)

// RedactCredentials masks a credential embedded in the authority of a URL-shaped
// value. Values without a scheme separator or without an embedded credential are
// returned unchanged.
func RedactCredentials(value string) string {
	schemeIndex := strings.Index(value, schemeSeparatorConstant)
	if schemeIndex < 0 {
		return value
	}
	authorityStart := schemeIndex + len(schemeSeparatorConstant)
	remainder := value[authorityStart:]
	authorityEnd := strings.IndexAny(remainder, authorityTerminatorsConstant)
	if authorityEnd < 0 {
		authorityEnd = len(remainder)
	}
	authority := remainder[:authorityEnd]
	credentialEnd := strings.LastIndex(authority, credentialSeparatorConstant)
	if credentialEnd < 0 {
		return value
	}
	return value[:authorityStart] + redactedCredentialValueConstant + authority[credentialEnd:] + remainder[authorityEnd:]
}

func redactArguments(arguments []string) []string {
	redacted := make([]string, len(arguments))
	for argumentIndex, argument := range arguments {
		redacted[argumentIndex] = RedactCredentials(argument)
	}
	return redacted
}
