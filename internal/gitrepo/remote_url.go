package gitrepo

import (
	"errors"
	"fmt"
	"strings"
)

const (
	pathSeparatorConstant                  = "/"
	schemeTerminatorConstant               = ":"
	credentialSeparatorConstant            = "@"
	gitSuffixConstant                      = ".git"
	redactedCredentialConstant             = "***"
	credentialDisallowedCharactersConstant = "/ \t\r\n"
	malformedURLErrorTemplateConstant      = "malformed remote url %q: %s"
	missingSchemeMessageConstant           = "missing scheme"
	missingAuthorityMessageConstant        = "missing authority"
	missingPathMessageConstant             = "missing repository path"
	emptyURLMessageConstant                = "value required"
	unexpectedShapeMessageConstant         = "expected scheme://authority/path"
	emptyCredentialMessageConstant         = "credential must not be empty"
	invalidCredentialMessageConstant       = "credential must not contain '/' or whitespace"
	minimumURLSegmentCountConstant         = 4
	schemeSegmentIndexConstant             = 0
	separatorSegmentIndexConstant          = 1
	authoritySegmentIndexConstant          = 2
	firstPathSegmentIndexConstant          = 3
)

var (
	// ErrEmptyCredential indicates a credential injection received a blank credential.
	ErrEmptyCredential = errors.New(emptyCredentialMessageConstant)
	// ErrInvalidCredential indicates a credential would corrupt the URL structure.
	ErrInvalidCredential = errors.New(invalidCredentialMessageConstant)
)

// MalformedURLError reports a remote address that does not have the
// scheme://authority/path shape.
type MalformedURLError struct {
	Input  string
	Reason string
}

// Error describes the parse failure without echoing embedded credentials.
func (malformed MalformedURLError) Error() string {
	return fmt.Sprintf(malformedURLErrorTemplateConstant, redactRaw(malformed.Input), malformed.Reason)
}

// RemoteURL is a structured remote address. Authority holds the host, optionally
// prefixed with "credential@". PathSegments are kept verbatim, so a trailing
// ".git" stays on the last segment and GitSuffix records its presence.
type RemoteURL struct {
	Scheme       string
	Authority    string
	PathSegments []string
	GitSuffix    bool
}

// ParseRemoteURL converts a textual remote address into a RemoteURL.
// Surrounding whitespace, such as the newline git prints, is ignored.
func ParseRemoteURL(raw string) (RemoteURL, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return RemoteURL{}, MalformedURLError{Input: raw, Reason: emptyURLMessageConstant}
	}

	segments := strings.Split(trimmed, pathSeparatorConstant)
	if len(segments) < minimumURLSegmentCountConstant {
		return RemoteURL{}, MalformedURLError{Input: trimmed, Reason: unexpectedShapeMessageConstant}
	}

	schemeSegment := segments[schemeSegmentIndexConstant]
	scheme := strings.TrimSuffix(schemeSegment, schemeTerminatorConstant)
	if !strings.HasSuffix(schemeSegment, schemeTerminatorConstant) || len(scheme) == 0 || strings.Contains(scheme, schemeTerminatorConstant) {
		return RemoteURL{}, MalformedURLError{Input: trimmed, Reason: missingSchemeMessageConstant}
	}
	if len(segments[separatorSegmentIndexConstant]) != 0 {
		return RemoteURL{}, MalformedURLError{Input: trimmed, Reason: unexpectedShapeMessageConstant}
	}

	authority := segments[authoritySegmentIndexConstant]
	if len(hostOf(authority)) == 0 {
		return RemoteURL{}, MalformedURLError{Input: trimmed, Reason: missingAuthorityMessageConstant}
	}

	pathSegments := append([]string{}, segments[firstPathSegmentIndexConstant:]...)
	if !containsNonEmpty(pathSegments) {
		return RemoteURL{}, MalformedURLError{Input: trimmed, Reason: missingPathMessageConstant}
	}

	return RemoteURL{
		Scheme:       scheme,
		Authority:    authority,
		PathSegments: pathSegments,
		GitSuffix:    strings.HasSuffix(pathSegments[len(pathSegments)-1], gitSuffixConstant),
	}, nil
}

// Host returns the authority with any embedded credential removed.
func (remote RemoteURL) Host() string {
	return hostOf(remote.Authority)
}

// Credential returns the embedded credential and whether one is present.
func (remote RemoteURL) Credential() (string, bool) {
	separatorIndex := strings.LastIndex(remote.Authority, credentialSeparatorConstant)
	if separatorIndex < 0 {
		return "", false
	}
	return remote.Authority[:separatorIndex], true
}

// InjectCredential embeds the credential in the authority, discarding any
// credential already present. Injecting the same credential twice is a no-op.
func (remote RemoteURL) InjectCredential(credential string) (RemoteURL, error) {
	return remote.ReplaceCredential(credential)
}

// ReplaceCredential replaces everything in the authority up to and including
// the last "@" with the new credential. Path segments are never altered.
func (remote RemoteURL) ReplaceCredential(credential string) (RemoteURL, error) {
	trimmedCredential := strings.TrimSpace(credential)
	if len(trimmedCredential) == 0 {
		return RemoteURL{}, ErrEmptyCredential
	}
	if strings.ContainsAny(trimmedCredential, credentialDisallowedCharactersConstant) {
		return RemoteURL{}, ErrInvalidCredential
	}

	rewritten := remote.clone()
	rewritten.Authority = trimmedCredential + credentialSeparatorConstant + remote.Host()
	return rewritten, nil
}

// WithoutCredential returns a copy whose authority is the bare host.
func (remote RemoteURL) WithoutCredential() RemoteURL {
	stripped := remote.clone()
	stripped.Authority = remote.Host()
	return stripped
}

// String serializes the remote. A ".git" suffix is appended only when
// GitSuffix is set and the last segment does not already carry it.
func (remote RemoteURL) String() string {
	if len(remote.Scheme) == 0 && len(remote.Authority) == 0 && len(remote.PathSegments) == 0 {
		return ""
	}

	pathSegments := append([]string{}, remote.PathSegments...)
	lastIndex := len(pathSegments) - 1
	if remote.GitSuffix && lastIndex >= 0 && !strings.HasSuffix(pathSegments[lastIndex], gitSuffixConstant) {
		pathSegments[lastIndex] += gitSuffixConstant
	}

	segments := make([]string, 0, len(pathSegments)+3)
	segments = append(segments, remote.Scheme+schemeTerminatorConstant, "", remote.Authority)
	segments = append(segments, pathSegments...)
	return strings.Join(segments, pathSeparatorConstant)
}

// Redacted serializes the remote with the credential masked.
func (remote RemoteURL) Redacted() string {
	if _, hasCredential := remote.Credential(); !hasCredential {
		return remote.String()
	}
	masked := remote.clone()
	masked.Authority = redactedCredentialConstant + credentialSeparatorConstant + remote.Host()
	return masked.String()
}

func (remote RemoteURL) clone() RemoteURL {
	copied := remote
	copied.PathSegments = append([]string{}, remote.PathSegments...)
	return copied
}

func hostOf(authority string) string {
	separatorIndex := strings.LastIndex(authority, credentialSeparatorConstant)
	if separatorIndex < 0 {
		return authority
	}
	return authority[separatorIndex+1:]
}

func containsNonEmpty(values []string) bool {
	for _, value := range values {
		if len(value) > 0 {
			return true
		}
	}
	return false
}

func redactRaw(raw string) string {
	segments := strings.Split(raw, pathSeparatorConstant)
	if len(segments) <= authoritySegmentIndexConstant {
		return raw
	}
	authority := segments[authoritySegmentIndexConstant]
	if !strings.Contains(authority, credentialSeparatorConstant) {
		return raw
	}
	segments[authoritySegmentIndexConstant] = redactedCredentialConstant + credentialSeparatorConstant + hostOf(authority)
	return strings.Join(segments, pathSeparatorConstant)
}
