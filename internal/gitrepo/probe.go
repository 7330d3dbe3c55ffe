package gitrepo

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	probeNotLinkedMessageConstant = "Remote not configured"
	probeLinkedMessageConstant    = "Remote configured"
	logFieldRepositoryConstant    = "repository"
	logFieldRemoteConstant        = "remote"
	logFieldRemoteURLConstant     = "remote_url"
)

// RemoteURLReader reads the configured URL of a named remote.
type RemoteURLReader interface {
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// ProbeResult describes whether a working tree is linked to a remote.
// RawURL is populated only when Linked is true.
type ProbeResult struct {
	Linked bool
	RawURL string
}

// RemoteURL parses the probed URL.
func (result ProbeResult) RemoteURL() (RemoteURL, error) {
	return ParseRemoteURL(result.RawURL)
}

// RemoteProbe determines whether a working tree is linked to a remote.
type RemoteProbe struct {
	reader RemoteURLReader
	logger *zap.Logger
}

// NewRemoteProbe constructs a RemoteProbe.
func NewRemoteProbe(reader RemoteURLReader, logger *zap.Logger) RemoteProbe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return RemoteProbe{reader: reader, logger: logger}
}

// Probe reports the remote state of repositoryPath. A failing lookup or blank
// output means the tree is not linked; neither is treated as an error.
func (probe RemoteProbe) Probe(executionContext context.Context, repositoryPath string, remoteName string) ProbeResult {
	if probe.reader == nil {
		return ProbeResult{}
	}

	remoteURL, lookupError := probe.reader.GetRemoteURL(executionContext, repositoryPath, remoteName)
	trimmedURL := strings.TrimSpace(remoteURL)
	if lookupError != nil || len(trimmedURL) == 0 {
		fields := []zap.Field{zap.String(logFieldRepositoryConstant, repositoryPath), zap.String(logFieldRemoteConstant, remoteName)}
		if lookupError != nil {
			fields = append(fields, zap.Error(lookupError))
		}
		probe.logger.Debug(probeNotLinkedMessageConstant, fields...)
		return ProbeResult{}
	}

	probe.logger.Debug(probeLinkedMessageConstant,
		zap.String(logFieldRepositoryConstant, repositoryPath),
		zap.String(logFieldRemoteConstant, remoteName),
		zap.String(logFieldRemoteURLConstant, redactRaw(trimmedURL)),
	)
	return ProbeResult{Linked: true, RawURL: trimmedURL}
}
