// Package gitrepo models git remotes and drives the git CLI for a single space.
//
// RemoteURL is the credential-aware view of a remote address. RepositoryManager
// renders every git operation spacesync needs as an argument list executed
// through execshell, and RemoteProbe answers whether a working tree is linked.
package gitrepo
