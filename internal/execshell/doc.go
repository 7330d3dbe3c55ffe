// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with lifecycle logging and converts
// non-zero exit codes into CommandFailedError values. OSCommandRunner is the
// os/exec backed runner. Every mutation spacesync performs on a space, git or
// file system alike, is expressed as an argument list passed through here.
package execshell
