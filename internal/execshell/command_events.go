package execshell

// CommandEventObserver receives lifecycle notifications for shell command execution.
// A configured observer replaces the executor's structured log entries.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	CommandExecutionFailed(command ShellCommand, failure error)
}
