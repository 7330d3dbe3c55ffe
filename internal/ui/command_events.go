package ui

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/spacesync/internal/execshell"
)

const (
	gitStatusSubcommandConstant       = "status"
	gitRemoteSubcommandConstant       = "remote"
	gitRemoteGetURLActionConstant     = "get-url"
	remoteActionArgumentIndexConstant = 1
)

// ConsoleCommandEventLogger renders command lifecycle events as sentences
// through a zap logger configured for human-readable output. Read-only probes
// of a space (remote lookup, working tree status) are logged at debug level,
// including a non-zero exit, since their callers interpret the result.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.log(probeLevel(command, zapcore.InfoLevel), eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.log(probeLevel(command, zapcore.InfoLevel), eventLogger.formatter.BuildSuccessMessage(command, result))
		return
	}
	eventLogger.log(probeLevel(command, zapcore.WarnLevel), eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.log(zapcore.ErrorLevel, eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}

func (eventLogger *ConsoleCommandEventLogger) log(level zapcore.Level, message string) {
	if checkedEntry := eventLogger.logger.Check(level, message); checkedEntry != nil {
		checkedEntry.Write()
	}
}

func probeLevel(command execshell.ShellCommand, defaultLevel zapcore.Level) zapcore.Level {
	if command.Name != execshell.CommandGit || len(command.Details.Arguments) == 0 {
		return defaultLevel
	}
	arguments := command.Details.Arguments
	switch arguments[0] {
	case gitStatusSubcommandConstant:
		return zapcore.DebugLevel
	case gitRemoteSubcommandConstant:
		if len(arguments) > remoteActionArgumentIndexConstant && arguments[remoteActionArgumentIndexConstant] == gitRemoteGetURLActionConstant {
			return zapcore.DebugLevel
		}
	}
	return defaultLevel
}
