package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
	gitRemoteSetURLSubcommandNameConstant = "set-url"
	gitStatusSubcommandNameConstant       = "status"
	gitAddSubcommandNameConstant          = "add"
	gitCommitSubcommandNameConstant       = "commit"
	gitPullSubcommandNameConstant         = "pull"
	gitPushSubcommandNameConstant         = "push"
	gitCloneSubcommandNameConstant        = "clone"
	gitConfigSubcommandNameConstant       = "config"
	gitMessageFlagConstant                = "-m"
)

const (
	gitRemoteLookupStartTemplateConstant            = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant          = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant          = "No %s remote configured for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant = "Unable to read %s remote for %s: %s"
	gitRemoteUpdateStartTemplateConstant            = "Updating %s remote for %s to %s"
	gitRemoteUpdateSuccessTemplateConstant          = "%s remote for %s now points to %s"
	gitRemoteUpdateFailureTemplateConstant          = "Failed to update %s remote for %s to %s (exit code %d%s)"
	gitRemoteUpdateExecutionFailureTemplateConstant = "Unable to update %s remote for %s to %s: %s"
	gitStatusStartTemplateConstant                  = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant                = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant                = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant       = "Unable to review working tree status in %s: %s"
	gitAddStartTemplateConstant                     = "Staging changes in %s"
	gitAddSuccessTemplateConstant                   = "Staged changes in %s"
	gitAddFailureTemplateConstant                   = "Failed to stage changes in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant          = "Unable to stage changes in %s: %s"
	gitCommitStartTemplateConstant                  = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant       = "Unable to create commit in %s with message %q: %s"
	gitPullStartTemplateConstant                    = "Pulling remote changes into %s"
	gitPullSuccessTemplateConstant                  = "Pulled remote changes into %s"
	gitPullFailureTemplateConstant                  = "Failed to pull remote changes into %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant         = "Unable to pull remote changes into %s: %s"
	gitPushStartTemplateConstant                    = "Pushing local commits from %s"
	gitPushSuccessTemplateConstant                  = "Pushed local commits from %s"
	gitPushFailureTemplateConstant                  = "Failed to push local commits from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant         = "Unable to push local commits from %s: %s"
	gitCloneStartTemplateConstant                   = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                 = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                 = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant        = "Unable to clone %s into %s: %s"
	gitConfigStartTemplateConstant                  = "Setting %s in %s"
	gitConfigSuccessTemplateConstant                = "Set %s in %s"
	gitConfigFailureTemplateConstant                = "Failed to set %s in %s (exit code %d%s)"
	gitConfigExecutionFailureTemplateConstant       = "Unable to set %s in %s: %s"
)

const (
	removeStartTemplateConstant            = "Removing %s from %s"
	removeSuccessTemplateConstant          = "Removed %s from %s"
	removeFailureTemplateConstant          = "Failed to remove %s from %s (exit code %d%s)"
	removeExecutionFailureTemplateConstant = "Unable to remove %s from %s: %s"
	moveStartTemplateConstant              = "Moving %s to %s in %s"
	moveSuccessTemplateConstant            = "Moved %s to %s in %s"
	moveFailureTemplateConstant            = "Failed to move %s to %s in %s (exit code %d%s)"
	moveExecutionFailureTemplateConstant   = "Unable to move %s to %s in %s: %s"
	appendStartTemplateConstant            = "Appending entries to %s in %s"
	appendSuccessTemplateConstant          = "Appended entries to %s in %s"
	appendFailureTemplateConstant          = "Failed to append entries to %s in %s (exit code %d%s)"
	appendExecutionFailureTemplateConstant = "Unable to append entries to %s in %s: %s"
)

// stageTemplates groups the four lifecycle templates of one command kind.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
// Every URL-shaped argument is rendered with its credential redacted.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a command that exited with code zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandRemove:
		targets := formatter.joinOperands(command.Details.Arguments)
		return formatter.render(stageTemplates{removeStartTemplateConstant, removeSuccessTemplateConstant, removeFailureTemplateConstant, removeExecutionFailureTemplateConstant}, []any{targets, formatter.describeWorkingDirectory(command)}, result, failure, stage)
	case CommandMove:
		operands := formatter.operands(command.Details.Arguments)
		if len(operands) != 2 {
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
		return formatter.render(stageTemplates{moveStartTemplateConstant, moveSuccessTemplateConstant, moveFailureTemplateConstant, moveExecutionFailureTemplateConstant}, []any{operands[0], operands[1], formatter.describeWorkingDirectory(command)}, result, failure, stage)
	case CommandTee:
		targets := formatter.joinOperands(command.Details.Arguments)
		return formatter.render(stageTemplates{appendStartTemplateConstant, appendSuccessTemplateConstant, appendFailureTemplateConstant, appendExecutionFailureTemplateConstant}, []any{targets, formatter.describeWorkingDirectory(command)}, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch strings.TrimSpace(arguments[0]) {
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.render(stageTemplates{gitStatusStartTemplateConstant, gitStatusSuccessTemplateConstant, gitStatusFailureTemplateConstant, gitStatusExecutionFailureTemplateConstant}, []any{workingDirectory}, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.render(stageTemplates{gitAddStartTemplateConstant, gitAddSuccessTemplateConstant, gitAddFailureTemplateConstant, gitAddExecutionFailureTemplateConstant}, []any{workingDirectory}, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		commitMessage := findFlagValue(arguments, gitMessageFlagConstant)
		return formatter.render(stageTemplates{gitCommitStartTemplateConstant, gitCommitSuccessTemplateConstant, gitCommitFailureTemplateConstant, gitCommitExecutionFailureTemplateConstant}, []any{workingDirectory, commitMessage}, result, failure, stage)
	case gitPullSubcommandNameConstant:
		return formatter.render(stageTemplates{gitPullStartTemplateConstant, gitPullSuccessTemplateConstant, gitPullFailureTemplateConstant, gitPullExecutionFailureTemplateConstant}, []any{workingDirectory}, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.render(stageTemplates{gitPushStartTemplateConstant, gitPushSuccessTemplateConstant, gitPushFailureTemplateConstant, gitPushExecutionFailureTemplateConstant}, []any{workingDirectory}, result, failure, stage)
	case gitCloneSubcommandNameConstant:
		operands := formatter.operands(arguments[1:])
		if len(operands) != 2 {
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
		return formatter.render(stageTemplates{gitCloneStartTemplateConstant, gitCloneSuccessTemplateConstant, gitCloneFailureTemplateConstant, gitCloneExecutionFailureTemplateConstant}, []any{operands[0], operands[1]}, result, failure, stage)
	case gitConfigSubcommandNameConstant:
		configurationKey := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
		return formatter.render(stageTemplates{gitConfigStartTemplateConstant, gitConfigSuccessTemplateConstant, gitConfigFailureTemplateConstant, gitConfigExecutionFailureTemplateConstant}, []any{configurationKey, workingDirectory}, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))

	switch strings.TrimSpace(formatter.argumentAtIndex(arguments, 1)) {
	case gitRemoteGetURLSubcommandNameConstant:
		if stage == messageStageSuccess {
			remoteURL := formatter.ensureValue(RedactCredentials(strings.TrimSpace(result.StandardOutput)))
			return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, remoteURL)
		}
		return formatter.render(stageTemplates{gitRemoteLookupStartTemplateConstant, emptyStringConstant, gitRemoteLookupFailureTemplateConstant, gitRemoteLookupExecutionFailureTemplateConstant}, []any{remoteName, workingDirectory}, result, failure, stage)
	case gitRemoteSetURLSubcommandNameConstant:
		targetURL := formatter.ensureValue(RedactCredentials(formatter.argumentAtIndex(arguments, 3)))
		return formatter.render(stageTemplates{gitRemoteUpdateStartTemplateConstant, gitRemoteUpdateSuccessTemplateConstant, gitRemoteUpdateFailureTemplateConstant, gitRemoteUpdateExecutionFailureTemplateConstant}, []any{remoteName, workingDirectory, targetURL}, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

// render applies the template matching the stage. Failure templates receive the
// exit code and standard error suffix after the subject values; execution
// failure templates receive the failure description.
func (formatter CommandMessageFormatter) render(templates stageTemplates, subjects []any, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subjects...)
	case messageStageFailure:
		failureArguments := append(append([]any{}, subjects...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, failureArguments...)
	case messageStageExecutionFailure:
		executionFailureArguments := append(append([]any{}, subjects...), formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, executionFailureArguments...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(redactArguments(command.Details.Arguments), commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, RedactCredentials(trimmedStandardError))
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

// operands returns the non-flag arguments with credentials redacted.
func (formatter CommandMessageFormatter) operands(arguments []string) []string {
	operands := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		operands = append(operands, RedactCredentials(trimmed))
	}
	return operands
}

func (formatter CommandMessageFormatter) joinOperands(arguments []string) string {
	return formatter.ensureValue(strings.Join(formatter.operands(arguments), commandArgumentsJoinSeparatorConstant))
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex := 0; argumentIndex < len(arguments)-1; argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == flag {
			return arguments[argumentIndex+1]
		}
	}
	return emptyStringConstant
}
