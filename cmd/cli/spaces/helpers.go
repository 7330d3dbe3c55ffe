package spaces

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/spacesync/internal/execshell"
	"github.com/temirov/spacesync/internal/spaceauth"
	"github.com/temirov/spacesync/internal/spaces/dependencies"
	"github.com/temirov/spacesync/internal/spaces/prompt"
	"github.com/temirov/spacesync/internal/spaces/shared"
	"github.com/temirov/spacesync/internal/ui"
	"github.com/temirov/spacesync/internal/utils"
	pathutils "github.com/temirov/spacesync/internal/utils/path"
)

const (
	outcomeFailedErrorTemplateConstant = "%s: %w"
	outcomeFailedMessageConstant       = "workflow did not complete"
	urlFlagNameConstant                = "url"
	urlFlagUsageConstant               = "Repository URL used instead of prompting."
	credentialFlagNameConstant         = "credential"
	credentialFlagUsageConstant        = "Access token (or username:token) used instead of prompting. Defaults to SPACESYNC_CREDENTIAL, GH_TOKEN, GITHUB_TOKEN or GITLAB_TOKEN."
	nameFlagNameConstant               = "name"
	nameFlagUsageConstant              = "Commit author name used instead of prompting."
	emailFlagNameConstant              = "email"
	emailFlagUsageConstant             = "Commit author email used instead of prompting."
)

// ErrOutcomeFailed marks a workflow that reported a failed outcome.
var ErrOutcomeFailed = errors.New(outcomeFailedMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// PrompterFactory creates prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.Prompter

// NotifierFactory creates notifiers scoped to a Cobra command.
type NotifierFactory func(*cobra.Command) shared.Notifier

// Collaborators carries the providers and optional overrides shared by the space commands.
// Nil overrides are replaced by process-backed defaults.
type Collaborators struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
	GitManager                   shared.GitRepositoryManager
	FileExecutor                 shared.FileCommandExecutor
	FileSystem                   shared.FileSystem
	Clock                        shared.Clock
	PrompterFactory              PrompterFactory
	NotifierFactory              NotifierFactory
	EnvironmentLookup            spaceauth.EnvironmentLookup
}

type commandServices struct {
	logger        *zap.Logger
	configuration Configuration
	layout        shared.SpaceLayout
	gitManager    shared.GitRepositoryManager
	fileExecutor  shared.FileCommandExecutor
	fileSystem    shared.FileSystem
	clock         shared.Clock
	notifier      shared.Notifier
	prompter      shared.Prompter
}

func (collaborators Collaborators) resolveServices(command *cobra.Command) (commandServices, error) {
	logger := collaborators.resolveLogger()
	configuration := collaborators.resolveConfiguration()

	spaceRoot, spaceRootError := resolveSpaceRoot(command, configuration.Space)
	if spaceRootError != nil {
		return commandServices{}, spaceRootError
	}

	var shellExecutor *execshell.ShellExecutor
	if collaborators.GitManager == nil || collaborators.FileExecutor == nil {
		executorOptions := []execshell.ShellExecutorOption{}
		if collaborators.HumanReadableLoggingProvider != nil && collaborators.HumanReadableLoggingProvider() {
			executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
		}
		resolvedExecutor, executorError := dependencies.ResolveShellExecutor(nil, logger, executorOptions...)
		if executorError != nil {
			return commandServices{}, executorError
		}
		shellExecutor = resolvedExecutor
	}

	gitManager := collaborators.GitManager
	if gitManager == nil {
		resolvedManager, managerError := dependencies.ResolveGitRepositoryManager(nil, shellExecutor)
		if managerError != nil {
			return commandServices{}, managerError
		}
		gitManager = resolvedManager
	}

	var fileExecutor shared.FileCommandExecutor = shellExecutor
	if collaborators.FileExecutor != nil {
		fileExecutor = collaborators.FileExecutor
	}

	return commandServices{
		logger:        logger,
		configuration: configuration,
		layout:        configuration.Space.Layout(spaceRoot),
		gitManager:    gitManager,
		fileExecutor:  fileExecutor,
		fileSystem:    dependencies.ResolveFileSystem(collaborators.FileSystem),
		clock:         dependencies.ResolveClock(collaborators.Clock),
		notifier:      collaborators.resolveNotifier(command),
		prompter:      collaborators.resolvePrompter(command),
	}, nil
}

func (collaborators Collaborators) resolveLogger() *zap.Logger {
	if collaborators.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := collaborators.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (collaborators Collaborators) resolveConfiguration() Configuration {
	if collaborators.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return collaborators.ConfigurationProvider().Sanitize()
}

func (collaborators Collaborators) resolveNotifier(command *cobra.Command) shared.Notifier {
	if collaborators.NotifierFactory != nil {
		if notifier := collaborators.NotifierFactory(command); notifier != nil {
			return notifier
		}
	}
	return ui.NewConsoleNotifier(command.OutOrStdout())
}

func (collaborators Collaborators) resolvePrompter(command *cobra.Command) shared.Prompter {
	if collaborators.PrompterFactory != nil {
		if prompter := collaborators.PrompterFactory(command); prompter != nil {
			return prompter
		}
	}
	return prompt.NewSelector().Select(command.InOrStdin(), command.OutOrStdout())
}

func (collaborators Collaborators) resolveEnvironmentCredential() (string, bool) {
	lookup := collaborators.EnvironmentLookup
	return spaceauth.ResolveCredential(lookup)
}

func resolveSpaceRoot(command *cobra.Command, configuration SpaceConfiguration) (string, error) {
	if command != nil {
		if spaceRoot, available := utils.NewCommandContextAccessor().SpaceRoot(command.Context()); available {
			return spaceRoot, nil
		}
	}
	return pathutils.NewSpaceRootResolver().Resolve(configuration.Root)
}

// presetAnswers reads the answer flags registered by registerAnswerFlags.
// With environmentCredential set, the credential falls back to the
// environment when its flag is unset.
func (collaborators Collaborators) presetAnswers(command *cobra.Command, environmentCredential bool) map[shared.PromptField]string {
	answers := map[shared.PromptField]string{}
	flagFields := []struct {
		flagName string
		field    shared.PromptField
	}{
		{flagName: urlFlagNameConstant, field: shared.PromptFieldRemoteURL},
		{flagName: credentialFlagNameConstant, field: shared.PromptFieldCredential},
		{flagName: nameFlagNameConstant, field: shared.PromptFieldAuthorName},
		{flagName: emailFlagNameConstant, field: shared.PromptFieldAuthorEmail},
	}
	for _, flagField := range flagFields {
		if command.Flags().Lookup(flagField.flagName) == nil {
			continue
		}
		value, flagError := command.Flags().GetString(flagField.flagName)
		if flagError != nil || len(strings.TrimSpace(value)) == 0 {
			continue
		}
		answers[flagField.field] = value
	}

	if _, credentialProvided := answers[shared.PromptFieldCredential]; !credentialProvided && environmentCredential {
		if command.Flags().Lookup(credentialFlagNameConstant) != nil {
			if credential, found := collaborators.resolveEnvironmentCredential(); found {
				answers[shared.PromptFieldCredential] = credential
			}
		}
	}
	return answers
}

func registerCredentialFlag(command *cobra.Command, usage string) {
	command.Flags().String(credentialFlagNameConstant, "", usage)
}

func registerAnswerFlags(command *cobra.Command) {
	command.Flags().String(urlFlagNameConstant, "", urlFlagUsageConstant)
	registerCredentialFlag(command, credentialFlagUsageConstant)
	command.Flags().String(nameFlagNameConstant, "", nameFlagUsageConstant)
	command.Flags().String(emailFlagNameConstant, "", emailFlagUsageConstant)
}

func outcomeError(command *cobra.Command, outcome shared.Outcome) error {
	if outcome != shared.OutcomeFailed {
		return nil
	}
	return fmt.Errorf(outcomeFailedErrorTemplateConstant, command.Name(), ErrOutcomeFailed)
}
