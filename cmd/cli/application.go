package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/spacesync/cmd/cli/spaces"
	"github.com/temirov/spacesync/internal/utils"
	pathutils "github.com/temirov/spacesync/internal/utils/path"
)

const (
	applicationNameConstant                 = "spacesync"
	applicationShortDescriptionConstant     = "Keep a notes space in sync with a git repository"
	applicationLongDescriptionConstant      = "spacesync links a notes space to a git repository, synchronizes it on a schedule and rotates the access token embedded in the remote URL."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	spaceFlagNameConstant                   = "space"
	spaceFlagUsageConstant                  = "Space directory. Defaults to the configured space.root."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonLogFileConfigKeyConstant          = commonConfigurationKeyConstant + ".log_file"
	commonLogMaxSizeConfigKeyConstant       = commonConfigurationKeyConstant + ".log_max_size_mb"
	commonLogMaxBackupsConfigKeyConstant    = commonConfigurationKeyConstant + ".log_max_backups"
	commonLogMaxAgeConfigKeyConstant        = commonConfigurationKeyConstant + ".log_max_age_days"
	environmentPrefixConstant               = "SPACESYNC"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationSpaceFieldConstant         = "space"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "spacesync CLI executed"
	rootCommandDebugMessageConstant         = "spacesync CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultLogMaxSizeMegabytesConstant      = 10
	defaultLogMaxBackupsConstant            = 3
	defaultLogMaxAgeDaysConstant            = 28
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common               ApplicationCommonConfiguration `mapstructure:"common"`
	spaces.Configuration `mapstructure:",squash"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel            string `mapstructure:"log_level"`
	LogFormat           string `mapstructure:"log_format"`
	LogFile             string `mapstructure:"log_file"`
	LogMaxSizeMegabytes int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups       int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays       int    `mapstructure:"log_max_age_days"`
}

// FileSink converts the log file settings into a logger file sink configuration.
func (configuration ApplicationCommonConfiguration) FileSink() utils.FileSinkConfiguration {
	return utils.FileSinkConfiguration{
		FilePath:         configuration.LogFile,
		MaxSizeMegabytes: configuration.LogMaxSizeMegabytes,
		MaxBackups:       configuration.LogMaxBackups,
		MaxAgeDays:       configuration.LogMaxAgeDays,
	}
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	spaceRootResolver      pathutils.SpaceRootResolver
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	spaceFlagValue         string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		utils.ConfigurationSearchPaths(applicationNameConstant),
	)
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		spaceRootResolver:      pathutils.NewSpaceRootResolver(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.spaceFlagValue, spaceFlagNameConstant, "", spaceFlagUsageConstant)

	collaborators := spaces.Collaborators{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() spaces.Configuration {
			return application.configuration.Configuration
		},
	}

	linkBuilder := spaces.LinkCommandBuilder{Collaborators: collaborators}
	linkCommand, linkBuildError := linkBuilder.Build()
	if linkBuildError == nil {
		cobraCommand.AddCommand(linkCommand)
	}

	relinkBuilder := spaces.LinkCommandBuilder{Collaborators: collaborators, Relink: true}
	relinkCommand, relinkBuildError := relinkBuilder.Build()
	if relinkBuildError == nil {
		cobraCommand.AddCommand(relinkCommand)
	}

	syncBuilder := spaces.SyncCommandBuilder{Collaborators: collaborators}
	syncCommand, syncBuildError := syncBuilder.Build()
	if syncBuildError == nil {
		cobraCommand.AddCommand(syncCommand)
	}

	rotateCredentialBuilder := spaces.RotateCredentialCommandBuilder{Collaborators: collaborators}
	rotateCredentialCommand, rotateCredentialBuildError := rotateCredentialBuilder.Build()
	if rotateCredentialBuildError == nil {
		cobraCommand.AddCommand(rotateCredentialCommand)
	}

	scheduleBuilder := spaces.ScheduleCommandBuilder{Collaborators: collaborators}
	scheduleCommand, scheduleBuildError := scheduleBuilder.Build()
	if scheduleBuildError == nil {
		cobraCommand.AddCommand(scheduleCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

// DefaultConfigurationValues returns the Viper defaults applied beneath the
// embedded configuration.
func DefaultConfigurationValues() map[string]any {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:      string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant:     string(utils.LogFormatConsole),
		commonLogFileConfigKeyConstant:       "",
		commonLogMaxSizeConfigKeyConstant:    defaultLogMaxSizeMegabytesConstant,
		commonLogMaxBackupsConfigKeyConstant: defaultLogMaxBackupsConstant,
		commonLogMaxAgeConfigKeyConstant:     defaultLogMaxAgeDaysConstant,
	}
	for configurationKey, configurationValue := range spaces.DefaultConfigurationValues() {
		defaultValues[configurationKey] = configurationValue
	}
	return defaultValues
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, DefaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration
	application.configuration.Configuration = application.configuration.Configuration.Sanitize()

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, spaceFlagNameConstant) {
		application.configuration.Space.Root = application.spaceFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLoggerWithFileSink(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
		application.configuration.Common.FileSink(),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	spaceRoot, spaceRootError := application.spaceRootResolver.Resolve(application.configuration.Space.Root)
	if spaceRootError != nil {
		return spaceRootError
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationSpaceFieldConstant, spaceRoot),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithSpaceRoot(updatedContext, spaceRoot)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	return application.syncLoggerInstance(application.logger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
